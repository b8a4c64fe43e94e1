package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DB_DRIVER", "JWT_SECRET", "JWT_ACCESS_EXPIRY", "JWT_REFRESH_EXPIRY",
		"JWT_ROTATE_REFRESH", "BCRYPT_COST", "PORT", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Empty(t, cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
	assert.False(t, cfg.JWTRotateRefresh)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "*", cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ACCESS_EXPIRY", "5m")
	t.Setenv("JWT_REFRESH_EXPIRY", "48h")
	t.Setenv("JWT_ROTATE_REFRESH", "true")
	t.Setenv("BCRYPT_COST", "4")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/test.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", cfg.SQLiteDSN())
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 5*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 48*time.Hour, cfg.JWTRefreshExpiry)
	assert.True(t, cfg.JWTRotateRefresh)
	assert.Equal(t, 4, cfg.BcryptCost)
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "soon")
	t.Setenv("JWT_REFRESH_EXPIRY", "-1h")

	cfg := Load()
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5433", DBSSLMode: "require"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5433 sslmode=require TimeZone=UTC", cfg.DSN())
}

func TestRateLimits(t *testing.T) {
	t.Setenv("RATE_LIMIT", "")
	t.Setenv("AUTH_RATE_LIMIT", "0")

	cfg := Load()
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, 0, cfg.AuthRateLimit)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing secret", Config{DBDriver: "sqlite"}, "JWT_SECRET"},
		{"postgres without password", Config{DBDriver: "postgres", JWTSecret: "s"}, "DB_PASSWORD"},
		{"sqlite without password", Config{DBDriver: "sqlite", JWTSecret: "s"}, ""},
		{"postgres", Config{DBDriver: "postgres", JWTSecret: "s", DBPassword: "p"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
