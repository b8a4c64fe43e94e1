package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// JWT. Refresh is stateless: JWTRefreshExpiry bounds how long a
	// deactivated or deleted account can still mint access tokens.
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration
	JWTRotateRefresh bool

	BcryptCost int

	// Admin
	AdminEmails string

	// Server
	Port        string
	CORSOrigins string

	// Requests per minute per IP; 0 disables the limiter
	RateLimit     int
	AuthRateLimit int

	// Optional principal created at startup
	SeedEmail    string
	SeedPassword string
}

func Load() *Config {
	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "accounts"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "accounts.db"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m"), 15*time.Minute),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),
		JWTRotateRefresh: parseBool(getEnv("JWT_ROTATE_REFRESH", "false")),

		BcryptCost: parseInt(getEnv("BCRYPT_COST", ""), bcrypt.DefaultCost),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		RateLimit:     parseInt(getEnv("RATE_LIMIT", ""), 60),
		AuthRateLimit: parseInt(getEnv("AUTH_RATE_LIMIT", ""), 10),

		SeedEmail:    getEnv("SEED_EMAIL", ""),
		SeedPassword: getEnv("SEED_PASSWORD", ""),
	}
}

// Validate reports the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if c.DBDriver == "postgres" && c.DBPassword == "" {
		return errors.New("DB_PASSWORD environment variable is required")
	}
	return nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// SQLiteDSN enables foreign keys so device rows cascade with their owner.
func (c *Config) SQLiteDSN() string {
	return c.DBPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
