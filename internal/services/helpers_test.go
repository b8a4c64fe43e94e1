package services

import (
	"context"
	"testing"
	"time"

	"github.com/accountkit/account-service/internal/auth"
	"github.com/accountkit/account-service/internal/config"
	"github.com/accountkit/account-service/internal/database"
	"github.com/accountkit/account-service/internal/dto"
	"github.com/accountkit/account-service/internal/metrics"
	"github.com/accountkit/account-service/internal/models"
	"github.com/accountkit/account-service/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	cfg      *config.Config
	issuer   *auth.Issuer
	users    *repository.GormUserRepository
	devices  *repository.GormDeviceRepository
	auth     *AuthService
	userSvc  *UserService
	devSvc   *DeviceService
	controls *ControlService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		BcryptCost:       bcrypt.MinCost,
	}
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	users := repository.NewUserRepository(db)
	devices := repository.NewDeviceRepository(db)

	return &testEnv{
		db:       db,
		cfg:      cfg,
		issuer:   issuer,
		users:    users,
		devices:  devices,
		auth:     NewAuthService(users, issuer, cfg, metrics.Nop{}),
		userSvc:  NewUserService(users, cfg.BcryptCost),
		devSvc:   NewDeviceService(devices, metrics.Nop{}),
		controls: NewControlService(repository.NewResetPasswordRepository(db), repository.NewEmailConfirmationRepository(db)),
	}
}

func (e *testEnv) createUser(t *testing.T, email, password string, username *string) *models.User {
	t.Helper()
	user, err := e.userSvc.Register(context.Background(), &dto.RegisterRequest{
		Email:           email,
		Username:        username,
		Password:        password,
		PasswordConfirm: password,
	})
	require.NoError(t, err)
	return user
}

func strPtr(s string) *string { return &s }
