package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/accountkit/account-service/internal/auth"
	"github.com/accountkit/account-service/internal/config"
	"github.com/accountkit/account-service/internal/dto"
	"github.com/accountkit/account-service/internal/metrics"
	"github.com/accountkit/account-service/internal/models"
	"github.com/accountkit/account-service/internal/repository"
)

// AuthService exchanges credentials for signed tokens. It keeps no session state.
type AuthService struct {
	users         repository.UserRepository
	issuer        *auth.Issuer
	rotateRefresh bool
	metrics       metrics.Recorder
}

func NewAuthService(users repository.UserRepository, issuer *auth.Issuer, cfg *config.Config, rec metrics.Recorder) *AuthService {
	return &AuthService{
		users:         users,
		issuer:        issuer,
		rotateRefresh: cfg.JWTRotateRefresh,
		metrics:       rec,
	}
}

// Login returns an access/refresh pair. Unknown email, wrong password and
// disabled accounts all fail with ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		auth.CheckDummy(req.Password)
		s.metrics.RecordLogin(metrics.ResultFailure)
		return nil, ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		slog.Warn("login failed", "action", "login", "user_id", user.ID.String())
		s.metrics.RecordLogin(metrics.ResultFailure)
		return nil, ErrInvalidCredentials
	}

	if !user.CanLogin() {
		s.metrics.RecordLogin(metrics.ResultFailure)
		return nil, ErrInvalidCredentials
	}

	resp, err := s.generateTokenPair(identityOf(user))
	if err != nil {
		return nil, err
	}
	s.metrics.RecordLogin(metrics.ResultSuccess)
	return resp, nil
}

// Refresh mints a new access token from a refresh token without touching
// storage; the claim snapshot is carried over from the refresh token.
func (s *AuthService) Refresh(_ context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	claims, err := s.issuer.Parse(req.Refresh, auth.TokenTypeRefresh)
	if err != nil {
		s.metrics.RecordRefresh(metrics.ResultInvalid)
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := claims.Identity()
	if err != nil {
		s.metrics.RecordRefresh(metrics.ResultInvalid)
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	access, err := s.issuer.IssueAccess(id)
	if err != nil {
		return nil, err
	}
	resp := &dto.TokenResponse{Access: access}

	if s.rotateRefresh {
		if resp.Refresh, err = s.issuer.IssueRefresh(id); err != nil {
			return nil, err
		}
	}

	s.metrics.RecordRefresh(metrics.ResultSuccess)
	return resp, nil
}

func (s *AuthService) generateTokenPair(id auth.Identity) (*dto.TokenResponse, error) {
	refresh, err := s.issuer.IssueRefresh(id)
	if err != nil {
		return nil, err
	}

	access, err := s.issuer.IssueAccess(id)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{Access: access, Refresh: refresh}, nil
}

func identityOf(u *models.User) auth.Identity {
	id := auth.Identity{UserID: u.ID, Email: u.Email}
	if u.Username != nil {
		name := *u.Username
		id.Username = &name
	}
	return id
}
