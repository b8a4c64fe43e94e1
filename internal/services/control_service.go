package services

import (
	"context"
	"errors"

	"github.com/accountkit/account-service/internal/models"
	"github.com/accountkit/account-service/internal/repository"
	"github.com/google/uuid"
)

// ControlService keeps the password-reset and email-confirmation request logs.
type ControlService struct {
	resets        repository.RecordRepository[models.ResetPasswordControl]
	confirmations repository.RecordRepository[models.EmailConfirmationControl]
}

func NewControlService(
	resets repository.RecordRepository[models.ResetPasswordControl],
	confirmations repository.RecordRepository[models.EmailConfirmationControl],
) *ControlService {
	return &ControlService{resets: resets, confirmations: confirmations}
}

func (s *ControlService) CreateResetPassword(ctx context.Context, email string) (*models.ResetPasswordControl, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	record := models.ResetPasswordControl{Email: email}
	if err := s.resets.Insert(ctx, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *ControlService) GetResetPassword(ctx context.Context, id uuid.UUID) (*models.ResetPasswordControl, error) {
	return findRecord(ctx, s.resets, id)
}

func (s *ControlService) ListResetPassword(ctx context.Context, limit, offset int) ([]models.ResetPasswordControl, int64, error) {
	return s.resets.List(ctx, limit, offset)
}

func (s *ControlService) CreateEmailConfirmation(ctx context.Context, email string) (*models.EmailConfirmationControl, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	record := models.EmailConfirmationControl{Email: email}
	if err := s.confirmations.Insert(ctx, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *ControlService) GetEmailConfirmation(ctx context.Context, id uuid.UUID) (*models.EmailConfirmationControl, error) {
	return findRecord(ctx, s.confirmations, id)
}

func (s *ControlService) ListEmailConfirmation(ctx context.Context, limit, offset int) ([]models.EmailConfirmationControl, int64, error) {
	return s.confirmations.List(ctx, limit, offset)
}

func findRecord[T any](ctx context.Context, repo repository.RecordRepository[T], id uuid.UUID) (*T, error) {
	record, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}
