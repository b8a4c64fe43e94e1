package repository

import (
	"context"
	"fmt"

	"github.com/accountkit/account-service/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRecordRepository stores control records of type T keyed by idColumn.
type GormRecordRepository[T any] struct {
	db       *gorm.DB
	idColumn string
}

func NewResetPasswordRepository(db *gorm.DB) *GormRecordRepository[models.ResetPasswordControl] {
	return &GormRecordRepository[models.ResetPasswordControl]{db: db, idColumn: "request_id"}
}

func NewEmailConfirmationRepository(db *gorm.DB) *GormRecordRepository[models.EmailConfirmationControl] {
	return &GormRecordRepository[models.EmailConfirmationControl]{db: db, idColumn: "id"}
}

func (r *GormRecordRepository[T]) Insert(ctx context.Context, record *T) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create record: %w", translate(err))
	}
	return nil
}

func (r *GormRecordRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var record T
	if err := r.db.WithContext(ctx).Where(r.idColumn+" = ?", id).First(&record).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *GormRecordRepository[T]) List(ctx context.Context, limit, offset int) ([]T, int64, error) {
	var records []T
	var total int64

	if err := r.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.WithContext(ctx).Scopes(Paginate(limit, offset)).Order("date DESC").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
