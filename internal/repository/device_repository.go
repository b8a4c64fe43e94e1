package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/accountkit/account-service/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormDeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *GormDeviceRepository {
	return &GormDeviceRepository{db: db}
}

func (r *GormDeviceRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Device, error) {
	var device models.Device
	err := r.db.WithContext(ctx).Scopes(ForOwner(ownerID)).Where("id = ?", id).First(&device).Error
	if err != nil {
		return nil, translate(err)
	}
	return &device, nil
}

func (r *GormDeviceRepository) FindByUniqueKey(ctx context.Context, ownerID uuid.UUID, deviceType, deviceName string) (*models.Device, error) {
	var device models.Device
	err := r.db.WithContext(ctx).
		Scopes(ForOwner(ownerID)).
		Where("device_type = ? AND device_name = ?", deviceType, deviceName).
		First(&device).Error
	if err != nil {
		return nil, translate(err)
	}
	return &device, nil
}

func (r *GormDeviceRepository) Insert(ctx context.Context, device *models.Device) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(device).Error; err != nil {
		return fmt.Errorf("failed to create device: %w", translate(err))
	}
	return nil
}

func (r *GormDeviceRepository) TouchLastLogin(ctx context.Context, ownerID, id uuid.UUID, at time.Time) (*models.Device, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Device{}).
		Scopes(ForOwner(ownerID)).
		Where("id = ?", id).
		Update("last_login_at", at)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update device: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, ownerID, id)
}

func (r *GormDeviceRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Device, error) {
	var devices []models.Device
	err := r.db.WithContext(ctx).
		Scopes(ForOwner(ownerID)).
		Order("last_login_at DESC").
		Find(&devices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return devices, nil
}

func (r *GormDeviceRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Scopes(ForOwner(ownerID)).Where("id = ?", id).Delete(&models.Device{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete device: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
