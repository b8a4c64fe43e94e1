// Package repository defines persistence interfaces per entity and their GORM implementations.
package repository

import (
	"context"
	"time"

	"github.com/accountkit/account-service/internal/models"
	"github.com/google/uuid"
)

// UserRepository persists principals.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByPhoneNumber(ctx context.Context, phone string) (*models.User, error)

	// Insert fails with ErrDuplicate when email, username or phone number is taken.
	Insert(ctx context.Context, user *models.User) error

	// Update writes the named columns of user.
	Update(ctx context.Context, user *models.User, columns ...string) error

	List(ctx context.Context, limit, offset int) ([]models.User, int64, error)

	// Delete removes the row; logged devices are removed by the FK cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}

// DeviceRepository persists logged devices. Every lookup is scoped to the owner.
type DeviceRepository interface {
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Device, error)
	FindByUniqueKey(ctx context.Context, ownerID uuid.UUID, deviceType, deviceName string) (*models.Device, error)

	// Insert fails with ErrDuplicate when (owner, type, name) already exists.
	Insert(ctx context.Context, device *models.Device) error

	// TouchLastLogin sets last_login_at and returns the updated row.
	TouchLastLogin(ctx context.Context, ownerID, id uuid.UUID, at time.Time) (*models.Device, error)

	// ListByOwner returns the owner's devices, most recent login first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Device, error)

	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// RecordRepository persists append-only control records.
type RecordRepository[T any] interface {
	Insert(ctx context.Context, record *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	// List returns records newest first along with the total count.
	List(ctx context.Context, limit, offset int) ([]T, int64, error)
}
