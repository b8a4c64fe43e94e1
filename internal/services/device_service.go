package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/accountkit/account-service/internal/dto"
	"github.com/accountkit/account-service/internal/metrics"
	"github.com/accountkit/account-service/internal/models"
	"github.com/accountkit/account-service/internal/repository"
	"github.com/google/uuid"
)

const (
	maxDeviceNameLength = 255
	maxPlaceLength      = 100
)

// DeviceService tracks the devices a user has logged in from.
type DeviceService struct {
	devices repository.DeviceRepository
	metrics metrics.Recorder
	now     func() time.Time
}

func NewDeviceService(devices repository.DeviceRepository, rec metrics.Recorder) *DeviceService {
	return &DeviceService{devices: devices, metrics: rec, now: time.Now}
}

// Create registers a new device. It never upserts: an existing
// (user, type, name) triple fails with ErrDuplicateDevice, whether caught by
// the lookup or by the unique index when two creates race.
func (s *DeviceService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateDeviceRequest) (*models.Device, error) {
	deviceType := strings.TrimSpace(req.DeviceType)
	deviceName := strings.TrimSpace(req.DeviceName)

	if !models.IsValidDeviceType(deviceType) {
		s.metrics.RecordDeviceRegistration(metrics.ResultInvalid)
		return nil, fmt.Errorf("%w: device_type must be one of %s", ErrValidation, strings.Join(models.DeviceTypes, ", "))
	}
	if deviceName == "" {
		s.metrics.RecordDeviceRegistration(metrics.ResultInvalid)
		return nil, fmt.Errorf("%w: device_name is required", ErrValidation)
	}
	if utf8.RuneCountInString(deviceName) > maxDeviceNameLength {
		s.metrics.RecordDeviceRegistration(metrics.ResultInvalid)
		return nil, fmt.Errorf("%w: device_name must be at most %d characters", ErrValidation, maxDeviceNameLength)
	}

	place := models.DefaultDevicePlace
	if p := normalizeOptional(req.Place); p != nil {
		if utf8.RuneCountInString(*p) > maxPlaceLength {
			s.metrics.RecordDeviceRegistration(metrics.ResultInvalid)
			return nil, fmt.Errorf("%w: place must be at most %d characters", ErrValidation, maxPlaceLength)
		}
		place = *p
	}

	_, err := s.devices.FindByUniqueKey(ctx, userID, deviceType, deviceName)
	if err == nil {
		s.metrics.RecordDeviceRegistration(metrics.ResultDuplicate)
		return nil, ErrDuplicateDevice
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check device: %w", err)
	}

	device := models.Device{
		UserID:      userID,
		DeviceType:  deviceType,
		DeviceName:  deviceName,
		LastLoginAt: s.now().UTC(),
		Place:       place,
	}

	if err := s.devices.Insert(ctx, &device); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			slog.Info("device insert lost race", "action", "create_device", "user_id", userID.String())
			s.metrics.RecordDeviceRegistration(metrics.ResultDuplicate)
			return nil, ErrDuplicateDevice
		}
		return nil, err
	}

	s.metrics.RecordDeviceRegistration(metrics.ResultSuccess)
	return &device, nil
}

// RefreshLogin stamps last_login_at on a device owned by userID.
func (s *DeviceService) RefreshLogin(ctx context.Context, userID, deviceID uuid.UUID) (*models.Device, error) {
	device, err := s.devices.TouchLastLogin(ctx, userID, deviceID, s.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return device, nil
}

func (s *DeviceService) List(ctx context.Context, userID uuid.UUID) ([]models.Device, error) {
	return s.devices.ListByOwner(ctx, userID)
}

func (s *DeviceService) Get(ctx context.Context, userID, deviceID uuid.UUID) (*models.Device, error) {
	device, err := s.devices.FindByID(ctx, userID, deviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return device, nil
}

func (s *DeviceService) Delete(ctx context.Context, userID, deviceID uuid.UUID) error {
	if err := s.devices.Delete(ctx, userID, deviceID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDeviceNotFound
		}
		return err
	}
	return nil
}
