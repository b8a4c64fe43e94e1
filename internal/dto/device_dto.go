package dto

import (
	"time"

	"github.com/accountkit/account-service/internal/models"
	"github.com/google/uuid"
)

type CreateDeviceRequest struct {
	DeviceType string  `json:"device_type"`
	DeviceName string  `json:"device_name"`
	Place      *string `json:"place"`
}

type DeviceResponse struct {
	ID          uuid.UUID `json:"id"`
	User        uuid.UUID `json:"user"`
	DeviceType  string    `json:"device_type"`
	DeviceName  string    `json:"device_name"`
	LastLoginAt time.Time `json:"last_login_at"`
	Place       string    `json:"place"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewDeviceResponse(d *models.Device) DeviceResponse {
	return DeviceResponse{
		ID:          d.ID,
		User:        d.UserID,
		DeviceType:  d.DeviceType,
		DeviceName:  d.DeviceName,
		LastLoginAt: d.LastLoginAt,
		Place:       d.Place,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func NewDeviceList(devices []models.Device) []DeviceResponse {
	out := make([]DeviceResponse, len(devices))
	for i := range devices {
		out[i] = NewDeviceResponse(&devices[i])
	}
	return out
}
