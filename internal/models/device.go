package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DeviceTypeDesktop = "desktop"
	DeviceTypeMobile  = "mobile"

	DefaultDevicePlace = "unknown"
)

// DeviceTypes lists the accepted values for Device.DeviceType.
var DeviceTypes = []string{DeviceTypeDesktop, DeviceTypeMobile}

// Device records one login source of a user. (UserID, DeviceType, DeviceName) is unique.
type Device struct {
	Base
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_logged_devices_owner_device" json:"user"`
	DeviceType  string    `gorm:"size:10;not null;uniqueIndex:idx_logged_devices_owner_device" json:"device_type"`
	DeviceName  string    `gorm:"size:255;not null;uniqueIndex:idx_logged_devices_owner_device" json:"device_name"`
	LastLoginAt time.Time `gorm:"not null;index" json:"last_login_at"`
	Place       string    `gorm:"size:100" json:"place"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Device) TableName() string {
	return "logged_devices"
}

func IsValidDeviceType(t string) bool {
	for _, v := range DeviceTypes {
		if v == t {
			return true
		}
	}
	return false
}
