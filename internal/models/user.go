package models

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationSettings maps channel -> category -> enabled.
type NotificationSettings map[string]map[string]bool

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		"email": {"updates": false, "tips": false, "payment": false},
		"push":  {"updates": false, "tips": false, "payment": false},
	}
}

// User is an account principal. Email is the login identifier.
type User struct {
	Base
	Email                string                                   `gorm:"not null;size:100;uniqueIndex:idx_users_email" json:"email"`
	Username             *string                                  `gorm:"size:100;uniqueIndex:idx_users_username" json:"username"`
	PhoneNumber          *string                                  `gorm:"size:15;uniqueIndex:idx_users_phone_number" json:"phone_number"`
	Password             string                                   `gorm:"not null" json:"-"`
	BirthDate            *time.Time                               `gorm:"type:date" json:"birth_date"`
	Active               bool                                     `gorm:"not null" json:"-"`
	IsStaff              bool                                     `gorm:"not null" json:"-"`
	IsSuperuser          bool                                     `gorm:"not null" json:"-"`
	IsEmailConfirmed     bool                                     `gorm:"not null" json:"is_email_confirmed"`
	IsDeactivated        bool                                     `gorm:"not null" json:"-"`
	IsComplimentaryPlan  bool                                     `gorm:"not null" json:"-"`
	DalleCredits         int                                      `gorm:"not null" json:"dalle_credits"`
	SubscriptionCredits  int                                      `gorm:"not null" json:"subscription_credits"`
	NotificationSettings datatypes.JSONType[NotificationSettings] `json:"notification_settings"`
}

// CanLogin reports whether credentials for this account may be exchanged for tokens.
func (u *User) CanLogin() bool {
	return u.Active && !u.IsDeactivated
}

// IsAdmin is true for staff and superusers.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}
