package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResetPasswordControl logs a password reset request.
type ResetPasswordControl struct {
	RequestID uuid.UUID `gorm:"type:uuid;primaryKey" json:"request_id"`
	Email     string    `gorm:"size:200;not null;index" json:"email"`
	Date      time.Time `gorm:"not null;index" json:"date"`
}

func (r *ResetPasswordControl) BeforeCreate(_ *gorm.DB) error {
	if r.RequestID == uuid.Nil {
		r.RequestID = uuid.New()
	}
	if r.Date.IsZero() {
		r.Date = time.Now().UTC()
	}
	return nil
}

// EmailConfirmationControl logs an email confirmation request.
type EmailConfirmationControl struct {
	Base
	Email string    `gorm:"size:200;not null;index" json:"email"`
	Date  time.Time `gorm:"not null;index" json:"date"`
}

func (e *EmailConfirmationControl) BeforeCreate(tx *gorm.DB) error {
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}
	return e.Base.BeforeCreate(tx)
}
