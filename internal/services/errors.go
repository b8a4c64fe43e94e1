package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrInvalidToken       = errors.New("token is invalid or expired")
	ErrValidation         = errors.New("validation failed")

	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
	ErrPhoneTaken    = errors.New("phone number already registered")
	ErrUserConflict  = errors.New("email, username or phone number already registered")
	ErrUserNotFound  = errors.New("user not found")

	ErrDuplicateDevice = errors.New("device with this user, type, and name already exists")
	ErrDeviceNotFound  = errors.New("device not found")

	ErrRecordNotFound = errors.New("record not found")
)
