package services

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	minPasswordLength = 8
	maxEmailLength    = 100
	maxUsernameLength = 100
	birthDateLayout   = "2006-01-02"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if len(email) > maxEmailLength {
		return fmt.Errorf("%w: email must be at most %d characters", ErrValidation, maxEmailLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: enter a valid email address", ErrValidation)
	}
	return nil
}

func validatePassword(password, confirm string) error {
	if password != confirm {
		return fmt.Errorf("%w: password fields didn't match", ErrValidation)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("%w: password must contain at least %d characters", ErrValidation, minPasswordLength)
	}
	if strings.Trim(password, "0123456789") == "" {
		return fmt.Errorf("%w: password is entirely numeric", ErrValidation)
	}
	return nil
}

// normalizeOptional trims s; nil or blank input yields nil.
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validateUsername(username *string) error {
	if username != nil && utf8.RuneCountInString(*username) > maxUsernameLength {
		return fmt.Errorf("%w: username must be at most %d characters", ErrValidation, maxUsernameLength)
	}
	return nil
}

func validatePhone(phone *string) error {
	if phone != nil && !phonePattern.MatchString(*phone) {
		return fmt.Errorf("%w: phone number must be in E.164 format", ErrValidation)
	}
	return nil
}

func parseBirthDate(s *string) (*time.Time, error) {
	s = normalizeOptional(s)
	if s == nil {
		return nil, nil
	}
	d, err := time.Parse(birthDateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: birth_date must be YYYY-MM-DD", ErrValidation)
	}
	return &d, nil
}
