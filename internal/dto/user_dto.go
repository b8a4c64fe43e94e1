package dto

import (
	"time"

	"github.com/accountkit/account-service/internal/models"
	"github.com/google/uuid"
)

const birthDateLayout = "2006-01-02"

type RegisterRequest struct {
	Email                string                      `json:"email"`
	Username             *string                     `json:"username"`
	PhoneNumber          *string                     `json:"phone_number"`
	BirthDate            *string                     `json:"birth_date"`
	NotificationSettings models.NotificationSettings `json:"notification_settings"`
	Password             string                      `json:"password"`
	PasswordConfirm      string                      `json:"password_confirm"`
}

// UpdateUserRequest is a partial update; nil fields are left untouched and
// an empty string clears username, phone number or birth date.
type UpdateUserRequest struct {
	Username             *string                      `json:"username"`
	PhoneNumber          *string                      `json:"phone_number"`
	BirthDate            *string                      `json:"birth_date"`
	NotificationSettings *models.NotificationSettings `json:"notification_settings"`
	Password             *string                      `json:"password"`
	PasswordConfirm      *string                      `json:"password_confirm"`
}

type DeactivateRequest struct {
	Password string `json:"password"`
}

type UserResponse struct {
	ID                   uuid.UUID                   `json:"id"`
	Email                string                      `json:"email"`
	Username             *string                     `json:"username"`
	PhoneNumber          *string                     `json:"phone_number"`
	BirthDate            *string                     `json:"birth_date"`
	DalleCredits         int                         `json:"dalle_credits"`
	SubscriptionCredits  int                         `json:"subscription_credits"`
	IsEmailConfirmed     bool                        `json:"is_email_confirmed"`
	NotificationSettings models.NotificationSettings `json:"notification_settings"`
	CreatedAt            time.Time                   `json:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

type UserListItem struct {
	ID               uuid.UUID `json:"id"`
	Username         *string   `json:"username"`
	Email            string    `json:"email"`
	IsEmailConfirmed bool      `json:"is_email_confirmed"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:                   u.ID,
		Email:                u.Email,
		Username:             u.Username,
		PhoneNumber:          u.PhoneNumber,
		DalleCredits:         u.DalleCredits,
		SubscriptionCredits:  u.SubscriptionCredits,
		IsEmailConfirmed:     u.IsEmailConfirmed,
		NotificationSettings: u.NotificationSettings.Data(),
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
	if u.BirthDate != nil {
		s := u.BirthDate.Format(birthDateLayout)
		resp.BirthDate = &s
	}
	return resp
}

func NewUserListItem(u *models.User) UserListItem {
	return UserListItem{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		IsEmailConfirmed: u.IsEmailConfirmed,
		CreatedAt:        u.CreatedAt,
	}
}
