package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/accountkit/account-service/internal/auth"
	"github.com/accountkit/account-service/internal/dto"
	"github.com/accountkit/account-service/internal/models"
	"github.com/accountkit/account-service/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password, req.PasswordConfirm); err != nil {
		return nil, err
	}

	username := normalizeOptional(req.Username)
	phone := normalizeOptional(req.PhoneNumber)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	if err := s.checkAvailable(ctx, uuid.Nil, &email, username, phone); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	settings := req.NotificationSettings
	if settings == nil {
		settings = models.DefaultNotificationSettings()
	}

	user := models.User{
		Email:                email,
		Username:             username,
		PhoneNumber:          phone,
		BirthDate:            birthDate,
		Password:             hash,
		Active:               true,
		NotificationSettings: datatypes.NewJSONType(settings),
	}

	if err := s.users.Insert(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserConflict
		}
		return nil, err
	}

	slog.Info("user registered", "action", "register", "user_id", user.ID.String())
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial update. Email, credits and account flags
// are not writable here.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var columns []string

	if req.Username != nil {
		username := normalizeOptional(req.Username)
		if err := validateUsername(username); err != nil {
			return nil, err
		}
		if err := s.checkAvailable(ctx, user.ID, nil, username, nil); err != nil {
			return nil, err
		}
		user.Username = username
		columns = append(columns, "username")
	}

	if req.PhoneNumber != nil {
		phone := normalizeOptional(req.PhoneNumber)
		if err := validatePhone(phone); err != nil {
			return nil, err
		}
		if err := s.checkAvailable(ctx, user.ID, nil, nil, phone); err != nil {
			return nil, err
		}
		user.PhoneNumber = phone
		columns = append(columns, "phone_number")
	}

	if req.BirthDate != nil {
		birthDate, err := parseBirthDate(req.BirthDate)
		if err != nil {
			return nil, err
		}
		user.BirthDate = birthDate
		columns = append(columns, "birth_date")
	}

	if req.NotificationSettings != nil {
		user.NotificationSettings = datatypes.NewJSONType(*req.NotificationSettings)
		columns = append(columns, "notification_settings")
	}

	if req.Password != nil {
		confirm := ""
		if req.PasswordConfirm != nil {
			confirm = *req.PasswordConfirm
		}
		if err := validatePassword(*req.Password, confirm); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*req.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.Password = hash
		columns = append(columns, "password")
	}

	if len(columns) == 0 {
		return user, nil
	}

	if err := s.users.Update(ctx, user, columns...); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrUserConflict
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Deactivate flags the account after re-checking the password. The row is kept.
// Login stops at once, but refresh never reads the account, so tokens already
// issued keep working until the refresh token expires (JWT_REFRESH_EXPIRY).
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID, password string) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if err := auth.CheckPassword(user.Password, password); err != nil {
		return ErrInvalidCredentials
	}

	user.IsDeactivated = true
	if err := s.users.Update(ctx, user, "is_deactivated"); err != nil {
		return err
	}
	slog.Info("user deactivated", "action", "deactivate", "user_id", user.ID.String())
	return nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	return s.users.List(ctx, limit, offset)
}

// Delete removes the account and, through the FK cascade, its devices.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	slog.Info("user deleted", "action", "delete_user", "user_id", id.String())
	return nil
}

// EnsureUser creates an active account for email unless one exists.
func (s *UserService) EnsureUser(ctx context.Context, email, password string) (*models.User, error) {
	existing, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.Register(ctx, &dto.RegisterRequest{
		Email:           email,
		Password:        password,
		PasswordConfirm: password,
	})
}

// checkAvailable reports the first unique field already held by a user other than self.
func (s *UserService) checkAvailable(ctx context.Context, self uuid.UUID, email, username, phone *string) error {
	checks := []struct {
		value *string
		find  func(context.Context, string) (*models.User, error)
		err   error
	}{
		{email, s.users.FindByEmail, ErrEmailTaken},
		{username, s.users.FindByUsername, ErrUsernameTaken},
		{phone, s.users.FindByPhoneNumber, ErrPhoneTaken},
	}

	for _, c := range checks {
		if c.value == nil {
			continue
		}
		existing, err := c.find(ctx, *c.value)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return err
		}
		if existing.ID != self {
			return c.err
		}
	}
	return nil
}
