package service

import (
	"context"
	"errors"
	"fmt"
	"menteazul/internal/model"
	"menteazul/internal/repository"
	"strings"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidProfile = errors.New("invalid profile update")
)

var (
	validThemes    = map[string]bool{"light": true, "dark": true, "high-contrast": true}
	validFontSizes = map[string]bool{"small": true, "medium": true, "large": true}
	validDiagnoses = map[string]bool{"": true, "tea": true, "asperger": true, "autismo": true, "otro": true}
)

// UserService reads and edits account profiles
type UserService struct {
	users repository.UserRepo
}

// NewUserService creates a new user service
func NewUserService(users repository.UserRepo) *UserService {
	return &UserService{users: users}
}

// GetProfile returns the account of userID
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of update
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update model.ProfileUpdate) (*model.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.DisplayName != nil {
		name := strings.TrimSpace(*update.DisplayName)
		if name == "" {
			return nil, fmt.Errorf("%w: display name is empty", ErrInvalidProfile)
		}
		user.DisplayName = name
	}
	if update.ChildName != nil {
		user.Profile.ChildName = strings.TrimSpace(*update.ChildName)
	}
	if update.ChildAge != nil {
		if *update.ChildAge < 0 {
			return nil, ErrInvalidProfile
		}
		user.Profile.ChildAge = *update.ChildAge
	}
	if update.Diagnosis != nil {
		if !validDiagnoses[*update.Diagnosis] {
			return nil, ErrInvalidProfile
		}
		user.Profile.Diagnosis = *update.Diagnosis
	}
	if p := update.Preferences; p != nil {
		if !validThemes[p.Theme] || !validFontSizes[p.FontSize] {
			return nil, ErrInvalidProfile
		}
		user.Profile.Preferences = *p
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
