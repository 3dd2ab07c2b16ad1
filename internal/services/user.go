package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/synergysphere/synergysphere/internal/models"
	"github.com/synergysphere/synergysphere/internal/rules"
	"github.com/synergysphere/synergysphere/internal/store"
)

const passwordRule = "min=6,containsany=0123456789"

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,containsany=0123456789"`
}

type ProfileInput struct {
	Name            *string `json:"name" validate:"omitempty,min=2,max=50"`
	Email           *string `json:"email" validate:"omitempty,email"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password"`
}

type UserService struct {
	base
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := s.check(in); err != nil {
		return nil, err
	}

	existing, err := s.store.FindUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Uint("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Authenticate returns the user for a matching email and password. Unknown
// emails and wrong passwords are indistinguishable.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, rules.NotFound("user not found")
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.User, error) {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		in.Email = &email
	}
	if err := s.check(in); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)

	if in.Name != nil && *in.Name != user.Name {
		updates["name"] = *in.Name
	}

	if in.Email != nil && *in.Email != user.Email {
		taken, err := s.store.FindUserByEmail(ctx, *in.Email)
		if err != nil {
			return nil, fmt.Errorf("find user: %w", err)
		}
		if taken != nil {
			return nil, ErrEmailTaken
		}
		updates["email"] = *in.Email
	}

	if in.NewPassword != "" {
		if in.CurrentPassword == "" {
			return nil, rules.Invalid("current password is required to change password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return nil, rules.Invalid("current password is incorrect")
		}
		if err := s.validate.Var(in.NewPassword, passwordRule); err != nil {
			return nil, rules.Invalid("new_password must be at least 6 characters and contain a number")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password_hash"] = string(hash)
	}

	if len(updates) == 0 {
		return nil, rules.Invalid("no valid fields to update")
	}

	if err := s.store.UpdateUser(ctx, user, updates); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}
