package store

import (
	"context"

	"github.com/synergysphere/synergysphere/internal/models"
)

func (s *Store) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	return findOne[models.User](s.conn(ctx), "id = ?", id)
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](s.conn(ctx), "email = ?", email)
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.conn(ctx).Create(user).Error)
}

// UpdateUser writes the given columns and reloads the user.
func (s *Store) UpdateUser(ctx context.Context, user *models.User, updates map[string]any) error {
	if err := s.conn(ctx).Model(user).Updates(updates).Error; err != nil {
		return translate(err)
	}
	return s.conn(ctx).First(user, user.ID).Error
}
