package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/synergysphere/synergysphere/internal/models"
)

func repliesOldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("messages.created_at ASC, messages.id ASC")
}

// FindMessage loads a message with its author and its replies, oldest reply
// first.
func (s *Store) FindMessage(ctx context.Context, id uint) (*models.Message, error) {
	tx := s.conn(ctx).
		Preload("User").
		Preload("Replies", repliesOldestFirst).
		Preload("Replies.User")
	return findOne[models.Message](tx, "id = ?", id)
}

// ListThreads returns the project's top-level messages newest first, each
// with its replies oldest first.
func (s *Store) ListThreads(ctx context.Context, projectID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.conn(ctx).
		Preload("User").
		Preload("Replies", repliesOldestFirst).
		Preload("Replies.User").
		Where("project_id = ? AND parent_message_id IS NULL", projectID).
		Order("created_at DESC, id DESC").
		Find(&messages).Error
	return messages, err
}

func (s *Store) CreateMessage(ctx context.Context, message *models.Message) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(message).Error; err != nil {
		return err
	}
	return s.conn(ctx).Preload("User").First(message, message.ID).Error
}

// DeleteMessage removes the message together with every reply below it.
func (s *Store) DeleteMessage(ctx context.Context, id uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		doomed := []uint{id}
		frontier := []uint{id}
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&models.Message{}).
				Where("parent_message_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			doomed = append(doomed, children...)
			frontier = children
		}

		// Deepest replies first so no row outlives its parent.
		for i := len(doomed) - 1; i >= 0; i-- {
			if err := tx.Delete(&models.Message{}, doomed[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
