package store

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/synergysphere/synergysphere/internal/models"
)

func (s *Store) FindNotification(ctx context.Context, id uint) (*models.Notification, error) {
	return findOne[models.Notification](s.conn(ctx), "id = ?", id)
}

func (s *Store) ListNotifications(ctx context.Context, userID uint, unreadOnly bool) ([]models.Notification, error) {
	var notifications []models.Notification

	tx := s.conn(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		tx = tx.Where("read = ?", false)
	}

	err := tx.Order("created_at DESC, id DESC").Find(&notifications).Error
	return notifications, err
}

func (s *Store) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return s.conn(ctx).Omit(clause.Associations).Create(notification).Error
}

func (s *Store) MarkNotificationRead(ctx context.Context, notification *models.Notification) error {
	notification.Read = true
	return s.conn(ctx).Model(notification).Update("read", true).Error
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID uint) (int64, error) {
	res := s.conn(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (s *Store) DeleteNotification(ctx context.Context, id uint) error {
	return s.conn(ctx).Delete(&models.Notification{}, id).Error
}

// DeleteReadNotificationsBefore removes read notifications created before
// cutoff. Unread ones are kept regardless of age.
func (s *Store) DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.conn(ctx).
		Where("read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
