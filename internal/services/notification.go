package services

import (
	"context"
	"fmt"
	"time"

	"github.com/synergysphere/synergysphere/internal/models"
	"github.com/synergysphere/synergysphere/internal/rules"
)

type NotificationService struct {
	base
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool) ([]models.Notification, error) {
	notifications, err := s.store.ListNotifications(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) (*models.Notification, error) {
	notification, err := s.load(ctx, rules.MarkNotification, userID, notificationID)
	if err != nil {
		return nil, err
	}

	if !notification.Read {
		if err := s.store.MarkNotificationRead(ctx, notification); err != nil {
			return nil, fmt.Errorf("mark notification read: %w", err)
		}
	}
	return notification, nil
}

// MarkAllRead flips every unread notification of the user and returns how
// many changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	n, err := s.store.MarkAllNotificationsRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return n, nil
}

func (s *NotificationService) Delete(ctx context.Context, userID, notificationID uint) error {
	notification, err := s.load(ctx, rules.DeleteNotification, userID, notificationID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteNotification(ctx, notification.ID); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}

// PurgeRead deletes read notifications older than retention. Unread ones
// are kept.
func (s *NotificationService) PurgeRead(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	n, err := s.store.DeleteReadNotificationsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge notifications: %w", err)
	}
	return n, nil
}

func (s *NotificationService) load(ctx context.Context, action rules.Action, userID, notificationID uint) (*models.Notification, error) {
	notification, err := s.store.FindNotification(ctx, notificationID)
	if err != nil {
		return nil, fmt.Errorf("find notification: %w", err)
	}
	if err := rules.Authorize(action, userID, rules.Subject{Notification: notification}); err != nil {
		return nil, err
	}
	return notification, nil
}
