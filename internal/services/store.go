package services

import (
	"context"
	"time"

	"github.com/synergysphere/synergysphere/internal/models"
)

// Store is the persistence surface the services need. *store.Store
// implements it.
type Store interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User, updates map[string]any) error

	FindProject(ctx context.Context, id uint) (*models.Project, error)
	FindProjectDetail(ctx context.Context, id uint) (*models.Project, error)
	ListProjectsForUser(ctx context.Context, userID uint) ([]models.Project, error)
	CreateProject(ctx context.Context, project *models.Project) error
	UpdateProject(ctx context.Context, project *models.Project) error
	DeleteProject(ctx context.Context, id uint) error

	FindTeamMember(ctx context.Context, userID, projectID uint) (*models.TeamMember, error)
	FindTeamMemberByID(ctx context.Context, id uint) (*models.TeamMember, error)
	ListTeamMembers(ctx context.Context, projectID uint) ([]models.TeamMember, error)
	CreateTeamMember(ctx context.Context, member *models.TeamMember) error
	DeleteTeamMember(ctx context.Context, id uint) error

	FindTask(ctx context.Context, id uint) (*models.Task, error)
	ListProjectTasks(ctx context.Context, projectID uint) ([]models.Task, error)
	ListAssignedTasks(ctx context.Context, userID uint) ([]models.Task, error)
	CreateTask(ctx context.Context, task *models.Task) error
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, id uint) error

	FindMessage(ctx context.Context, id uint) (*models.Message, error)
	ListThreads(ctx context.Context, projectID uint) ([]models.Message, error)
	CreateMessage(ctx context.Context, message *models.Message) error
	DeleteMessage(ctx context.Context, id uint) error

	NotificationStore
	FindNotification(ctx context.Context, id uint) (*models.Notification, error)
	ListNotifications(ctx context.Context, userID uint, unreadOnly bool) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, notification *models.Notification) error
	MarkAllNotificationsRead(ctx context.Context, userID uint) (int64, error)
	DeleteNotification(ctx context.Context, id uint) error
	DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// NotificationStore is all the dispatcher writes through.
type NotificationStore interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
}
