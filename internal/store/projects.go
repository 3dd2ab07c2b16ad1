package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/synergysphere/synergysphere/internal/models"
)

func (s *Store) FindProject(ctx context.Context, id uint) (*models.Project, error) {
	return findOne[models.Project](s.conn(ctx), "id = ?", id)
}

// FindProjectDetail loads the project with its team (and their users) and
// tasks, newest task first.
func (s *Store) FindProjectDetail(ctx context.Context, id uint) (*models.Project, error) {
	tx := s.conn(ctx).
		Preload("CreatedBy").
		Preload("TeamMembers", func(db *gorm.DB) *gorm.DB {
			return db.Order("team_members.id ASC")
		}).
		Preload("TeamMembers.User").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.created_at DESC, tasks.id DESC")
		}).
		Preload("Tasks.AssignedTo")
	return findOne[models.Project](tx, "id = ?", id)
}

// ListProjectsForUser returns projects the user created followed by the ones
// they were added to.
func (s *Store) ListProjectsForUser(ctx context.Context, userID uint) ([]models.Project, error) {
	var projects []models.Project

	memberOf := s.conn(ctx).
		Model(&models.TeamMember{}).
		Select("project_id").
		Where("user_id = ?", userID)

	err := s.conn(ctx).
		Preload("TeamMembers").
		Preload("TeamMembers.User").
		Where("created_by_id = ?", userID).
		Or("id IN (?)", memberOf).
		// A second Order call would drop this expression, so the full
		// ordering goes in one clause.
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN created_by_id = ? THEN 0 ELSE 1 END, created_at DESC, id DESC",
			Vars:               []any{userID},
			WithoutParentheses: true,
		}}).
		Find(&projects).Error

	return projects, err
}

func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	return s.conn(ctx).Omit(clause.Associations).Create(project).Error
}

func (s *Store) UpdateProject(ctx context.Context, project *models.Project) error {
	return s.conn(ctx).
		Model(project).
		Select("title", "description", "slack_webhook", "discord_webhook").
		Updates(project).Error
}

// DeleteProject removes the project and everything it owns in one
// transaction, independently of whether the driver enforces cascades.
func (s *Store) DeleteProject(ctx context.Context, id uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ? AND parent_message_id IS NOT NULL", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}
