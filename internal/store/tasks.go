package store

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/synergysphere/synergysphere/internal/models"
)

func (s *Store) FindTask(ctx context.Context, id uint) (*models.Task, error) {
	return findOne[models.Task](s.conn(ctx).Preload("AssignedTo"), "id = ?", id)
}

func (s *Store) ListProjectTasks(ctx context.Context, projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := s.conn(ctx).
		Preload("AssignedTo").
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error
	return tasks, err
}

// ListAssignedTasks returns the user's tasks across projects, earliest due
// date first and undated tasks last.
func (s *Store) ListAssignedTasks(ctx context.Context, userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := s.conn(ctx).
		Preload("Project").
		Where("assigned_to_id = ?", userID).
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC, id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(task).Error; err != nil {
		return err
	}
	return s.conn(ctx).Preload("AssignedTo").First(task, task.ID).Error
}

// UpdateTask writes every editable column, including a cleared assignee or
// due date.
func (s *Store) UpdateTask(ctx context.Context, task *models.Task) error {
	err := s.conn(ctx).
		Model(task).
		Select("title", "description", "status", "priority", "due_date", "assigned_to_id").
		Updates(task).Error
	if err != nil {
		return err
	}
	task.AssignedTo = nil
	return s.conn(ctx).Preload("AssignedTo").First(task, task.ID).Error
}

func (s *Store) DeleteTask(ctx context.Context, id uint) error {
	return s.conn(ctx).Delete(&models.Task{}, id).Error
}
