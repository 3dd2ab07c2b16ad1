package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/synergysphere/synergysphere/internal/models"
	"github.com/synergysphere/synergysphere/internal/rules"
)

type TaskInput struct {
	Title        string     `json:"title" validate:"required,min=3,max=100"`
	Description  string     `json:"description" validate:"max=500"`
	Status       string     `json:"status" validate:"omitempty,oneof=todo in-progress done"`
	Priority     string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate      *time.Time `json:"due_date"`
	AssignedToID *uint      `json:"assigned_to_id"`
}

// TaskUpdate changes only the non-nil fields. AssignedToID pointing at zero
// unassigns the task; ClearDueDate removes the due date.
type TaskUpdate struct {
	Title        *string    `json:"title" validate:"omitempty,min=3,max=100"`
	Description  *string    `json:"description" validate:"omitempty,max=500"`
	Status       *string    `json:"status" validate:"omitempty,oneof=todo in-progress done"`
	Priority     *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate      *time.Time `json:"due_date"`
	ClearDueDate bool       `json:"clear_due_date"`
	AssignedToID *uint      `json:"assigned_to_id"`
}

type TaskService struct {
	base
	dispatcher *Dispatcher
}

func (s *TaskService) Create(ctx context.Context, actorID, projectID uint, in TaskInput) (*models.Task, error) {
	subject, err := s.authorize(ctx, rules.CreateTask, actorID, projectID)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if err := s.check(in); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		ProjectID:   projectID,
	}
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	if in.AssignedToID != nil && *in.AssignedToID != 0 {
		if err := s.checkAssignee(ctx, subject.Project, *in.AssignedToID); err != nil {
			return nil, err
		}
		task.AssignedToID = in.AssignedToID
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.dispatcher.Dispatch(ctx, Batch{
		Project:  *subject.Project,
		Summary:  fmt.Sprintf("Task %q was created and assigned", task.Title),
		Commands: rules.TaskCreated(*task),
	})

	return task, nil
}

// List returns the project's tasks, newest first.
func (s *TaskService) List(ctx context.Context, actorID, projectID uint) ([]models.Task, error) {
	if _, err := s.authorize(ctx, rules.ViewTask, actorID, projectID); err != nil {
		return nil, err
	}

	tasks, err := s.store.ListProjectTasks(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, actorID, projectID, taskID uint) (*models.Task, error) {
	_, task, err := s.load(ctx, rules.ViewTask, actorID, projectID, taskID)
	return task, err
}

func (s *TaskService) Update(ctx context.Context, actorID, projectID, taskID uint, in TaskUpdate) (*models.Task, error) {
	subject, task, err := s.load(ctx, rules.UpdateTask, actorID, projectID, taskID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		in.Title = &title
	}
	if err := s.check(in); err != nil {
		return nil, err
	}

	previousAssignee := task.AssigneeID()

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	switch {
	case in.ClearDueDate:
		task.DueDate = nil
	case in.DueDate != nil:
		task.DueDate = in.DueDate
	}
	if in.AssignedToID != nil {
		assignee := *in.AssignedToID
		if assignee == 0 {
			task.AssignedToID = nil
		} else {
			if assignee != previousAssignee {
				if err := s.checkAssignee(ctx, subject.Project, assignee); err != nil {
					return nil, err
				}
			}
			task.AssignedToID = &assignee
		}
	}

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.dispatcher.Dispatch(ctx, Batch{
		Project:  *subject.Project,
		Summary:  fmt.Sprintf("Task %q was reassigned", task.Title),
		Commands: rules.TaskReassigned(previousAssignee, *task),
	})

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, actorID, projectID, taskID uint) error {
	_, task, err := s.load(ctx, rules.DeleteTask, actorID, projectID, taskID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTask(ctx, task.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Mine returns the tasks assigned to the actor across all projects, earliest
// due date first.
func (s *TaskService) Mine(ctx context.Context, actorID uint) ([]models.Task, error) {
	tasks, err := s.store.ListAssignedTasks(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list assigned tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) load(ctx context.Context, action rules.Action, actorID, projectID, taskID uint) (rules.Subject, *models.Task, error) {
	subject, err := s.authorize(ctx, action, actorID, projectID)
	if err != nil {
		return rules.Subject{}, nil, err
	}

	task, err := s.store.FindTask(ctx, taskID)
	if err != nil {
		return rules.Subject{}, nil, fmt.Errorf("find task: %w", err)
	}
	if err := rules.TaskInProject(subject.Project, task); err != nil {
		return rules.Subject{}, nil, err
	}

	return subject, task, nil
}

// checkAssignee requires the assignee to have access to the project.
func (s *TaskService) checkAssignee(ctx context.Context, project *models.Project, userID uint) error {
	if rules.IsCreator(userID, project) {
		return nil
	}

	membership, err := s.store.FindTeamMember(ctx, userID, project.ID)
	if err != nil {
		return fmt.Errorf("find assignee membership: %w", err)
	}
	if !rules.IsMember(userID, project, membership) {
		return rules.Invalid("assignee must be a member of this project")
	}
	return nil
}
