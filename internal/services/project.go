package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/synergysphere/synergysphere/internal/models"
	"github.com/synergysphere/synergysphere/internal/rules"
	"github.com/synergysphere/synergysphere/internal/store"
)

type ProjectInput struct {
	Title          string `json:"title" validate:"required,min=3,max=100"`
	Description    string `json:"description" validate:"max=500"`
	SlackWebhook   string `json:"slack_webhook" validate:"omitempty,url"`
	DiscordWebhook string `json:"discord_webhook" validate:"omitempty,url"`
}

// ProjectUpdate changes only the non-nil fields. An empty webhook clears it.
type ProjectUpdate struct {
	Title          *string `json:"title" validate:"omitempty,min=3,max=100"`
	Description    *string `json:"description" validate:"omitempty,max=500"`
	SlackWebhook   *string `json:"slack_webhook" validate:"-"`
	DiscordWebhook *string `json:"discord_webhook" validate:"-"`
}

type AddMemberInput struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=MEMBER ADMIN"`
}

type ProjectService struct {
	base
}

func (s *ProjectService) Create(ctx context.Context, actorID uint, in ProjectInput) (*models.Project, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := s.check(in); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:          in.Title,
		Description:    in.Description,
		CreatedByID:    actorID,
		SlackWebhook:   in.SlackWebhook,
		DiscordWebhook: in.DiscordWebhook,
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.Info().Uint("project_id", project.ID).Uint("user_id", actorID).Msg("project created")
	return project, nil
}

// List returns the projects the actor created followed by the ones they
// were added to.
func (s *ProjectService) List(ctx context.Context, actorID uint) ([]models.Project, error) {
	projects, err := s.store.ListProjectsForUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Get returns the project with its team and tasks.
func (s *ProjectService) Get(ctx context.Context, actorID, projectID uint) (*models.Project, error) {
	if _, err := s.authorize(ctx, rules.ViewProject, actorID, projectID); err != nil {
		return nil, err
	}

	project, err := s.store.FindProjectDetail(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if project == nil {
		return nil, rules.NotFound("project not found")
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, actorID, projectID uint, in ProjectUpdate) (*models.Project, error) {
	subject, err := s.authorize(ctx, rules.UpdateProject, actorID, projectID)
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

	project := subject.Project
	if in.Title != nil {
		project.Title = *in.Title
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.SlackWebhook != nil {
		if err := s.checkURL("slack_webhook", *in.SlackWebhook); err != nil {
			return nil, err
		}
		project.SlackWebhook = *in.SlackWebhook
	}
	if in.DiscordWebhook != nil {
		if err := s.checkURL("discord_webhook", *in.DiscordWebhook); err != nil {
			return nil, err
		}
		project.DiscordWebhook = *in.DiscordWebhook
	}

	if err := s.store.UpdateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

// Delete removes the project together with its tasks, messages and team.
func (s *ProjectService) Delete(ctx context.Context, actorID, projectID uint) error {
	if _, err := s.authorize(ctx, rules.DeleteProject, actorID, projectID); err != nil {
		return err
	}

	if err := s.store.DeleteProject(ctx, projectID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.log.Info().Uint("project_id", projectID).Uint("user_id", actorID).Msg("project deleted")
	return nil
}

func (s *ProjectService) ListTeam(ctx context.Context, actorID, projectID uint) ([]models.TeamMember, error) {
	if _, err := s.authorize(ctx, rules.ListTeamMembers, actorID, projectID); err != nil {
		return nil, err
	}

	members, err := s.store.ListTeamMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	return members, nil
}

// AddMember adds the user with the given email to the project. The creator
// already has full access and cannot be added as a member.
func (s *ProjectService) AddMember(ctx context.Context, actorID, projectID uint, in AddMemberInput) (*models.TeamMember, error) {
	subject, err := s.authorize(ctx, rules.AddTeamMember, actorID, projectID)
	if err != nil {
		return nil, err
	}

	in.Email = normalizeEmail(in.Email)
	if err := s.check(in); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = models.RoleMember
	}

	user, err := s.store.FindUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, rules.NotFound("user not found")
	}
	if rules.IsCreator(user.ID, subject.Project) {
		return nil, rules.Conflict("the project creator is already part of the project")
	}

	existing, err := s.store.FindTeamMember(ctx, user.ID, projectID)
	if err != nil {
		return nil, fmt.Errorf("find membership: %w", err)
	}
	if existing != nil {
		return nil, rules.Conflict("user is already a member of this project")
	}

	member := &models.TeamMember{
		UserID:    user.ID,
		ProjectID: projectID,
		Role:      in.Role,
	}
	if err := s.store.CreateTeamMember(ctx, member); err != nil {
		// Lost a race with a concurrent add of the same user.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, rules.Conflict("user is already a member of this project")
		}
		return nil, fmt.Errorf("create team member: %w", err)
	}

	return member, nil
}

func (s *ProjectService) RemoveMember(ctx context.Context, actorID, projectID, memberID uint) error {
	subject, err := s.authorize(ctx, rules.RemoveTeamMember, actorID, projectID)
	if err != nil {
		return err
	}

	member, err := s.store.FindTeamMemberByID(ctx, memberID)
	if err != nil {
		return fmt.Errorf("find team member: %w", err)
	}
	if err := rules.MemberInProject(subject.Project, member); err != nil {
		return err
	}

	if err := s.store.DeleteTeamMember(ctx, member.ID); err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	return nil
}
