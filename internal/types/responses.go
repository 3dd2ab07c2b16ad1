package types

import (
	"time"

	"github.com/synergysphere/synergysphere/internal/models"
	"github.com/synergysphere/synergysphere/internal/rules"
)

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

// optionalUser renders an association that may not have been loaded.
func optionalUser(u *models.User) *UserResponse {
	if u == nil || u.ID == 0 {
		return nil
	}
	r := NewUserResponse(*u)
	return &r
}

type TeamMemberResponse struct {
	ID        uint         `json:"id"`
	ProjectID uint         `json:"project_id"`
	Role      string       `json:"role"`
	User      UserResponse `json:"user"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewTeamMemberResponse(m models.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		Role:      m.Role,
		User:      NewUserResponse(m.User),
		CreatedAt: m.CreatedAt,
	}
}

type ProjectResponse struct {
	ID             uint                 `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	CreatedByID    uint                 `json:"created_by_id"`
	CreatedBy      *UserResponse        `json:"created_by,omitempty"`
	SlackWebhook   string               `json:"slack_webhook,omitempty"`
	DiscordWebhook string               `json:"discord_webhook,omitempty"`
	TeamMembers    []TeamMemberResponse `json:"team_members,omitempty"`
	Tasks          []TaskResponse       `json:"tasks,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// NewProjectResponse renders the project. Webhook URLs are only shown to
// the creator.
func NewProjectResponse(p models.Project, viewerID uint) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		CreatedByID: p.CreatedByID,
		CreatedBy:   optionalUser(&p.CreatedBy),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	if rules.IsCreator(viewerID, &p) {
		resp.SlackWebhook = p.SlackWebhook
		resp.DiscordWebhook = p.DiscordWebhook
	}

	for _, m := range p.TeamMembers {
		resp.TeamMembers = append(resp.TeamMembers, NewTeamMemberResponse(m))
	}
	for _, t := range p.Tasks {
		resp.Tasks = append(resp.Tasks, NewTaskResponse(t))
	}

	return resp
}

type TaskResponse struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	Priority     string          `json:"priority"`
	DueDate      *time.Time      `json:"due_date"`
	ProjectID    uint            `json:"project_id"`
	Project      *ProjectSummary `json:"project,omitempty"`
	AssignedToID *uint           `json:"assigned_to_id"`
	AssignedTo   *UserResponse   `json:"assigned_to,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type ProjectSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func NewTaskResponse(t models.Task) TaskResponse {
	resp := TaskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       t.Status,
		Priority:     t.Priority,
		DueDate:      t.DueDate,
		ProjectID:    t.ProjectID,
		AssignedToID: t.AssignedToID,
		AssignedTo:   optionalUser(t.AssignedTo),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if t.Project.ID != 0 {
		resp.Project = &ProjectSummary{ID: t.Project.ID, Title: t.Project.Title}
	}
	return resp
}

type MessageResponse struct {
	ID              uint          `json:"id"`
	Content         string        `json:"content"`
	ProjectID       uint          `json:"project_id"`
	UserID          uint          `json:"user_id"`
	User            *UserResponse `json:"user,omitempty"`
	ParentMessageID *uint         `json:"parent_message_id"`
	CreatedAt       time.Time     `json:"created_at"`
}

func NewMessageResponse(m models.Message) MessageResponse {
	return MessageResponse{
		ID:              m.ID,
		Content:         m.Content,
		ProjectID:       m.ProjectID,
		UserID:          m.UserID,
		User:            optionalUser(&m.User),
		ParentMessageID: m.ParentMessageID,
		CreatedAt:       m.CreatedAt,
	}
}

type ThreadResponse struct {
	Message MessageResponse   `json:"message"`
	Replies []MessageResponse `json:"replies"`
}

func NewThreadResponse(t rules.Thread) ThreadResponse {
	replies := make([]MessageResponse, 0, len(t.Replies))
	for _, r := range t.Replies {
		replies = append(replies, NewMessageResponse(r))
	}
	return ThreadResponse{Message: NewMessageResponse(t.Message), Replies: replies}
}

type NotificationResponse struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotificationResponse(n models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Content:   n.Content,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
