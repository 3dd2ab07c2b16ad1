// Package rules decides who may act on a project resource, who is notified
// as a side effect and in which order discussion threads are presented.
// Nothing in here touches the store: callers load the entities and pass them
// in.
package rules

import "github.com/synergysphere/synergysphere/internal/models"

type Action string

const (
	ViewProject      Action = "view_project"
	UpdateProject    Action = "update_project"
	DeleteProject    Action = "delete_project"
	ListTeamMembers  Action = "list_team_members"
	AddTeamMember    Action = "add_team_member"
	RemoveTeamMember Action = "remove_team_member"

	CreateTask Action = "create_task"
	ViewTask   Action = "view_task"
	UpdateTask Action = "update_task"
	DeleteTask Action = "delete_task"

	CreateMessage Action = "create_message"
	ViewMessage   Action = "view_message"
	DeleteMessage Action = "delete_message"

	ReadNotification   Action = "read_notification"
	MarkNotification   Action = "mark_notification"
	DeleteNotification Action = "delete_notification"
)

type relationship int

const (
	creatorOrMember relationship = iota
	creatorOnly
	messageAuthor
	recipient
)

var required = map[Action]relationship{
	ViewProject:      creatorOrMember,
	UpdateProject:    creatorOnly,
	DeleteProject:    creatorOnly,
	ListTeamMembers:  creatorOrMember,
	AddTeamMember:    creatorOnly,
	RemoveTeamMember: creatorOnly,

	CreateTask: creatorOrMember,
	ViewTask:   creatorOrMember,
	UpdateTask: creatorOrMember,
	DeleteTask: creatorOrMember,

	CreateMessage: creatorOrMember,
	ViewMessage:   creatorOrMember,
	DeleteMessage: messageAuthor,

	ReadNotification:   recipient,
	MarkNotification:   recipient,
	DeleteNotification: recipient,
}

var creatorReasons = map[Action]string{
	UpdateProject:    "only the project creator can update project details",
	DeleteProject:    "only the project creator can delete the project",
	AddTeamMember:    "only the project creator can add team members",
	RemoveTeamMember: "only the project creator can remove team members",
}

// Subject carries the already-loaded entities an action is evaluated
// against. Membership is the actor's own TeamMember row for Project, nil when
// there is none.
type Subject struct {
	Project      *models.Project
	Membership   *models.TeamMember
	Message      *models.Message
	Notification *models.Notification
}

// IsCreator reports whether actorID created the project.
func IsCreator(actorID uint, project *models.Project) bool {
	return project != nil && actorID != 0 && project.CreatedByID == actorID
}

// IsMember reports whether membership is actorID's row for the project.
func IsMember(actorID uint, project *models.Project, membership *models.TeamMember) bool {
	return project != nil && membership != nil && actorID != 0 &&
		membership.UserID == actorID && membership.ProjectID == project.ID
}

// CanAccess is the creator-or-member gate shared by every member-gated
// action. The creator passes without a membership row.
func CanAccess(actorID uint, project *models.Project, membership *models.TeamMember) bool {
	return IsCreator(actorID, project) || IsMember(actorID, project, membership)
}

// Authorize returns nil when actorID may perform action on s. Existence is
// always decided before the relationship, so a missing project is NotFound
// even for a caller who would not have had access to it.
func Authorize(action Action, actorID uint, s Subject) error {
	rel, ok := required[action]
	if !ok {
		return Forbidden("unknown action " + string(action))
	}

	if rel == recipient {
		if s.Notification == nil {
			return NotFound("notification not found")
		}
		if s.Notification.UserID != actorID {
			return Forbidden("notification belongs to another user")
		}
		return nil
	}

	if s.Project == nil {
		return NotFound("project not found")
	}

	switch rel {
	case creatorOnly:
		if !IsCreator(actorID, s.Project) {
			return Forbidden(creatorReasons[action])
		}
	case creatorOrMember:
		if !CanAccess(actorID, s.Project, s.Membership) {
			return Forbidden("you are not a member of this project")
		}
	case messageAuthor:
		if !CanAccess(actorID, s.Project, s.Membership) {
			return Forbidden("you are not a member of this project")
		}
		if err := MessageInProject(s.Project, s.Message); err != nil {
			return err
		}
		if s.Message.UserID != actorID {
			return Forbidden("you can only delete your own messages")
		}
	}

	return nil
}

// MessageInProject rejects a message that is absent or belongs to another
// project. A parent message in a different project is NotFound as well.
func MessageInProject(project *models.Project, message *models.Message) error {
	if project == nil || message == nil || message.ProjectID != project.ID {
		return NotFound("message not found in this project")
	}
	return nil
}

func TaskInProject(project *models.Project, task *models.Task) error {
	if project == nil || task == nil || task.ProjectID != project.ID {
		return NotFound("task not found in this project")
	}
	return nil
}

func MemberInProject(project *models.Project, member *models.TeamMember) error {
	if project == nil || member == nil || member.ProjectID != project.ID {
		return NotFound("team member not found in this project")
	}
	return nil
}
