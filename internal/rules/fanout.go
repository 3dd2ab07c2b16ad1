package rules

import (
	"fmt"

	"github.com/synergysphere/synergysphere/internal/models"
)

// NotificationCommand is one notification row to create as a side effect of
// a successful action.
type NotificationCommand struct {
	RecipientID uint
	Type        string
	Content     string
}

func (c NotificationCommand) Notification() models.Notification {
	return models.Notification{
		UserID:  c.RecipientID,
		Type:    c.Type,
		Content: c.Content,
	}
}

// MessagePosted addresses every team member except the author, plus the
// creator when the creator did not write the message. Each recipient appears
// once even if the creator also holds a membership row, a case AddMember
// refuses and so only reachable through data written outside the API.
func MessagePosted(project models.Project, authorID uint, members []models.TeamMember) []NotificationCommand {
	content := fmt.Sprintf("New message in project %s", project.Title)
	seen := make(map[uint]struct{}, len(members)+1)
	cmds := make([]NotificationCommand, 0, len(members)+1)

	add := func(userID uint) {
		if userID == 0 || userID == authorID {
			return
		}
		if _, dup := seen[userID]; dup {
			return
		}
		seen[userID] = struct{}{}
		cmds = append(cmds, NotificationCommand{
			RecipientID: userID,
			Type:        models.NotificationMessagePosted,
			Content:     content,
		})
	}

	for _, m := range members {
		add(m.UserID)
	}
	add(project.CreatedByID)

	return cmds
}

// TaskCreated notifies the assignee of a new task, if there is one.
func TaskCreated(task models.Task) []NotificationCommand {
	assignee := task.AssigneeID()
	if assignee == 0 {
		return nil
	}
	return []NotificationCommand{{
		RecipientID: assignee,
		Type:        models.NotificationTaskAssigned,
		Content:     fmt.Sprintf("You have been assigned a new task: %s", task.Title),
	}}
}

// TaskReassigned notifies the new assignee only when the assignee actually
// changed to someone. Unchanged or cleared assignments produce nothing.
func TaskReassigned(previousAssigneeID uint, task models.Task) []NotificationCommand {
	assignee := task.AssigneeID()
	if assignee == 0 || assignee == previousAssigneeID {
		return nil
	}
	return []NotificationCommand{{
		RecipientID: assignee,
		Type:        models.NotificationTaskAssigned,
		Content:     fmt.Sprintf("You have been assigned a task: %s", task.Title),
	}}
}
