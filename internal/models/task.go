package models

import "time"

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusDone       = "done"
)

const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

type Task struct {
	BaseModel

	Title        string `gorm:"not null"`
	Description  string
	Status       string `gorm:"not null;default:todo"`
	Priority     string `gorm:"not null;default:medium"`
	DueDate      *time.Time
	ProjectID    uint  `gorm:"not null;index"`
	AssignedToID *uint `gorm:"index"`

	// Relationships
	Project    Project `gorm:"foreignKey:ProjectID"`
	AssignedTo *User   `gorm:"foreignKey:AssignedToID"`
}

// AssigneeID returns the assignee's id, or zero when the task is unassigned.
func (t Task) AssigneeID() uint {
	if t.AssignedToID == nil {
		return 0
	}
	return *t.AssignedToID
}
