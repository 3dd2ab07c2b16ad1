package models

const (
	NotificationMessagePosted = "message_posted"
	NotificationTaskAssigned  = "task_assigned"
)

type Notification struct {
	BaseModel

	UserID  uint   `gorm:"not null;index"`
	Type    string `gorm:"not null"`
	Content string `gorm:"not null"`
	Read    bool   `gorm:"not null;default:false;index"`

	// Relationships
	User User `gorm:"foreignKey:UserID"`
}
