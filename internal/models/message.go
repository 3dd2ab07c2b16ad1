package models

type Message struct {
	BaseModel

	Content         string `gorm:"not null"`
	ProjectID       uint   `gorm:"not null;index"`
	UserID          uint   `gorm:"not null;index"`
	ParentMessageID *uint  `gorm:"index"`

	// Relationships
	Project       Project   `gorm:"foreignKey:ProjectID"`
	User          User      `gorm:"foreignKey:UserID"`
	ParentMessage *Message  `gorm:"foreignKey:ParentMessageID"`
	Replies       []Message `gorm:"foreignKey:ParentMessageID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
