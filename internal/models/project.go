package models

type Project struct {
	BaseModel

	Title          string `gorm:"not null"`
	Description    string
	CreatedByID    uint `gorm:"not null;index"`
	SlackWebhook   string
	DiscordWebhook string

	// Relationships
	CreatedBy   User         `gorm:"foreignKey:CreatedByID"`
	TeamMembers []TeamMember `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Tasks       []Task       `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Messages    []Message    `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
