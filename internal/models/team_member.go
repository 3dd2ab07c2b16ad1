package models

const (
	RoleMember = "MEMBER"
	RoleAdmin  = "ADMIN"
)

type TeamMember struct {
	BaseModel

	UserID    uint   `gorm:"not null;uniqueIndex:idx_team_member_user_project"`
	ProjectID uint   `gorm:"not null;uniqueIndex:idx_team_member_user_project;index"`
	Role      string `gorm:"not null;default:MEMBER"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID"`
	Project Project `gorm:"foreignKey:ProjectID"`
}
