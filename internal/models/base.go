package models

import "time"

// BaseModel is gorm.Model without soft deletes: collaboration rows are
// removed physically so unique indexes and cascades stay meaningful.
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
