package model

import "time"

// BaseModel handles the numeric primary key and timestamps shared by
// owner-scoped records that are mutated in place.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
