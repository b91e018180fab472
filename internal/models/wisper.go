package models

import (
	"time"
)

type Wisper struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Content string `gorm:"type:text;not null" json:"content"`
	// Upvotes/Downvotes are derived from the votes table after every
	// cast/retract. They are never incremented independently.
	Upvotes   int       `gorm:"default:0" json:"upvotes"`
	Downvotes int       `gorm:"default:0" json:"downvotes"`
	CreatedAt time.Time `json:"created_at"`
}
