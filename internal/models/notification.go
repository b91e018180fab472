package models

import (
	"time"
)

type NotificationKind string

const (
	NotificationKindLike    NotificationKind = "like"
	NotificationKindComment NotificationKind = "comment"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"` // Receiver
	User      User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Kind      NotificationKind `gorm:"type:varchar(20);not null" json:"kind"`
	Content   string           `gorm:"type:text" json:"content"` // Pre-truncated snippet, built at emission time
	WisperID  *uint            `gorm:"index" json:"wisper_id"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
