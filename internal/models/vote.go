package models

import (
	"time"
)

type VoteType string

const (
	VoteTypeUpvote   VoteType = "upvote"
	VoteTypeDownvote VoteType = "downvote"
)

type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_wisper" json:"user_id"`
	WisperID  uint      `gorm:"not null;uniqueIndex:idx_votes_user_wisper;index" json:"wisper_id"`
	Type      VoteType  `gorm:"type:varchar(10);not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// The unique index on (user_id, wisper_id) makes a concurrent double-cast an
// insert-if-absent: the second insert fails at the database and the caller
// falls back to the already-voted no-op path. A vote is never updated in
// place; retraction deletes the row, re-voting inserts a fresh one.
