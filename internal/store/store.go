package store

import (
	"errors"

	"wisper/internal/models"
)

// ErrNotFound is returned when a referenced user, wisper or notification
// does not exist. Anything else coming out of a Store is a storage failure
// and aborts the calling operation.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateUsername is returned by CreateUser when the handle is taken.
var ErrDuplicateUsername = errors.New("username already taken")

// Store is the ledger behind the vote engine, the comment path and the
// notification log. Implementations must keep the derived vote counts on a
// wisper equal to the count of active votes referencing it, and must never
// allow two active votes for the same (user, wisper) pair.
type Store interface {
	// Users
	CreateUser(user *models.User) error
	GetUser(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)

	// Wispers
	CreateWisper(wisper *models.Wisper) error
	GetWisper(id uint) (*models.Wisper, error)
	ListWispers() ([]models.Wisper, error)
	ListUserWispers(userID uint) ([]models.Wisper, error)
	// DeleteWisper removes the wisper and cascades to every vote and
	// comment referencing it.
	DeleteWisper(id uint) error

	// Vote engine. CastVote is idempotent for an existing (user, wisper)
	// vote: it reports created=false and returns the wisper unchanged
	// without touching the existing vote's type. Both operations recompute
	// the wisper's Upvotes and Downvotes from the vote ledger before
	// returning.
	CastVote(wisperID, userID uint, voteType models.VoteType) (wisper *models.Wisper, created bool, err error)
	RetractVote(wisperID, userID uint) (*models.Wisper, error)
	VotedWisperIDs(userID uint) ([]uint, error)

	// Comments, oldest first for the thread view.
	AddComment(wisperID, userID uint, content string) (*models.Comment, error)
	ListComments(wisperID uint) ([]models.Comment, error)

	// Notification log, newest first for retrieval.
	CreateNotification(n *models.Notification) error
	ListNotifications(userID uint) ([]models.Notification, error)
	// MarkNotificationRead is idempotent and scoped to the recipient.
	MarkNotificationRead(id, userID uint) error
	MarkAllNotificationsRead(userID uint) error
	CountUnreadNotifications(userID uint) (int64, error)
}
