package store

import (
	"errors"
	"testing"

	"wisper/internal/db"
	"wisper/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewGormStore(conn)
}

func seedGorm(t *testing.T, s *GormStore) (*models.User, *models.User, *models.Wisper) {
	t.Helper()
	author := &models.User{Username: "author", Password: "x"}
	if err := s.CreateUser(author); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	voter := &models.User{Username: "voter", Password: "x"}
	if err := s.CreateUser(voter); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	wisper := &models.Wisper{UserID: author.ID, Content: "hello out there"}
	if err := s.CreateWisper(wisper); err != nil {
		t.Fatalf("CreateWisper failed: %v", err)
	}
	return author, voter, wisper
}

func TestGormCastVoteIdempotent(t *testing.T) {
	s := newTestGormStore(t)
	_, voter, wisper := seedGorm(t, s)

	w, created, err := s.CastVote(wisper.ID, voter.ID, models.VoteTypeUpvote)
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if !created || w.Upvotes != 1 {
		t.Fatalf("expected created vote and 1 upvote, got created=%v upvotes=%d", created, w.Upvotes)
	}

	w, created, err = s.CastVote(wisper.ID, voter.ID, models.VoteTypeUpvote)
	if err != nil {
		t.Fatalf("second CastVote failed: %v", err)
	}
	if created || w.Upvotes != 1 {
		t.Fatalf("expected idempotent no-op, got created=%v upvotes=%d", created, w.Upvotes)
	}

	// The persisted counter matches the ledger
	reloaded, err := s.GetWisper(wisper.ID)
	if err != nil {
		t.Fatalf("GetWisper failed: %v", err)
	}
	if reloaded.Upvotes != 1 || reloaded.Downvotes != 0 {
		t.Fatalf("persisted counts drifted: up=%d down=%d", reloaded.Upvotes, reloaded.Downvotes)
	}
}

func TestGormRetractVote(t *testing.T) {
	s := newTestGormStore(t)
	_, voter, wisper := seedGorm(t, s)

	s.CastVote(wisper.ID, voter.ID, models.VoteTypeUpvote)

	w, err := s.RetractVote(wisper.ID, voter.ID)
	if err != nil {
		t.Fatalf("RetractVote failed: %v", err)
	}
	if w.Upvotes != 0 {
		t.Fatalf("expected 0 upvotes, got %d", w.Upvotes)
	}

	// Retraction is a delete; re-voting inserts a fresh row
	w, created, err := s.CastVote(wisper.ID, voter.ID, models.VoteTypeUpvote)
	if err != nil {
		t.Fatalf("re-cast failed: %v", err)
	}
	if !created || w.Upvotes != 1 {
		t.Fatalf("expected fresh vote after retract, got created=%v upvotes=%d", created, w.Upvotes)
	}
}

func TestGormRetractWithoutVote(t *testing.T) {
	s := newTestGormStore(t)
	_, voter, wisper := seedGorm(t, s)

	w, err := s.RetractVote(wisper.ID, voter.ID)
	if err != nil {
		t.Fatalf("RetractVote failed: %v", err)
	}
	if w.Upvotes != 0 || w.Downvotes != 0 {
		t.Fatalf("counts changed on empty retract: up=%d down=%d", w.Upvotes, w.Downvotes)
	}
}

func TestGormVoteNotFound(t *testing.T) {
	s := newTestGormStore(t)
	_, voter, _ := seedGorm(t, s)

	if _, _, err := s.CastVote(999, voter.ID, models.VoteTypeUpvote); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.RetractVote(999, voter.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGormDeleteWisperCascades(t *testing.T) {
	s := newTestGormStore(t)
	_, voter, wisper := seedGorm(t, s)

	s.CastVote(wisper.ID, voter.ID, models.VoteTypeUpvote)
	if _, err := s.AddComment(wisper.ID, voter.ID, "nice"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	if err := s.DeleteWisper(wisper.ID); err != nil {
		t.Fatalf("DeleteWisper failed: %v", err)
	}

	if _, _, err := s.CastVote(wisper.ID, voter.ID, models.VoteTypeUpvote); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	ids, err := s.VotedWisperIDs(voter.ID)
	if err != nil {
		t.Fatalf("VotedWisperIDs failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("votes survived the cascade: %v", ids)
	}
	comments, err := s.ListComments(wisper.ID)
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("comments survived the cascade: %d", len(comments))
	}
}

func TestGormUniqueVoteIndex(t *testing.T) {
	s := newTestGormStore(t)
	_, voter, wisper := seedGorm(t, s)

	s.CastVote(wisper.ID, voter.ID, models.VoteTypeUpvote)

	// Bypass the engine and insert the duplicate directly: the index itself
	// must reject a second active vote for the pair.
	err := s.db.Create(&models.Vote{
		UserID:   voter.ID,
		WisperID: wisper.ID,
		Type:     models.VoteTypeDownvote,
	}).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestGormNotificationsAndMarkRead(t *testing.T) {
	s := newTestGormStore(t)
	author, _, wisper := seedGorm(t, s)

	n := &models.Notification{UserID: author.ID, Kind: models.NotificationKindLike, Content: "x", WisperID: &wisper.ID}
	if err := s.CreateNotification(n); err != nil {
		t.Fatalf("CreateNotification failed: %v", err)
	}

	if err := s.MarkNotificationRead(n.ID, author.ID); err != nil {
		t.Fatalf("MarkNotificationRead failed: %v", err)
	}
	if err := s.MarkNotificationRead(n.ID, author.ID); err != nil {
		t.Fatalf("second MarkNotificationRead failed: %v", err)
	}

	notifications, err := s.ListNotifications(author.ID)
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(notifications) != 1 || !notifications[0].IsRead {
		t.Fatalf("expected one read notification, got %+v", notifications)
	}

	if err := s.MarkNotificationRead(999, author.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGormDuplicateUsername(t *testing.T) {
	s := newTestGormStore(t)

	if err := s.CreateUser(&models.User{Username: "dup", Password: "x"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := s.CreateUser(&models.User{Username: "dup", Password: "y"}); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}
