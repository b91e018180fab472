package services

import (
	"fmt"
	"log"

	"wisper/internal/models"
	"wisper/internal/store"
	"wisper/internal/utils"
)

const snippetLen = 50

// Pusher is the live delivery side of the fan-out. The realtime hub
// implements it; tests substitute a fake.
type Pusher interface {
	Push(userID uint, n *models.Notification) bool
}

// Notifier writes an interaction event to the durable notification log and
// then nudges the recipient's live channel if one is registered. The
// durable write strictly precedes the push, so a missed push never loses
// the record. Callers suppress self-notifications before calling Notify,
// using the wisper's stored author id as the recipient.
type Notifier struct {
	store store.Store
	hub   Pusher
}

func NewNotifier(s store.Store, hub Pusher) *Notifier {
	return &Notifier{store: s, hub: hub}
}

// NotifyLike records that someone upvoted the wisper.
func (n *Notifier) NotifyLike(recipientID uint, wisper *models.Wisper) error {
	content := fmt.Sprintf("Someone liked your wisper: %q", utils.Snippet(wisper.Content, snippetLen))
	return n.emit(recipientID, models.NotificationKindLike, content, wisper.ID)
}

// NotifyComment records that someone commented on the wisper.
func (n *Notifier) NotifyComment(recipientID uint, wisper *models.Wisper) error {
	content := fmt.Sprintf("Someone commented on your wisper: %q", utils.Snippet(wisper.Content, snippetLen))
	return n.emit(recipientID, models.NotificationKindComment, content, wisper.ID)
}

func (n *Notifier) emit(recipientID uint, kind models.NotificationKind, content string, wisperID uint) error {
	notification := models.Notification{
		UserID:   recipientID,
		Kind:     kind,
		Content:  content,
		WisperID: &wisperID,
	}
	if err := n.store.CreateNotification(&notification); err != nil {
		// No speculative delivery: if the log write failed there is
		// nothing to push.
		return err
	}

	if !n.hub.Push(recipientID, &notification) {
		// Informational only. The recipient picks it up on the next pull.
		log.Printf("notification %d for user %d not delivered live", notification.ID, recipientID)
	}
	return nil
}
