package store

import (
	"sort"
	"sync"
	"time"

	"wisper/internal/models"
)

// MemStore keeps the whole ledger in process memory. It exists for tests and
// for running the service without a database; it honors the same invariants
// as GormStore. A single mutex serializes mutations, which trivially gives
// the per-pair atomicity the vote engine needs.
type MemStore struct {
	mu sync.Mutex

	users         map[uint]*models.User
	wispers       map[uint]*models.Wisper
	votes         map[uint]*models.Vote
	comments      map[uint]*models.Comment
	notifications map[uint]*models.Notification

	nextUserID         uint
	nextWisperID       uint
	nextVoteID         uint
	nextCommentID      uint
	nextNotificationID uint
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:              make(map[uint]*models.User),
		wispers:            make(map[uint]*models.Wisper),
		votes:              make(map[uint]*models.Vote),
		comments:           make(map[uint]*models.Comment),
		notifications:      make(map[uint]*models.Notification),
		nextUserID:         1,
		nextWisperID:       1,
		nextVoteID:         1,
		nextCommentID:      1,
		nextNotificationID: 1,
	}
}

func (s *MemStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return ErrDuplicateUsername
		}
	}
	user.ID = s.nextUserID
	s.nextUserID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *MemStore) GetUser(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *MemStore) GetUserByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateWisper(wisper *models.Wisper) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wisper.ID = s.nextWisperID
	s.nextWisperID++
	if wisper.CreatedAt.IsZero() {
		wisper.CreatedAt = time.Now()
	}
	clone := *wisper
	s.wispers[wisper.ID] = &clone
	return nil
}

func (s *MemStore) GetWisper(id uint) (*models.Wisper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wisper, ok := s.wispers[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *wisper
	return &clone, nil
}

func (s *MemStore) ListWispers() ([]models.Wisper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wispers := make([]models.Wisper, 0, len(s.wispers))
	for _, w := range s.wispers {
		wispers = append(wispers, *w)
	}
	sortWispersNewestFirst(wispers)
	return wispers, nil
}

func (s *MemStore) ListUserWispers(userID uint) ([]models.Wisper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var wispers []models.Wisper
	for _, w := range s.wispers {
		if w.UserID == userID {
			wispers = append(wispers, *w)
		}
	}
	sortWispersNewestFirst(wispers)
	return wispers, nil
}

func (s *MemStore) DeleteWisper(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.wispers[id]; !ok {
		return ErrNotFound
	}
	delete(s.wispers, id)
	for voteID, vote := range s.votes {
		if vote.WisperID == id {
			delete(s.votes, voteID)
		}
	}
	for commentID, comment := range s.comments {
		if comment.WisperID == id {
			delete(s.comments, commentID)
		}
	}
	return nil
}

func (s *MemStore) CastVote(wisperID, userID uint, voteType models.VoteType) (*models.Wisper, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wisper, ok := s.wispers[wisperID]
	if !ok {
		return nil, false, ErrNotFound
	}

	// Already voted: no-op, the existing vote keeps its type.
	for _, vote := range s.votes {
		if vote.UserID == userID && vote.WisperID == wisperID {
			clone := *wisper
			return &clone, false, nil
		}
	}

	vote := &models.Vote{
		ID:        s.nextVoteID,
		UserID:    userID,
		WisperID:  wisperID,
		Type:      voteType,
		CreatedAt: time.Now(),
	}
	s.nextVoteID++
	s.votes[vote.ID] = vote

	s.recountVotes(wisper)
	clone := *wisper
	return &clone, true, nil
}

func (s *MemStore) RetractVote(wisperID, userID uint) (*models.Wisper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wisper, ok := s.wispers[wisperID]
	if !ok {
		return nil, ErrNotFound
	}

	for voteID, vote := range s.votes {
		if vote.UserID == userID && vote.WisperID == wisperID {
			delete(s.votes, voteID)
		}
	}
	s.recountVotes(wisper)
	clone := *wisper
	return &clone, nil
}

func (s *MemStore) recountVotes(wisper *models.Wisper) {
	upvotes, downvotes := 0, 0
	for _, vote := range s.votes {
		if vote.WisperID != wisper.ID {
			continue
		}
		switch vote.Type {
		case models.VoteTypeUpvote:
			upvotes++
		case models.VoteTypeDownvote:
			downvotes++
		}
	}
	wisper.Upvotes = max(0, upvotes)
	wisper.Downvotes = max(0, downvotes)
}

func (s *MemStore) VotedWisperIDs(userID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uint, 0)
	for _, vote := range s.votes {
		if vote.UserID == userID {
			ids = append(ids, vote.WisperID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *MemStore) AddComment(wisperID, userID uint, content string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.wispers[wisperID]; !ok {
		return nil, ErrNotFound
	}

	comment := &models.Comment{
		ID:        s.nextCommentID,
		WisperID:  wisperID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	s.nextCommentID++
	s.comments[comment.ID] = comment

	clone := *comment
	return &clone, nil
}

func (s *MemStore) ListComments(wisperID uint) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var comments []models.Comment
	for _, c := range s.comments {
		if c.WisperID == wisperID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (s *MemStore) CreateNotification(n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = s.nextNotificationID
	s.nextNotificationID++
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	clone := *n
	s.notifications[n.ID] = &clone
	return nil
}

func (s *MemStore) ListNotifications(userID uint) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notifications []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			notifications = append(notifications, *n)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		if notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].ID > notifications[j].ID
		}
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (s *MemStore) MarkNotificationRead(id, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (s *MemStore) MarkAllNotificationsRead(userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range s.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (s *MemStore) CountUnreadNotifications(userID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func sortWispersNewestFirst(wispers []models.Wisper) {
	sort.Slice(wispers, func(i, j int) bool {
		if wispers[i].CreatedAt.Equal(wispers[j].CreatedAt) {
			return wispers[i].ID > wispers[j].ID
		}
		return wispers[i].CreatedAt.After(wispers[j].CreatedAt)
	})
}
