package store

import (
	"errors"

	"wisper/internal/models"

	"gorm.io/gorm"
)

// GormStore is the database-backed ledger. The vote mutations run inside a
// transaction so the already-voted check, the insert/delete and the count
// recomputation commit or roll back together.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateUser(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (s *GormStore) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) CreateWisper(wisper *models.Wisper) error {
	return s.db.Create(wisper).Error
}

func (s *GormStore) GetWisper(id uint) (*models.Wisper, error) {
	var wisper models.Wisper
	if err := s.db.First(&wisper, id).Error; err != nil {
		return nil, translate(err)
	}
	return &wisper, nil
}

func (s *GormStore) ListWispers() ([]models.Wisper, error) {
	var wispers []models.Wisper
	err := s.db.Order("created_at DESC, id DESC").Find(&wispers).Error
	return wispers, err
}

func (s *GormStore) ListUserWispers(userID uint) ([]models.Wisper, error) {
	var wispers []models.Wisper
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&wispers).Error
	return wispers, err
}

func (s *GormStore) DeleteWisper(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var wisper models.Wisper
		if err := tx.First(&wisper, id).Error; err != nil {
			return translate(err)
		}
		// Cascade: no vote or comment may reference a nonexistent wisper.
		if err := tx.Where("wisper_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("wisper_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&wisper).Error
	})
}

func (s *GormStore) CastVote(wisperID, userID uint, voteType models.VoteType) (*models.Wisper, bool, error) {
	var wisper models.Wisper
	created := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&wisper, wisperID).Error; err != nil {
			return translate(err)
		}

		// Already voted - keep the existing vote untouched, whatever its type.
		var existing models.Vote
		err := tx.Where("user_id = ? AND wisper_id = ?", userID, wisperID).
			First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		vote := models.Vote{
			UserID:   userID,
			WisperID: wisperID,
			Type:     voteType,
		}
		if err := tx.Create(&vote).Error; err != nil {
			// A concurrent cast for the same pair can slip between the check
			// and the insert; the unique index rejects it and the call
			// degrades to the no-op path.
			if isDuplicate(err) {
				return nil
			}
			return err
		}
		created = true

		return recountVotes(tx, &wisper)
	})
	if err != nil {
		return nil, false, err
	}
	return &wisper, created, nil
}

func (s *GormStore) RetractVote(wisperID, userID uint) (*models.Wisper, error) {
	var wisper models.Wisper
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&wisper, wisperID).Error; err != nil {
			return translate(err)
		}

		res := tx.Where("user_id = ? AND wisper_id = ?", userID, wisperID).
			Delete(&models.Vote{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Nothing to retract.
			return nil
		}

		return recountVotes(tx, &wisper)
	})
	if err != nil {
		return nil, err
	}
	return &wisper, nil
}

// recountVotes recomputes the wisper's counters from the vote ledger inside
// the mutation's transaction. Counts are derived, never decremented, so a
// retract racing a cast can not drift the displayed number.
func recountVotes(tx *gorm.DB, wisper *models.Wisper) error {
	var upvotes int64
	if err := tx.Model(&models.Vote{}).
		Where("wisper_id = ? AND type = ?", wisper.ID, models.VoteTypeUpvote).
		Count(&upvotes).Error; err != nil {
		return err
	}
	var downvotes int64
	if err := tx.Model(&models.Vote{}).
		Where("wisper_id = ? AND type = ?", wisper.ID, models.VoteTypeDownvote).
		Count(&downvotes).Error; err != nil {
		return err
	}

	// Defensive floor, counts must never go negative.
	wisper.Upvotes = max(0, int(upvotes))
	wisper.Downvotes = max(0, int(downvotes))

	return tx.Model(&models.Wisper{}).Where("id = ?", wisper.ID).
		Updates(map[string]interface{}{
			"upvotes":   wisper.Upvotes,
			"downvotes": wisper.Downvotes,
		}).Error
}

func (s *GormStore) VotedWisperIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Vote{}).
		Where("user_id = ?", userID).
		Order("wisper_id ASC").
		Pluck("wisper_id", &ids).Error
	return ids, err
}

func (s *GormStore) AddComment(wisperID, userID uint, content string) (*models.Comment, error) {
	comment := models.Comment{
		WisperID: wisperID,
		UserID:   userID,
		Content:  content,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var wisper models.Wisper
		if err := tx.First(&wisper, wisperID).Error; err != nil {
			return translate(err)
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *GormStore) ListComments(wisperID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Where("wisper_id = ?", wisperID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

func (s *GormStore) CreateNotification(n *models.Notification) error {
	return s.db.Create(n).Error
}

func (s *GormStore) ListNotifications(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}

func (s *GormStore) MarkNotificationRead(id, userID uint) error {
	var notification models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).
		First(&notification).Error; err != nil {
		return translate(err)
	}
	// Idempotent: saving an already-read notification is fine.
	notification.IsRead = true
	return s.db.Save(&notification).Error
}

func (s *GormStore) MarkAllNotificationsRead(userID uint) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (s *GormStore) CountUnreadNotifications(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
