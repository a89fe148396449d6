package repositories

import (
	"github.com/devarchon/vibely/backend/internal/models"
	"gorm.io/gorm"
)

// BlockRepository defines the interface for block-edge data operations
type BlockRepository interface {
	// Create inserts the block and, in the same transaction, removes any
	// follow relationship between the two users in either direction.
	Create(block *models.Block) error
	Delete(blockerID, blockedID uint) error
	ExistsBetween(userA, userB uint) (bool, error)
	GetBlockedUsers(blockerID uint) ([]models.User, error)
	DeleteAllForUser(userID uint) error
}

// PostgresBlockRepository implements BlockRepository for PostgreSQL
type PostgresBlockRepository struct {
	db *gorm.DB
}

// NewPostgresBlockRepository creates a new PostgresBlockRepository
func NewPostgresBlockRepository(db *gorm.DB) *PostgresBlockRepository {
	return &PostgresBlockRepository{db: db}
}

func (r *PostgresBlockRepository) Create(block *models.Block) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(block).Error; err != nil {
			return err
		}
		// Blocking severs the follow edges both ways
		return tx.Where(
			"(follower_id = ? AND following_id = ?) OR (follower_id = ? AND following_id = ?)",
			block.BlockerID, block.BlockedID, block.BlockedID, block.BlockerID,
		).Delete(&models.Relationship{}).Error
	})
}

func (r *PostgresBlockRepository) Delete(blockerID, blockedID uint) error {
	res := r.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).Delete(&models.Block{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExistsBetween reports whether a block exists in either direction
func (r *PostgresBlockRepository) ExistsBetween(userA, userB uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Block{}).Where(
		"(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
		userA, userB, userB, userA,
	).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresBlockRepository) GetBlockedUsers(blockerID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("blocks").Select("blocked_id").Where("blocker_id = ?", blockerID),
	).Find(&users).Error
	return users, err
}

// DeleteAllForUser removes every block touching the user, in either role
func (r *PostgresBlockRepository) DeleteAllForUser(userID uint) error {
	return r.db.Where("blocker_id = ? OR blocked_id = ?", userID, userID).
		Delete(&models.Block{}).Error
}
