package repositories

import (
	"github.com/devarchon/vibely/backend/internal/models"
	"gorm.io/gorm"
)

// RelationshipRepository defines the interface for follow-edge data operations.
// Uniqueness of the (follower, following) pair is enforced by the store's
// unique index; concurrent creates for the same pair surface as
// gorm.ErrDuplicatedKey, never as a silent duplicate.
type RelationshipRepository interface {
	Create(rel *models.Relationship) error
	Get(followerID, followingID uint) (*models.Relationship, error)
	GetByID(id uint) (*models.Relationship, error)
	UpdateStatus(followerID, followingID uint, fromStatus, toStatus string) error
	Delete(followerID, followingID uint) error
	DeletePending(followerID, followingID uint) error
	GetPendingForUser(followingID uint) ([]models.Relationship, error)
	GetFollowers(userID uint) ([]models.User, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetFollowersCount(userID uint) (int64, error)
	GetFollowingCount(userID uint) (int64, error)
	DeleteAllForUser(userID uint) error
}

// PostgresRelationshipRepository implements RelationshipRepository for PostgreSQL
type PostgresRelationshipRepository struct {
	db *gorm.DB
}

// NewPostgresRelationshipRepository creates a new PostgresRelationshipRepository
func NewPostgresRelationshipRepository(db *gorm.DB) *PostgresRelationshipRepository {
	return &PostgresRelationshipRepository{db: db}
}

func (r *PostgresRelationshipRepository) Create(rel *models.Relationship) error {
	return r.db.Create(rel).Error
}

func (r *PostgresRelationshipRepository) Get(followerID, followingID uint) (*models.Relationship, error) {
	var rel models.Relationship
	if err := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).First(&rel).Error; err != nil {
		return nil, err
	}
	return &rel, nil
}

func (r *PostgresRelationshipRepository) GetByID(id uint) (*models.Relationship, error) {
	var rel models.Relationship
	if err := r.db.First(&rel, id).Error; err != nil {
		return nil, err
	}
	return &rel, nil
}

// UpdateStatus transitions a relationship from one status to another.
// Returns gorm.ErrRecordNotFound when no row matched the pair and fromStatus.
func (r *PostgresRelationshipRepository) UpdateStatus(followerID, followingID uint, fromStatus, toStatus string) error {
	res := r.db.Model(&models.Relationship{}).
		Where("follower_id = ? AND following_id = ? AND status = ?", followerID, followingID, fromStatus).
		Update("status", toStatus)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresRelationshipRepository) Delete(followerID, followingID uint) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Relationship{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePending removes a pending relationship only; an approved edge is left intact
func (r *PostgresRelationshipRepository) DeletePending(followerID, followingID uint) error {
	res := r.db.Where("follower_id = ? AND following_id = ? AND status = ?",
		followerID, followingID, models.RelationshipPending).Delete(&models.Relationship{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetPendingForUser retrieves incoming pending requests, newest first
func (r *PostgresRelationshipRepository) GetPendingForUser(followingID uint) ([]models.Relationship, error) {
	var rels []models.Relationship
	err := r.db.Where("following_id = ? AND status = ?", followingID, models.RelationshipPending).
		Order("created_at DESC").
		Find(&rels).Error
	return rels, err
}

func (r *PostgresRelationshipRepository) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("relationships").Select("follower_id").
			Where("following_id = ? AND status = ?", userID, models.RelationshipApproved),
	).Find(&users).Error
	return users, err
}

func (r *PostgresRelationshipRepository) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("relationships").Select("following_id").
			Where("follower_id = ? AND status = ?", userID, models.RelationshipApproved),
	).Find(&users).Error
	return users, err
}

func (r *PostgresRelationshipRepository) GetFollowersCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Relationship{}).
		Where("following_id = ? AND status = ?", userID, models.RelationshipApproved).
		Count(&count).Error
	return count, err
}

func (r *PostgresRelationshipRepository) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Relationship{}).
		Where("follower_id = ? AND status = ?", userID, models.RelationshipApproved).
		Count(&count).Error
	return count, err
}

// DeleteAllForUser removes every follow edge touching the user, in either
// role. Used by the account-deletion cascade.
func (r *PostgresRelationshipRepository) DeleteAllForUser(userID uint) error {
	return r.db.Where("follower_id = ? OR following_id = ?", userID, userID).
		Delete(&models.Relationship{}).Error
}
