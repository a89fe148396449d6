package models

import "time"

// Relationship status values
const (
	RelationshipPending  = "pending"
	RelationshipApproved = "approved"
)

// Relationship represents an Instagram-style follow edge. Follows of
// private accounts start as pending and must be approved by the target;
// follows of public accounts are approved on creation.
type Relationship struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CreatedAt   time.Time `json:"created_at"`
}

// PendingRequest is one entry of the incoming follow-request list,
// enriched with the requester's public summary.
type PendingRequest struct {
	RequestID   uint        `json:"request_id"`
	Requester   UserCompact `json:"requester"`
	RequestedAt time.Time   `json:"requested_at"`
}
