package models

import "time"

// Notification types
const (
	NotificationFollow         = "follow"          // public account gained a follower
	NotificationFollowRequest  = "follow_request"  // private account received a request
	NotificationFollowApproved = "follow_approved" // request was accepted
)

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
