package models

import "time"

// Block represents a directed block edge. While a block exists in either
// direction between two users, no follow relationship may exist or be
// created between them.
type Block struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BlockerID uint      `json:"blocker_id" gorm:"index;uniqueIndex:idx_blocker_blocked"`
	BlockedID uint      `json:"blocked_id" gorm:"index;uniqueIndex:idx_blocker_blocked"`
	CreatedAt time.Time `json:"created_at"`
}
