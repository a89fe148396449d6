package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Handle      string `json:"handle" gorm:"uniqueIndex;size:30"`
	Email       string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio" gorm:"size:200"`
	IsPrivate   bool   `json:"is_private" gorm:"default:false"` // Private accounts require follow approval
	Password    string `json:"-"`                               // Store hashed password, ignore for JSON serialization
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
	FCMToken    string `json:"-"`                               // Device token for push delivery, optional
}

// UserCompact is the public summary of a user, safe to embed in
// relationship and notification payloads.
type UserCompact struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Handle    string `json:"handle"`
	AvatarURL string `json:"avatar_url"`
}

// ToCompact returns the public summary of the user
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Name:      u.Name,
		Handle:    u.Handle,
		AvatarURL: u.AvatarURL,
	}
}

type CreateUserRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Handle      string `json:"handle" validate:"required,min=3,max=30,alphanum"`
	Email       string `json:"email" validate:"required,email"`
	FirebaseUID string `json:"firebase_uid" validate:"required"` // Firebase UID will be provided by the client after Firebase Auth
}

type CreateLocalUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Handle   string `json:"handle" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	Name      string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Bio       string `json:"bio,omitempty" validate:"omitempty,max=200"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	FCMToken  string `json:"fcm_token,omitempty"`
}

// UpdatePrivacyRequest toggles follow approval for the account
type UpdatePrivacyRequest struct {
	IsPrivate *bool `json:"is_private" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
