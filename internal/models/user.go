package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a registered account (PostgreSQL)
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:80;uniqueIndex"`
	Email        string    `json:"email" gorm:"size:120;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:128"` // Store hashed password, ignore for JSON serialization
	ProfilePic   string    `json:"profile_pic" gorm:"size:200;default:'default_profile.png'"`
	CoverPhoto   string    `json:"cover_photo" gorm:"size:200;default:'default_cover.jpg'"`
	Bio          string    `json:"bio"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserCompact is the summary shape embedded in posts, comments and notifications
type UserCompact struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profile_pic"`
}

// ToCompact converts a User to its compact summary
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:         u.ID,
		Username:   u.Username,
		ProfilePic: u.ProfilePic,
	}
}

// RegisterRequest defines the request body for creating a local account
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignInRequest defines the request body for signing in
type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for updating the own profile
type UpdateProfileRequest struct {
	Bio        string `json:"bio,omitempty" validate:"omitempty,max=1000"`
	ProfilePic string `json:"profile_pic,omitempty" validate:"omitempty,max=200"`
	CoverPhoto string `json:"cover_photo,omitempty" validate:"omitempty,max=200"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
