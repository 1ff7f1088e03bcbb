package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a social media post stored in MongoDB
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        uint               `json:"user_id" bson:"user_id"` // ID of the author in PostgreSQL
	Content       string             `json:"content" bson:"content"`
	Image         string             `json:"image,omitempty" bson:"image,omitempty"`
	Video         string             `json:"video,omitempty" bson:"video,omitempty"`
	PostType      string             `json:"post_type" bson:"post_type"` // post, story, reel
	IsPinned      bool               `json:"is_pinned" bson:"is_pinned"`
	LikesCount    int                `json:"likes_count" bson:"likes_count"`
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	Image    string `json:"image,omitempty" validate:"omitempty,max=200"`
	Video    string `json:"video,omitempty" validate:"omitempty,max=200"`
	PostType string `json:"post_type,omitempty" validate:"omitempty,oneof=post story reel"`
}

// PinPostRequest defines the request body for pinning/unpinning a post
type PinPostRequest struct {
	IsPinned bool `json:"is_pinned"`
}
