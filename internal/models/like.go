package models

import "time"

// Like represents one user's reaction to a post. The unique index keeps at
// most one row per (post, user); changing the reaction mutates that row.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"` // MongoDB ObjectID as string
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	Reaction  string    `json:"reaction" gorm:"type:varchar(10);default:'like'"` // like, love, haha, wow, sad, angry
	CreatedAt time.Time `json:"created_at"`
}

// ReactRequest defines the request body for reacting to a post
type ReactRequest struct {
	Reaction string `json:"reaction" validate:"required,oneof=like love haha wow sad angry"`
}

// ReactionResult reports the outcome of a reaction toggle
type ReactionResult struct {
	Liked      bool   `json:"liked"`
	Reaction   string `json:"reaction,omitempty"`
	LikesCount int64  `json:"likes_count"`
}
