package models

import "time"

// Statuses stored on a relationship row
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusBlocked  = "blocked"
)

// PairState classifies the relationship between two users from one side's view
type PairState string

const (
	PairNone            PairState = "none"
	PairPendingOutgoing PairState = "pending_outgoing"
	PairPendingIncoming PairState = "pending_incoming"
	PairAccepted        PairState = "accepted"
	PairBlocked         PairState = "blocked"
)

// Relationship is a directional friend row. UserID is the requester and
// FriendID the target; once accepted the relationship is symmetric, so at
// most one row may exist per unordered pair and lookups check both orderings.
type Relationship struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_friend"`
	FriendID      uint      `json:"friend_id" gorm:"index;uniqueIndex:idx_user_friend"`
	Status        string    `json:"status" gorm:"type:varchar(20);default:'pending'"` // pending, accepted, blocked
	IsCloseFriend bool      `json:"is_close_friend" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName keeps the historical table name
func (Relationship) TableName() string { return "friends" }

// CreateFriendRequest defines the request body for sending a friend request
type CreateFriendRequest struct {
	FriendID uint `json:"friend_id" validate:"required"`
}

// FriendRequestEvent is the payload of the "friend request created" event,
// persisted for the target as a Notification.
type FriendRequestEvent struct {
	TargetUserID     uint   `json:"target_user_id"`
	ActorDisplayName string `json:"actor_display_name"`
	ActorProfileLink string `json:"actor_profile_link"`
}
