package models

import "time"

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`  // recipient
	ActorID   uint      `json:"actor_id" gorm:"index"` // user whose action produced the notification
	Content   string    `json:"content"`
	Link      string    `json:"link" gorm:"size:200"`
	IsRead    bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
