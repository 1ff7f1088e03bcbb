package repositories

import (
	"github.com/sociafam/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for direct message operations
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	GetConversation(userID, otherID uint, limit int) ([]models.Message, error)
	GetUnreadCount(userID uint) (int64, error)
	MarkConversationRead(userID, otherID uint) error
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// CreateMessage stores a new direct message
func (r *PostgresMessageRepository) CreateMessage(message *models.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return storeErr("create message", err)
	}
	return nil
}

// GetConversation retrieves the messages exchanged between two users,
// oldest first
func (r *PostgresMessageRepository) GetConversation(userID, otherID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, otherID, otherID, userID).
		Order("created_at ASC").Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, storeErr("list conversation", err)
	}
	return messages, nil
}

// GetUnreadCount retrieves the number of unread messages addressed to a user
func (r *PostgresMessageRepository) GetUnreadCount(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, storeErr("count unread messages", err)
	}
	return count, nil
}

// MarkConversationRead marks every message from otherID to userID as read
func (r *PostgresMessageRepository) MarkConversationRead(userID, otherID uint) error {
	if err := r.db.Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", userID, otherID, false).
		Update("is_read", true).Error; err != nil {
		return storeErr("mark conversation read", err)
	}
	return nil
}
