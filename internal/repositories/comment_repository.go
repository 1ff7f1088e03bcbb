package repositories

import (
	"errors"

	"github.com/sociafam/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByPostID(postID string) ([]models.Comment, error)
	CountByPostID(postID string) (int64, error)
	DeleteComment(id uint) error
	DeleteByPostID(postID string) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return storeErr("create comment", err)
	}
	return nil
}

// GetCommentByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr("get comment", err)
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all comments for a post, oldest first
func (r *PostgresCommentRepository) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("post_id = ?", postID).Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, storeErr("list comments", err)
	}
	return comments, nil
}

// CountByPostID retrieves the number of comments on a post
func (r *PostgresCommentRepository) CountByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, storeErr("count comments", err)
	}
	return count, nil
}

// DeleteComment deletes a comment by ID
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	if err := r.db.Delete(&models.Comment{}, id).Error; err != nil {
		return storeErr("delete comment", err)
	}
	return nil
}

// DeleteByPostID removes every comment of a deleted post so no row can
// reference a missing post
func (r *PostgresCommentRepository) DeleteByPostID(postID string) error {
	if err := r.db.Unscoped().Where("post_id = ?", postID).
		Delete(&models.Comment{}).Error; err != nil {
		return storeErr("delete comments for post", err)
	}
	return nil
}
