package repositories

import (
	"errors"

	"github.com/sociafam/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for post reactions
type LikeRepository interface {
	Toggle(postID string, userID uint, reaction string) (*models.ReactionResult, error)
	GetLikesByPostID(postID string) ([]models.Like, error)
	GetLikesCountByPostID(postID string) (int64, error)
	DeleteByPostID(postID string) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// Toggle applies a reaction as one atomic read-modify-write per (user, post):
// no existing row inserts one, the same reaction deletes it, a different
// reaction mutates the row in place. The unique pair index backstops races.
func (r *PostgresLikeRepository) Toggle(postID string, userID uint, reaction string) (*models.ReactionResult, error) {
	result := &models.ReactionResult{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
		switch {
		case err == nil && existing.Reaction == reaction:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			result.Liked = false
		case err == nil:
			if err := tx.Model(&existing).Update("reaction", reaction).Error; err != nil {
				return err
			}
			result.Liked = true
			result.Reaction = reaction
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := models.Like{PostID: postID, UserID: userID, Reaction: reaction}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			result.Liked = true
			result.Reaction = reaction
		default:
			return err
		}
		return tx.Model(&models.Like{}).Where("post_id = ?", postID).Count(&result.LikesCount).Error
	})
	if err != nil {
		return nil, storeErr("toggle reaction", err)
	}
	return result, nil
}

// GetLikesByPostID retrieves all likes for a specific post
func (r *PostgresLikeRepository) GetLikesByPostID(postID string) ([]models.Like, error) {
	var likes []models.Like
	if err := r.db.Where("post_id = ?", postID).Find(&likes).Error; err != nil {
		return nil, storeErr("list likes", err)
	}
	return likes, nil
}

// GetLikesCountByPostID retrieves the count of likes for a specific post
func (r *PostgresLikeRepository) GetLikesCountByPostID(postID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, storeErr("count likes", err)
	}
	return count, nil
}

// DeleteByPostID removes every like of a deleted post so no row can
// reference a missing post
func (r *PostgresLikeRepository) DeleteByPostID(postID string) error {
	if err := r.db.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
		return storeErr("delete likes for post", err)
	}
	return nil
}
