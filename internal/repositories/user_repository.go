package repositories

import (
	"errors"

	"github.com/sociafam/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	SearchUsers(query string) ([]models.User, error)
	SuggestFriends(viewerID uint, limit int) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return storeErr("create user", err)
	}
	return nil
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr("get user", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by their unique username
func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr("get user by username", err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by their unique email
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr("get user by email", err)
	}
	return &user, nil
}

// UpdateUser updates an existing user in PostgreSQL
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return storeErr("update user", err)
	}
	return nil
}

// SearchUsers searches for users by username or email (case-insensitive)
func (r *PostgresUserRepository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
		"%"+query+"%", "%"+query+"%").Find(&users).Error; err != nil {
		return nil, storeErr("search users", err)
	}
	return users, nil
}

// SuggestFriends returns candidate users to befriend: everyone except the
// viewer and except any user touching a relationship row with the viewer,
// whatever its status. Pending and blocked pairs are excluded on purpose.
func (r *PostgresUserRepository) SuggestFriends(viewerID uint, limit int) ([]models.User, error) {
	related1 := r.db.Table("friends").Select("friend_id").Where("user_id = ?", viewerID)
	related2 := r.db.Table("friends").Select("user_id").Where("friend_id = ?", viewerID)

	var users []models.User
	if err := r.db.Where("id <> ? AND id NOT IN (?) AND id NOT IN (?)",
		viewerID, related1, related2).
		Order("id").Limit(limit).Find(&users).Error; err != nil {
		return nil, storeErr("suggest friends", err)
	}
	return users, nil
}
