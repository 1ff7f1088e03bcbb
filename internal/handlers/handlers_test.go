package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sociafam/backend/internal/models"
	"github.com/sociafam/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Relationship{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
		&models.Message{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// newAuthedContext builds an Echo context carrying the claims the JWT
// middleware would have attached
func newAuthedContext(e *echo.Echo, method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	return c, rec
}

// fakePostStore is an in-memory PostRepository with the same ordering
// contract as the Mongo implementation: created_at desc, id desc.
type fakePostStore struct {
	posts []models.Post
}

func newFakePostStore() *fakePostStore { return &fakePostStore{} }

func (s *fakePostStore) add(userID uint, content string, createdAt time.Time) models.Post {
	post := models.Post{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Content:   content,
		PostType:  "post",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	s.posts = append(s.posts, post)
	return post
}

func (s *fakePostStore) sorted() []models.Post {
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out
}

func (s *fakePostStore) matching(authorIDs []uint) []models.Post {
	allowed := make(map[uint]bool, len(authorIDs))
	for _, id := range authorIDs {
		allowed[id] = true
	}
	var out []models.Post
	for _, p := range s.sorted() {
		if allowed[p.UserID] {
			out = append(out, p)
		}
	}
	return out
}

func (s *fakePostStore) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.PostType == "" {
		post.PostType = "post"
	}
	s.posts = append(s.posts, *post)
	return nil
}

func (s *fakePostStore) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	for _, p := range s.posts {
		if p.ID.Hex() == id {
			post := p
			return &post, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *fakePostStore) GetPostsByUserID(ctx context.Context, userID uint, skip, limit int64) ([]models.Post, error) {
	return s.GetPostsByAuthors(ctx, []uint{userID}, skip, limit)
}

func (s *fakePostStore) GetPostsByAuthors(_ context.Context, authorIDs []uint, skip, limit int64) ([]models.Post, error) {
	matched := s.matching(authorIDs)
	if skip >= int64(len(matched)) {
		return nil, nil
	}
	matched = matched[skip:]
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *fakePostStore) CountPostsByAuthors(_ context.Context, authorIDs []uint) (int64, error) {
	return int64(len(s.matching(authorIDs))), nil
}

func (s *fakePostStore) DeletePost(_ context.Context, id string) error {
	for i, p := range s.posts {
		if p.ID.Hex() == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (s *fakePostStore) SetPinned(_ context.Context, id string, pinned bool) error {
	for i := range s.posts {
		if s.posts[i].ID.Hex() == id {
			s.posts[i].IsPinned = pinned
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (s *fakePostStore) SetLikesCount(_ context.Context, postID string, count int64) error {
	for i := range s.posts {
		if s.posts[i].ID.Hex() == postID {
			s.posts[i].LikesCount = int(count)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (s *fakePostStore) IncrementCommentsCount(_ context.Context, postID string) error {
	return s.incComments(postID, 1)
}

func (s *fakePostStore) DecrementCommentsCount(_ context.Context, postID string) error {
	return s.incComments(postID, -1)
}

func (s *fakePostStore) incComments(postID string, delta int) error {
	for i := range s.posts {
		if s.posts[i].ID.Hex() == postID {
			s.posts[i].CommentsCount += delta
			return nil
		}
	}
	return repositories.ErrNotFound
}
