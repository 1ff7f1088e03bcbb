package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sociafam/backend/internal/models"
	"github.com/sociafam/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type feedResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Posts []EnrichedPost `json:"posts"`
	} `json:"data"`
	Meta struct {
		CurrentPage     int   `json:"currentPage"`
		TotalPages      int   `json:"totalPages"`
		TotalItems      int64 `json:"totalItems"`
		ItemsPerPage    int   `json:"itemsPerPage"`
		HasNextPage     bool  `json:"hasNextPage"`
		HasPreviousPage bool  `json:"hasPreviousPage"`
	} `json:"meta"`
}

func newFeedHandler(db *gorm.DB, posts *fakePostStore) *FeedHandler {
	return NewFeedHandler(
		posts,
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresRelationshipRepository(db),
		repositories.NewPostgresLikeRepository(db),
		repositories.NewPostgresCommentRepository(db),
	)
}

func getFeed(t *testing.T, h *FeedHandler, e *echo.Echo, viewerID uint, query string) (*httptest.ResponseRecorder, feedResponse) {
	t.Helper()

	c, rec := newAuthedContext(e, http.MethodGet, "/api/v1/feed"+query, "", viewerID)
	require.NoError(t, h.GetFeed(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp feedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestGetFeedVisibility(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	posts := newFakePostStore()
	h := newFeedHandler(db, posts)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	dave := createUser(t, db, "dave")

	require.NoError(t, db.Create(&models.Relationship{
		UserID: alice.ID, FriendID: bob.ID, Status: models.StatusAccepted,
	}).Error)
	// Pending never grants feed visibility
	require.NoError(t, db.Create(&models.Relationship{
		UserID: alice.ID, FriendID: dave.ID, Status: models.StatusPending,
	}).Error)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	posts.add(alice.ID, "own post", base)
	posts.add(bob.ID, "friend post", base.Add(time.Minute))
	posts.add(carol.ID, "stranger post", base.Add(2*time.Minute))
	posts.add(dave.ID, "pending post", base.Add(3*time.Minute))

	_, resp := getFeed(t, h, e, alice.ID, "")

	require.Len(t, resp.Data.Posts, 2)
	assert.Equal(t, "friend post", resp.Data.Posts[0].Content)
	assert.Equal(t, "bob", resp.Data.Posts[0].Author.Username)
	assert.Equal(t, "own post", resp.Data.Posts[1].Content)
	assert.EqualValues(t, 2, resp.Meta.TotalItems)
}

func TestGetFeedOrderAndViewerReaction(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	posts := newFakePostStore()
	h := newFeedHandler(db, posts)
	likeRepo := repositories.NewPostgresLikeRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	require.NoError(t, db.Create(&models.Relationship{
		UserID: bob.ID, FriendID: alice.ID, Status: models.StatusAccepted,
	}).Error)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	old := posts.add(bob.ID, "older", base)
	posts.add(alice.ID, "newer", base.Add(time.Hour))

	_, err := likeRepo.Toggle(old.ID.Hex(), alice.ID, "love")
	require.NoError(t, err)
	_, err = likeRepo.Toggle(old.ID.Hex(), bob.ID, "like")
	require.NoError(t, err)

	_, resp := getFeed(t, h, e, alice.ID, "")

	require.Len(t, resp.Data.Posts, 2)
	assert.Equal(t, "newer", resp.Data.Posts[0].Content)
	assert.Equal(t, "older", resp.Data.Posts[1].Content)

	older := resp.Data.Posts[1]
	assert.Equal(t, 2, older.LikesCount)
	assert.True(t, older.ViewerLiked)
	assert.Equal(t, "love", older.ViewerReaction)
	assert.False(t, resp.Data.Posts[0].ViewerLiked)
}

func TestGetFeedPagination(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	posts := newFakePostStore()
	h := newFeedHandler(db, posts)

	alice := createUser(t, db, "alice")

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		posts.add(alice.ID, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	_, page1 := getFeed(t, h, e, alice.ID, "?page=1&limit=10")
	assert.Len(t, page1.Data.Posts, 10)
	assert.Equal(t, "post 24", page1.Data.Posts[0].Content)
	assert.Equal(t, 3, page1.Meta.TotalPages)
	assert.EqualValues(t, 25, page1.Meta.TotalItems)
	assert.True(t, page1.Meta.HasNextPage)
	assert.False(t, page1.Meta.HasPreviousPage)

	_, page3 := getFeed(t, h, e, alice.ID, "?page=3&limit=10")
	assert.Len(t, page3.Data.Posts, 5)
	assert.Equal(t, "post 4", page3.Data.Posts[0].Content)
	assert.Equal(t, "post 0", page3.Data.Posts[4].Content)
	assert.False(t, page3.Meta.HasNextPage)
	assert.True(t, page3.Meta.HasPreviousPage)
}

func TestGetFeedDefaultsAndLimitCap(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	posts := newFakePostStore()
	h := newFeedHandler(db, posts)

	alice := createUser(t, db, "alice")
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		posts.add(alice.ID, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	_, resp := getFeed(t, h, e, alice.ID, "")
	assert.Len(t, resp.Data.Posts, 10)
	assert.Equal(t, 10, resp.Meta.ItemsPerPage)

	// An out-of-range limit falls back to the default page size
	_, resp = getFeed(t, h, e, alice.ID, "?limit=500")
	assert.Equal(t, 10, resp.Meta.ItemsPerPage)
}

func TestGetFeedUnauthenticated(t *testing.T) {
	db := newTestDB(t)
	e := echo.New()
	h := newFeedHandler(db, newFakePostStore())

	c, _ := newAuthedContext(e, http.MethodGet, "/api/v1/feed", "", 0)
	err := h.GetFeed(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
