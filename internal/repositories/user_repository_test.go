package repositories

import (
	"testing"

	"github.com/samber/lo"
	"github.com/sociafam/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	alice := createUser(t, db, "alice")

	user, err := repo.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)

	_, err = repo.GetUserByUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchUsersIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	createUser(t, db, "Alice")
	createUser(t, db, "alicia")
	createUser(t, db, "bob")

	users, err := repo.SearchUsers("ALI")
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestSuggestFriendsExcludesAnyRelationship(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	viewer := createUser(t, db, "viewer")
	friend := createUser(t, db, "friend")
	pending := createUser(t, db, "pending")
	blocker := createUser(t, db, "blocker")
	stranger := createUser(t, db, "stranger")

	require.NoError(t, db.Create(&models.Relationship{
		UserID: viewer.ID, FriendID: friend.ID, Status: models.StatusAccepted,
	}).Error)
	require.NoError(t, db.Create(&models.Relationship{
		UserID: viewer.ID, FriendID: pending.ID, Status: models.StatusPending,
	}).Error)
	// Row pointing at the viewer excludes the other side too
	require.NoError(t, db.Create(&models.Relationship{
		UserID: blocker.ID, FriendID: viewer.ID, Status: models.StatusBlocked,
	}).Error)

	suggestions, err := repo.SuggestFriends(viewer.ID, 10)
	require.NoError(t, err)

	ids := lo.Map(suggestions, func(u models.User, _ int) uint { return u.ID })
	assert.Equal(t, []uint{stranger.ID}, ids)
}

func TestSuggestFriendsLimitAndOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresUserRepository(db)
	viewer := createUser(t, db, "viewer")
	a := createUser(t, db, "a")
	b := createUser(t, db, "b")
	createUser(t, db, "c")

	suggestions, err := repo.SuggestFriends(viewer.ID, 2)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, a.ID, suggestions[0].ID)
	assert.Equal(t, b.ID, suggestions[1].ID)
}
