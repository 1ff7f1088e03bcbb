package repositories

import (
	"testing"

	"github.com/sociafam/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotification(t *testing.T, repo NotificationRepository, recipientID, actorID uint, content string) *models.Notification {
	t.Helper()
	n := &models.Notification{UserID: recipientID, ActorID: actorID, Content: content}
	require.NoError(t, repo.CreateNotification(n))
	return n
}

func TestGetByRecipientIDPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	for i := 0; i < 5; i++ {
		seedNotification(t, repo, alice.ID, bob.ID, "hello")
	}
	seedNotification(t, repo, bob.ID, alice.ID, "other recipient")

	page1, total, err := repo.GetByRecipientID(alice.ID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page1, 2)

	page3, total, err := repo.GetByRecipientID(alice.ID, 3, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, page3, 1)
}

func TestMarkAsReadScopedToRecipient(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	n := seedNotification(t, repo, alice.ID, bob.ID, "friend request")

	// Bob cannot mark Alice's notification
	assert.ErrorIs(t, repo.MarkAsRead(bob.ID, n.ID), ErrNotFound)

	count, err := repo.GetUnreadCount(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.MarkAsRead(alice.ID, n.ID))

	count, err = repo.GetUnreadCount(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestMarkAllAsRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	seedNotification(t, repo, alice.ID, bob.ID, "one")
	seedNotification(t, repo, alice.ID, bob.ID, "two")
	seedNotification(t, repo, bob.ID, alice.ID, "for bob")

	require.NoError(t, repo.MarkAllAsRead(alice.ID))

	count, err := repo.GetUnreadCount(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// Bob's unread state is untouched
	count, err = repo.GetUnreadCount(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
