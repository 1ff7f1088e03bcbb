package repositories

import (
	"testing"

	"github.com/sociafam/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendMessage(t *testing.T, repo MessageRepository, senderID, receiverID uint, content string) {
	t.Helper()
	require.NoError(t, repo.CreateMessage(&models.Message{
		SenderID: senderID, ReceiverID: receiverID, Content: content,
	}))
}

func TestGetConversationMergesBothDirections(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresMessageRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	sendMessage(t, repo, alice.ID, bob.ID, "hi bob")
	sendMessage(t, repo, bob.ID, alice.ID, "hi alice")
	sendMessage(t, repo, alice.ID, bob.ID, "how are you")
	sendMessage(t, repo, alice.ID, carol.ID, "unrelated")

	conversation, err := repo.GetConversation(alice.ID, bob.ID, 50)
	require.NoError(t, err)
	require.Len(t, conversation, 3)
	assert.Equal(t, "hi bob", conversation[0].Content)
	assert.Equal(t, "hi alice", conversation[1].Content)
	assert.Equal(t, "how are you", conversation[2].Content)
}

func TestUnreadCountAndMarkConversationRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresMessageRepository(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	sendMessage(t, repo, bob.ID, alice.ID, "one")
	sendMessage(t, repo, bob.ID, alice.ID, "two")
	sendMessage(t, repo, carol.ID, alice.ID, "three")
	sendMessage(t, repo, alice.ID, bob.ID, "outgoing never counts")

	count, err := repo.GetUnreadCount(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	// Reading Bob's thread leaves Carol's message unread
	require.NoError(t, repo.MarkConversationRead(alice.ID, bob.ID))

	count, err = repo.GetUnreadCount(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
