package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"crm-service/internal/db"
	"crm-service/internal/domain/client"
	"crm-service/internal/domain/message"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPool connects to TEST_DATABASE_URL and applies migrations, skipping
// when no database is configured.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	sqlDB, err := db.OpenSQL(url)
	require.NoError(t, err)
	_, err = db.RunMigrations(sqlDB)
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	pool, err := db.ConnectDB(context.Background(), db.PostgresConfig{URL: url, MaxConns: 2})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func findConversation(t *testing.T, repo *MessageRepository, clientID string) message.Conversation {
	t.Helper()
	convs, err := repo.Conversations(context.Background())
	require.NoError(t, err)
	for _, c := range convs {
		if c.ClientID == clientID {
			return c
		}
	}
	t.Fatalf("no conversation for client %s", clientID)
	return message.Conversation{}
}

func TestMessageRepository_MarkReadLowersUnreadByOne(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	clients := NewClientRepository(pool)
	messages := NewMessageRepository(pool)

	c := &client.Client{Name: "Inbox Test", Email: "inbox@example.com", Phone: "555-0100",
		Address: "1 Test St", Status: client.StatusActive, Tags: []string{}}
	require.NoError(t, clients.Create(ctx, c))
	t.Cleanup(func() { _ = clients.Delete(context.Background(), c.ID) })

	base := time.Now().Add(-time.Hour)
	var inbound []*message.Message
	for i := 0; i < 3; i++ {
		m := &message.Message{ClientID: c.ID, Type: message.TypeSMS, Direction: message.DirectionInbound,
			Content: "hello", Status: message.StatusDelivered, SentAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, messages.Create(ctx, m))
		inbound = append(inbound, m)
	}
	reply := &message.Message{ClientID: c.ID, Type: message.TypeSMS, Direction: message.DirectionOutbound,
		Content: "on our way", Status: message.StatusSent, SentAt: base.Add(10 * time.Minute)}
	require.NoError(t, messages.Create(ctx, reply))

	conv := findConversation(t, messages, c.ID)
	assert.Equal(t, int64(3), conv.UnreadCount)
	require.NotNil(t, conv.LastMessage)
	assert.Equal(t, reply.ID, conv.LastMessage.ID)

	first, err := messages.MarkRead(ctx, inbound[0].ID)
	require.NoError(t, err)
	require.NotNil(t, first.ReadAt)
	assert.Equal(t, int64(2), findConversation(t, messages, c.ID).UnreadCount)

	again, err := messages.MarkRead(ctx, inbound[0].ID)
	require.NoError(t, err)
	require.NotNil(t, again.ReadAt)
	assert.True(t, first.ReadAt.Equal(*again.ReadAt), "read_at must keep the first read time")
	assert.Equal(t, int64(2), findConversation(t, messages, c.ID).UnreadCount)
}

func TestClientRepository_PatchNotesKeepsOtherFields(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	clients := NewClientRepository(pool)

	city := "Springfield"
	c := &client.Client{Name: "Patch Test", Email: "patch@example.com", Phone: "555-0101",
		Address: "2 Test St", City: &city, Status: client.StatusActive, Tags: []string{"vip"}}
	require.NoError(t, clients.Create(ctx, c))
	t.Cleanup(func() { _ = clients.Delete(context.Background(), c.ID) })

	notes := "gate code 1234"
	got, err := clients.Update(ctx, c.ID, &client.UpdateClientRequest{Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, notes, got.Notes)
	assert.Equal(t, c.Name, got.Name)
	assert.Equal(t, c.Email, got.Email)
	assert.Equal(t, c.Phone, got.Phone)
	assert.Equal(t, c.Address, got.Address)
	require.NotNil(t, got.City)
	assert.Equal(t, city, *got.City)
	assert.Equal(t, []string{"vip"}, got.Tags)
	assert.Equal(t, client.StatusActive, got.Status)
}
