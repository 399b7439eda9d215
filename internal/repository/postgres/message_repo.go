// internal/repository/postgres/message_repo.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/domain/message"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const messageColumns = `id, client_id, type, direction, content, status, sent_at,
	delivered_at, read_at, sent_by, created_at, updated_at`

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

func scanMessage(row pgx.Row) (*message.Message, error) {
	var m message.Message
	err := row.Scan(
		&m.ID, &m.ClientID, &m.Type, &m.Direction, &m.Content, &m.Status, &m.SentAt,
		&m.DeliveredAt, &m.ReadAt, &m.SentBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new message
func (r *MessageRepository) Create(ctx context.Context, m *message.Message) error {
	query := `
		INSERT INTO messages (
			id, client_id, type, direction, content, status, sent_at,
			delivered_at, read_at, sent_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	err := r.db.QueryRow(
		ctx, query,
		m.ID, m.ClientID, m.Type, m.Direction, m.Content, m.Status, m.SentAt,
		m.DeliveredAt, m.ReadAt, m.SentBy,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return translateError(err, "create message")
	}

	return nil
}

// FindByID retrieves a message by ID
func (r *MessageRepository) FindByID(ctx context.Context, id string) (*message.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	m, err := scanMessage(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "find message")
	}
	return m, nil
}

// List returns one client's thread oldest first, or every message newest first
func (r *MessageRepository) List(ctx context.Context, filters *message.MessageListFilters) ([]message.Message, error) {
	var (
		conditions []string
		args       []interface{}
		orderBy    = "sent_at DESC"
	)

	if filters != nil && filters.ClientID != "" {
		conditions = append(conditions, "client_id = $1")
		args = append(args, filters.ClientID)
		orderBy = "sent_at ASC"
	}

	query := `SELECT ` + messageColumns + ` FROM messages` + whereClause(conditions) + ` ORDER BY ` + orderBy

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages, err := collect(rows, scanMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to scan messages: %w", err)
	}
	return messages, nil
}

// Conversations returns each client's latest message with the number of
// inbound messages from that client not yet read, most recent first.
func (r *MessageRepository) Conversations(ctx context.Context) ([]message.Conversation, error) {
	query := `
		SELECT ` + prefixed("m", messageColumns) + `, COALESCE(u.unread, 0)
		FROM (
			SELECT DISTINCT ON (client_id) ` + messageColumns + `
			FROM messages
			ORDER BY client_id, sent_at DESC, created_at DESC
		) m
		LEFT JOIN (
			SELECT client_id, COUNT(*) AS unread
			FROM messages
			WHERE direction = 'inbound' AND status <> 'read'
			GROUP BY client_id
		) u ON u.client_id = m.client_id
		ORDER BY m.sent_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	conversations := []message.Conversation{}
	for rows.Next() {
		var (
			m      message.Message
			unread int64
		)
		if err := rows.Scan(
			&m.ID, &m.ClientID, &m.Type, &m.Direction, &m.Content, &m.Status, &m.SentAt,
			&m.DeliveredAt, &m.ReadAt, &m.SentBy, &m.CreatedAt, &m.UpdatedAt, &unread,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, message.Conversation{
			ClientID:    m.ClientID,
			LastMessage: &m,
			UnreadCount: unread,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversations: %w", err)
	}

	return conversations, nil
}

// Update applies the non-nil fields of req. A status change keeps read_at in
// step: stamped when moving to read, cleared otherwise.
func (r *MessageRepository) Update(ctx context.Context, id string, req *message.UpdateMessageRequest) (*message.Message, error) {
	b := newSetBuilder()
	if req.Content != nil {
		b.add("content", *req.Content)
	}
	if req.DeliveredAt != nil {
		b.add("delivered_at", req.DeliveredAt.Time)
	}
	if req.Status != nil {
		b.add("status", *req.Status)
		b.addExpr("read_at",
			"CASE WHEN %s::text = 'read' THEN COALESCE(read_at, NOW()) ELSE NULL END", *req.Status)
	}

	query, args := b.build("messages", id, messageColumns)
	m, err := scanMessage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translateError(err, "update message")
	}
	return m, nil
}

// MarkRead sets status read and stamps read_at unless it is already set
func (r *MessageRepository) MarkRead(ctx context.Context, id string) (*message.Message, error) {
	query := `
		UPDATE messages
		SET status = 'read', read_at = COALESCE(read_at, NOW()), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + messageColumns

	m, err := scanMessage(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "mark message read")
	}
	return m, nil
}

// MarkClientRead marks every unread inbound message from clientID as read
// and returns how many changed.
func (r *MessageRepository) MarkClientRead(ctx context.Context, clientID string) (int64, error) {
	query := `
		UPDATE messages
		SET status = 'read', read_at = NOW(), updated_at = NOW()
		WHERE client_id = $1 AND direction = 'inbound' AND status <> 'read'
	`

	result, err := r.db.Exec(ctx, query, clientID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark conversation read: %w", err)
	}
	return result.RowsAffected(), nil
}

// UpdateDeliveryStatus records the dispatcher outcome for a message
func (r *MessageRepository) UpdateDeliveryStatus(ctx context.Context, id, status string, deliveredAt *time.Time) (*message.Message, error) {
	query := `
		UPDATE messages
		SET status = $1, delivered_at = COALESCE($2, delivered_at), updated_at = NOW()
		WHERE id = $3 AND status <> 'read'
		RETURNING ` + messageColumns

	m, err := scanMessage(r.db.QueryRow(ctx, query, status, deliveredAt, id))
	if err != nil {
		return nil, translateError(err, "update delivery status")
	}
	return m, nil
}

// Delete removes a message
func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
