package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/placement-portal-api/internal/models"
)

// ChatRepository stores chat messages. A message belongs to the channel of
// its sender's current college.
type ChatRepository struct {
	db *sqlx.DB
}

// NewChatRepository constructs a ChatRepository.
func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create appends a message.
func (r *ChatRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.SentAt = time.Now().UTC()

	const query = `INSERT INTO chat_messages (id, sender_user_id, content, is_deleted, sent_at) VALUES (:id, :sender_user_id, :content, FALSE, :sent_at)`
	if _, err := r.db.NamedExecContext(ctx, query, msg); err != nil {
		return fmt.Errorf("create chat message: %w", err)
	}
	return nil
}

// FindByID returns a message, deleted or not.
func (r *ChatRepository) FindByID(ctx context.Context, id string) (*models.ChatMessage, error) {
	const query = `SELECT id, sender_user_id, content, is_deleted, sent_at, deleted_at FROM chat_messages WHERE id = $1`
	var msg models.ChatMessage
	if err := r.db.GetContext(ctx, &msg, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find chat message: %w", err)
	}
	return &msg, nil
}

// SoftDelete flags the sender's message as deleted. sql.ErrNoRows means the
// message is missing, already deleted, or authored by someone else.
func (r *ChatRepository) SoftDelete(ctx context.Context, id, senderUserID string) error {
	const query = `UPDATE chat_messages SET is_deleted = TRUE, deleted_at = $3 WHERE id = $1 AND sender_user_id = $2 AND is_deleted = FALSE`
	res, err := r.db.ExecContext(ctx, query, id, senderUserID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("delete chat message: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListChannel returns the latest visible messages of a college channel in
// send order.
func (r *ChatRepository) ListChannel(ctx context.Context, collegeKey string, limit int) ([]models.ChatMessageView, error) {
	query, args, err := psql.Select(
		"m.id", "m.sender_user_id", "m.content", "m.is_deleted", "m.sent_at", "m.deleted_at",
		"TRIM(u.first_name || ' ' || u.last_name) AS sender_name",
		"s.student_id AS sender_student_id",
	).
		From("chat_messages m").
		Join("students s ON s.user_id = m.sender_user_id").
		Join("users u ON u.id = m.sender_user_id").
		Where("s.college_key = ?", collegeKey).
		Where("m.is_deleted = FALSE").
		OrderBy("m.sent_at DESC", "m.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build chat history query: %w", err)
	}

	var messages []models.ChatMessageView
	if err := r.db.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func purgeMessagesBySender(ctx context.Context, tx *sqlx.Tx, senderUserID string) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE sender_user_id = $1`, senderUserID)
	if err != nil {
		return 0, fmt.Errorf("purge chat messages: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge chat messages: %w", err)
	}
	return n, nil
}
