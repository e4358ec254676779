//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nikhil/zsechat/internal/apperrors"
	"github.com/nikhil/zsechat/internal/models"
)

type MessageStore interface {
	// FindByID returns the message whether or not it was deleted.
	FindByID(ctx context.Context, id int64) (models.Message, error)
	// FindByScope returns the live messages of scope ordered by id.
	FindByScope(ctx context.Context, scope models.Scope) ([]models.Message, error)
	Save(ctx context.Context, message models.Message) (models.Message, error)
}

const messageColumns = `message_id, channel_id, author_nick, content, message_created_at, deleted`

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) FindByID(ctx context.Context, id int64) (models.Message, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM messages WHERE message_id = ?`, id)
	message, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, fmt.Errorf("%w. No id: %d", apperrors.ErrMessageNotFound, id)
	}
	if err != nil {
		return models.Message{}, fmt.Errorf("query message %d: %w", id, err)
	}
	return message, nil
}

func (r *MessageRepository) FindByScope(ctx context.Context, scope models.Scope) ([]models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE channel_id IS NULL AND deleted = 0 ORDER BY message_id`
	var args []any
	if channelID, ok := scope.ChannelID(); ok {
		query = `SELECT ` + messageColumns + ` FROM messages WHERE channel_id = ? AND deleted = 0 ORDER BY message_id`
		args = append(args, channelID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}

// Save inserts a message with a zero ID, otherwise updates its content and
// deleted flag. Author, scope and creation time never change. A deleted
// message is never updated again.
func (r *MessageRepository) Save(ctx context.Context, message models.Message) (models.Message, error) {
	if message.ID != 0 {
		result, err := r.db.ExecContext(ctx,
			`UPDATE messages SET content = ?, deleted = ? WHERE message_id = ? AND deleted = 0`,
			message.Content, message.Deleted, message.ID)
		if err != nil {
			return models.Message{}, fmt.Errorf("update message %d: %w", message.ID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return models.Message{}, fmt.Errorf("update message %d: %w", message.ID, err)
		}
		if affected == 0 {
			// mysql reports zero rows when the values did not change
			stored, err := r.FindByID(ctx, message.ID)
			if err != nil {
				return models.Message{}, err
			}
			if stored.Deleted {
				return models.Message{}, fmt.Errorf("%w. No id: %d", apperrors.ErrMessageNotFound, message.ID)
			}
		}
		return message, nil
	}

	var channelID sql.NullInt64
	if id, ok := message.Scope.ChannelID(); ok {
		channelID = sql.NullInt64{Int64: id, Valid: true}
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (channel_id, author_nick, content, message_created_at, deleted) VALUES (?, ?, ?, ?, ?)`,
		channelID, message.Author, message.Content, message.CreatedAt.UTC().UnixMilli(), message.Deleted)
	if err != nil {
		return models.Message{}, fmt.Errorf("insert message: %w", err)
	}
	if message.ID, err = result.LastInsertId(); err != nil {
		return models.Message{}, fmt.Errorf("get message id: %w", err)
	}
	return message, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMessage(row scanner) (models.Message, error) {
	var (
		message   models.Message
		channelID sql.NullInt64
		createdAt int64
	)
	if err := row.Scan(&message.ID, &channelID, &message.Author, &message.Content, &createdAt, &message.Deleted); err != nil {
		return models.Message{}, err
	}
	message.CreatedAt = time.UnixMilli(createdAt).UTC()
	if channelID.Valid {
		message.Scope = models.ChannelScope(channelID.Int64)
	}
	return message, nil
}
