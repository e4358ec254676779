//go:generate go run go.uber.org/mock/mockgen -source=channel.go -destination=../mocks/mock_channel_repository.go -package=mocks
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

type ChannelStore interface {
	FindByID(ctx context.Context, id int64) (models.Channel, error)
	// FindByIdentity returns the channels identity owns or belongs to.
	FindByIdentity(ctx context.Context, identity models.Identity) ([]models.Channel, error)
	// Save inserts a channel with a zero ID, otherwise replaces its owner and member sets.
	Save(ctx context.Context, channel models.Channel) (models.Channel, error)
}

// Roles stored in channel_members.
const (
	roleOwner  = 1
	roleMember = 2
)

type ChannelRepository struct {
	db *sql.DB
}

func NewChannelRepository(db *sql.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *ChannelRepository) FindByID(ctx context.Context, id int64) (models.Channel, error) {
	if err := channelExists(ctx, r.db, id); err != nil {
		return models.Channel{}, err
	}
	return loadChannel(ctx, r.db, id)
}

func (r *ChannelRepository) FindByIdentity(ctx context.Context, identity models.Identity) ([]models.Channel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT channel_id FROM channel_members WHERE nickname = ? ORDER BY channel_id`, identity)
	if err != nil {
		return nil, fmt.Errorf("query channels of %s: %w", identity, err)
	}

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan channel id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate channel ids: %w", err)
	}
	rows.Close()

	channels := make([]models.Channel, 0, len(ids))
	for _, id := range ids {
		channel, err := loadChannel(ctx, r.db, id)
		if err != nil {
			return nil, err
		}
		channels = append(channels, channel)
	}
	return channels, nil
}

// Save writes the channel and its full owner and member sets in one transaction.
func (r *ChannelRepository) Save(ctx context.Context, channel models.Channel) (models.Channel, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Channel{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be ignored if transaction is committed

	currentTime := time.Now().UTC().UnixMilli()
	if channel.ID == 0 {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO channels (created_at, updated_at) VALUES (?, ?)`, currentTime, currentTime)
		if err != nil {
			return models.Channel{}, fmt.Errorf("insert channel: %w", err)
		}
		if channel.ID, err = result.LastInsertId(); err != nil {
			return models.Channel{}, fmt.Errorf("get channel id: %w", err)
		}
	} else {
		if err := channelExists(ctx, tx, channel.ID); err != nil {
			return models.Channel{}, err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE channels SET updated_at = ? WHERE channel_id = ?`, currentTime, channel.ID); err != nil {
			return models.Channel{}, fmt.Errorf("update channel: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM channel_members WHERE channel_id = ?`, channel.ID); err != nil {
			return models.Channel{}, fmt.Errorf("clear channel members: %w", err)
		}
	}

	position := 0
	insert := func(identity models.Identity, role int) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO channel_members (channel_id, nickname, role, position) VALUES (?, ?, ?, ?)`,
			channel.ID, identity, role, position)
		position++
		return err
	}
	for _, owner := range channel.Owners.Slice() {
		if err := insert(owner, roleOwner); err != nil {
			return models.Channel{}, fmt.Errorf("insert channel owner: %w", err)
		}
	}
	for _, member := range channel.Members.Slice() {
		if err := insert(member, roleMember); err != nil {
			return models.Channel{}, fmt.Errorf("insert channel member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Channel{}, fmt.Errorf("commit transaction: %w", err)
	}
	return channel, nil
}

func channelExists(ctx context.Context, q querier, id int64) error {
	var found int64
	err := q.QueryRowContext(ctx, `SELECT channel_id FROM channels WHERE channel_id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w. No id: %d", apperrors.ErrChannelNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("query channel %d: %w", id, err)
	}
	return nil
}

func loadChannel(ctx context.Context, q querier, id int64) (models.Channel, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT nickname, role FROM channel_members WHERE channel_id = ? ORDER BY position`, id)
	if err != nil {
		return models.Channel{}, fmt.Errorf("query channel members: %w", err)
	}
	defer rows.Close()

	var owners, members []models.Identity
	for rows.Next() {
		var (
			nickname models.Identity
			role     int
		)
		if err := rows.Scan(&nickname, &role); err != nil {
			return models.Channel{}, fmt.Errorf("scan channel member: %w", err)
		}
		if role == roleOwner {
			owners = append(owners, nickname)
		} else {
			members = append(members, nickname)
		}
	}
	if err := rows.Err(); err != nil {
		return models.Channel{}, fmt.Errorf("iterate channel members: %w", err)
	}

	return models.Channel{
		ID:      id,
		Owners:  models.NewIdentitySet(owners...),
		Members: models.NewIdentitySet(members...),
	}, nil
}
