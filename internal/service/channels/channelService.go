//go:generate go run go.uber.org/mock/mockgen -source=channelService.go -destination=../../mocks/mock_channel_service.go -package=mocks
package channelService

import (
	"context"
	"fmt"

	"github.com/nikhil/zsechat/internal/apperrors"
	"github.com/nikhil/zsechat/internal/logger"
	"github.com/nikhil/zsechat/internal/models"
	"github.com/nikhil/zsechat/internal/repository"
)

// Revoker drops live subscriptions of an identity that lost access to a channel.
type Revoker interface {
	Revoke(channelID int64, identity models.Identity)
}

// ChannelService handles channel-related operations
type ChannelService struct {
	Channels repository.ChannelStore
	Users    repository.UserStore
	Revoker  Revoker
	Log      *logger.Logger
}

// NewChannelService initializes a new channel service
func NewChannelService(channels repository.ChannelStore, users repository.UserStore, revoker Revoker, log *logger.Logger) *ChannelService {
	return &ChannelService{
		Channels: channels,
		Users:    users,
		Revoker:  revoker,
		Log:      log,
	}
}

// List returns the channels identity owns or is a member of.
func (cs *ChannelService) List(ctx context.Context, identity models.Identity) ([]models.Channel, error) {
	channels, err := cs.Channels.FindByIdentity(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("listing channels of %s: %w", identity, err)
	}
	cs.Log.WithContext(ctx).Debug("Channels fetched from database", "user", identity, "count", len(channels))
	return channels, nil
}

// Create stores a new channel whose only owner is the creator.
func (cs *ChannelService) Create(ctx context.Context, creator models.Identity) (models.Channel, error) {
	if err := cs.requireUser(ctx, creator); err != nil {
		return models.Channel{}, err
	}

	channel, err := cs.Channels.Save(ctx, models.NewChannel(creator))
	if err != nil {
		return models.Channel{}, fmt.Errorf("creating channel: %w", err)
	}

	cs.Log.WithContext(ctx).Info("Channel created", "channel_id", channel.ID, "user", creator)
	return channel, nil
}

func (cs *ChannelService) Get(ctx context.Context, id int64) (models.Channel, error) {
	channel, err := cs.Channels.FindByID(ctx, id)
	if err != nil {
		return models.Channel{}, err
	}
	return channel, nil
}

// UpdateMembers applies action to target on behalf of requester, who must own
// the channel. A change that would leave the channel without owners is refused.
func (cs *ChannelService) UpdateMembers(ctx context.Context, requester models.Identity, channelID int64, action models.ChannelUpdateAction, target models.Identity) (models.Channel, error) {
	log := cs.Log.WithContext(ctx).WithUser(requester.String()).WithFields(map[string]interface{}{
		"channel_id": channelID,
		"action":     action,
		"target":     target,
	})

	channel, err := cs.Channels.FindByID(ctx, channelID)
	if err != nil {
		return models.Channel{}, err
	}

	if !CanModify(channel, requester) {
		log.Warn("Unauthorized channel update attempt")
		return models.Channel{}, fmt.Errorf("%w. Channel id: %d", apperrors.ErrChannelUpdateDenied, channelID)
	}

	if err := cs.requireUser(ctx, target); err != nil {
		return models.Channel{}, err
	}

	updated := Apply(channel, action, target)
	if updated.Owners.IsEmpty() {
		log.Warn("Refusing to leave channel without owners")
		return models.Channel{}, fmt.Errorf("%w. Channel id: %d would have no owners", apperrors.ErrChannelUpdateDenied, channelID)
	}

	saved, err := cs.Channels.Save(ctx, updated)
	if err != nil {
		return models.Channel{}, fmt.Errorf("saving channel %d: %w", channelID, err)
	}

	if CanView(channel, target) && !CanView(saved, target) {
		cs.Revoker.Revoke(channelID, target)
	}

	log.Info("Channel members updated")
	return saved, nil
}

func (cs *ChannelService) requireUser(ctx context.Context, nickname models.Identity) error {
	exists, err := cs.Users.Exists(ctx, nickname)
	if err != nil {
		return fmt.Errorf("checking user %s: %w", nickname, err)
	}
	if !exists {
		return fmt.Errorf("%w. Nickname: %s", apperrors.ErrUserNotFound, nickname)
	}
	return nil
}
