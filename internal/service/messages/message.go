//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../../mocks/mock_message_service.go -package=mocks
package messageService

import (
	"context"
	"fmt"
	"time"

	"github.com/nikhil/zsechat/internal/apperrors"
	"github.com/nikhil/zsechat/internal/logger"
	"github.com/nikhil/zsechat/internal/models"
	"github.com/nikhil/zsechat/internal/repository"
	channelService "github.com/nikhil/zsechat/internal/service/channels"
)

// Publisher fans message events out to live subscribers of a scope.
type Publisher interface {
	Publish(scope models.Scope, event models.MessageEvent)
}

// MessageService serves the global channel and specific channels alike; the
// scope argument selects which.
type MessageService struct {
	Messages   repository.MessageStore
	Channels   repository.ChannelStore
	Users      repository.UserStore
	Authorizer *MessageAuthorizer
	Publisher  Publisher
	Log        *logger.Logger

	now func() time.Time
}

func NewMessageService(messages repository.MessageStore, channels repository.ChannelStore, users repository.UserStore, publisher Publisher, log *logger.Logger) *MessageService {
	return &MessageService{
		Messages:   messages,
		Channels:   channels,
		Users:      users,
		Authorizer: NewMessageAuthorizer(messages),
		Publisher:  publisher,
		Log:        log,
		now:        time.Now,
	}
}

// CheckAccess fails unless requester may read scope. Everybody reads the
// global channel.
func (ms *MessageService) CheckAccess(ctx context.Context, scope models.Scope, requester models.Identity) error {
	channelID, ok := scope.ChannelID()
	if !ok {
		return nil
	}

	channel, err := ms.Channels.FindByID(ctx, channelID)
	if err != nil {
		return err
	}
	if !channelService.CanView(channel, requester) {
		ms.Log.WithContext(ctx).Warn("Unauthorized channel access attempt", "channel_id", channelID, "user", requester)
		return fmt.Errorf("%w. Channel id: %d", apperrors.ErrChannelAccessDenied, channelID)
	}
	return nil
}

func (ms *MessageService) List(ctx context.Context, scope models.Scope, requester models.Identity) ([]models.Message, error) {
	if err := ms.CheckAccess(ctx, scope, requester); err != nil {
		return nil, err
	}

	messages, err := ms.Messages.FindByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return messages, nil
}

func (ms *MessageService) Get(ctx context.Context, scope models.Scope, requester models.Identity, id int64) (models.Message, error) {
	if err := ms.CheckAccess(ctx, scope, requester); err != nil {
		return models.Message{}, err
	}
	return ms.Authorizer.Resolve(ctx, id, scope)
}

// Create posts content to scope as author.
func (ms *MessageService) Create(ctx context.Context, scope models.Scope, author models.Identity, content string) (models.Message, error) {
	if err := ms.CheckAccess(ctx, scope, author); err != nil {
		return models.Message{}, err
	}

	exists, err := ms.Users.Exists(ctx, author)
	if err != nil {
		return models.Message{}, fmt.Errorf("checking user %s: %w", author, err)
	}
	if !exists {
		return models.Message{}, fmt.Errorf("%w. Nickname: %s", apperrors.ErrUserNotFound, author)
	}

	message, err := ms.Messages.Save(ctx, models.Message{
		Author:    author,
		Content:   content,
		CreatedAt: ms.now().UTC(),
		Scope:     scope,
	})
	if err != nil {
		return models.Message{}, fmt.Errorf("saving message: %w", err)
	}

	ms.Publisher.Publish(scope, models.NewMessageEvent(models.EventMessageCreated, message))
	return message, nil
}

// Update edits or soft-deletes message id of scope. Only its author may do so.
func (ms *MessageService) Update(ctx context.Context, scope models.Scope, requester models.Identity, id int64, content string, deleted bool) (models.Message, error) {
	if err := ms.CheckAccess(ctx, scope, requester); err != nil {
		return models.Message{}, err
	}

	message, err := ms.Authorizer.Resolve(ctx, id, scope)
	if err != nil {
		return models.Message{}, err
	}

	if err := AuthorizeMutation(message, requester); err != nil {
		ms.Log.WithContext(ctx).Warn("Unauthorized message update attempt", "message_id", id, "user", requester, "author", message.Author)
		return models.Message{}, err
	}

	saved, err := ms.Messages.Save(ctx, Mutate(message, content, deleted))
	if err != nil {
		return models.Message{}, fmt.Errorf("saving message %d: %w", id, err)
	}

	eventType := models.EventMessageUpdated
	if deleted {
		eventType = models.EventMessageDeleted
	}
	ms.Publisher.Publish(scope, models.NewMessageEvent(eventType, saved))
	return saved, nil
}
