package messageService

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikhil/zsechat/internal/apperrors"
	"github.com/nikhil/zsechat/internal/models"
	"github.com/nikhil/zsechat/internal/repository"
)

// MessageAuthorizer resolves messages within a scope and guards their mutation.
type MessageAuthorizer struct {
	Messages repository.MessageStore
}

func NewMessageAuthorizer(messages repository.MessageStore) *MessageAuthorizer {
	return &MessageAuthorizer{Messages: messages}
}

// Resolve returns the live message id of scope. A missing message, a deleted
// one and one of another scope all yield the same ErrMessageNotFound so callers
// cannot probe channels they do not see.
func (a *MessageAuthorizer) Resolve(ctx context.Context, id int64, scope models.Scope) (models.Message, error) {
	notFound := fmt.Errorf("%w. No id: %d", apperrors.ErrMessageNotFound, id)

	message, err := a.Messages.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrMessageNotFound) {
		return models.Message{}, notFound
	}
	if err != nil {
		return models.Message{}, fmt.Errorf("fetching message %d: %w", id, err)
	}
	if message.Deleted || message.Scope != scope {
		return models.Message{}, notFound
	}
	return message, nil
}

// AuthorizeMutation allows only the author to edit or delete a message.
func AuthorizeMutation(message models.Message, requester models.Identity) error {
	if requester == "" || message.Author != requester {
		return fmt.Errorf("%w. Message id: %d", apperrors.ErrMessageUpdateDenied, message.ID)
	}
	return nil
}

// Mutate returns message edited to content, or soft-deleted when deleted is set.
// A delete without new content keeps the old one.
func Mutate(message models.Message, content string, deleted bool) models.Message {
	if !deleted || content != "" {
		message.Content = content
	}
	message.Deleted = deleted
	return message
}
