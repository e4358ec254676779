package models

import "time"

// Message is a chat message. Deleted messages are soft-deleted and terminal.
type Message struct {
	ID        int64
	Author    Identity
	Content   string
	CreatedAt time.Time
	Scope     Scope
	Deleted   bool
}

// MessageEvent is pushed to websocket subscribers of a scope.
type MessageEvent struct {
	Type       string    `json:"type"`
	ID         int64     `json:"id"`
	AuthorNick string    `json:"authorNick"`
	Content    string    `json:"content,omitempty"`
	ChannelID  *int64    `json:"channelId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

const (
	EventMessageCreated = "message.created"
	EventMessageUpdated = "message.updated"
	EventMessageDeleted = "message.deleted"
)

// NewMessageEvent projects m into the event pushed to subscribers.
func NewMessageEvent(eventType string, m Message) MessageEvent {
	event := MessageEvent{
		Type:       eventType,
		ID:         m.ID,
		AuthorNick: string(m.Author),
		CreatedAt:  m.CreatedAt,
	}
	if eventType != EventMessageDeleted {
		event.Content = m.Content
	}
	if id, ok := m.Scope.ChannelID(); ok {
		event.ChannelID = &id
	}
	return event
}
