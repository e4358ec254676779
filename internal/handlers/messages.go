package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/nikhil/zsechat/internal/logger"
	"github.com/nikhil/zsechat/internal/models"
	"github.com/nikhil/zsechat/internal/response"
	messageService "github.com/nikhil/zsechat/internal/service/messages"
	"github.com/samber/lo"
)

// Path variables of the message routes. Without channelId a route addresses
// the global channel.
const (
	ChannelIDVar = "channelId"
	MessageIDVar = "messageId"
)

type MessageHandler struct {
	Service *messageService.MessageService
	Log     *logger.Logger
}

func NewMessageHandler(service *messageService.MessageService, log *logger.Logger) *MessageHandler {
	return &MessageHandler{Service: service, Log: log}
}

type MessageRequest struct {
	Nickname models.Identity `json:"nickname"`
	Content  string          `json:"content" validate:"required,max=2000"`
}

func (req *MessageRequest) BindIdentity(identity models.Identity) {
	req.Nickname = identity
}

type MessageResponse struct {
	ID         int64     `json:"id"`
	AuthorNick string    `json:"authorNick"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newMessageResponse(m models.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		AuthorNick: string(m.Author),
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
}

func scopeOf(r *http.Request) (models.Scope, error) {
	if _, ok := mux.Vars(r)[ChannelIDVar]; !ok {
		return models.GlobalScope(), nil
	}
	channelID, err := pathID(r, ChannelIDVar)
	if err != nil {
		return models.Scope{}, err
	}
	return models.ChannelScope(channelID), nil
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	log := h.Log.WithContext(r.Context())
	identity, ok := identityFrom(w, r, log)
	if !ok {
		return
	}
	scope, err := scopeOf(r)
	if err != nil {
		response.Error(w, log, err)
		return
	}

	messages, err := h.Service.List(r.Context(), scope, identity)
	if err != nil {
		response.Error(w, log, err)
		return
	}

	response.JSON(w, http.StatusOK, lo.Map(messages, func(m models.Message, _ int) MessageResponse {
		return newMessageResponse(m)
	}))
}

func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.Log.WithContext(r.Context())
	identity, ok := identityFrom(w, r, log)
	if !ok {
		return
	}
	scope, id, err := scopeAndMessage(r)
	if err != nil {
		response.Error(w, log, err)
		return
	}

	message, err := h.Service.Get(r.Context(), scope, identity, id)
	if err != nil {
		response.Error(w, log, err)
		return
	}

	response.JSON(w, http.StatusOK, newMessageResponse(message))
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request, req *MessageRequest) {
	log := h.Log.WithContext(r.Context())
	if err := validateRequest(req); err != nil {
		response.Error(w, log, err)
		return
	}
	scope, err := scopeOf(r)
	if err != nil {
		response.Error(w, log, err)
		return
	}

	message, err := h.Service.Create(r.Context(), scope, req.Nickname, req.Content)
	if err != nil {
		response.Error(w, log, err)
		return
	}

	response.JSON(w, http.StatusCreated, newMessageResponse(message))
}

func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request, req *MessageRequest) {
	log := h.Log.WithContext(r.Context())
	if err := validateRequest(req); err != nil {
		response.Error(w, log, err)
		return
	}
	scope, id, err := scopeAndMessage(r)
	if err != nil {
		response.Error(w, log, err)
		return
	}

	message, err := h.Service.Update(r.Context(), scope, req.Nickname, id, req.Content, false)
	if err != nil {
		response.Error(w, log, err)
		return
	}

	response.JSON(w, http.StatusOK, newMessageResponse(message))
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.Log.WithContext(r.Context())
	identity, ok := identityFrom(w, r, log)
	if !ok {
		return
	}
	scope, id, err := scopeAndMessage(r)
	if err != nil {
		response.Error(w, log, err)
		return
	}

	if _, err := h.Service.Update(r.Context(), scope, identity, id, "", true); err != nil {
		response.Error(w, log, err)
		return
	}

	response.NoContent(w)
}

func scopeAndMessage(r *http.Request) (models.Scope, int64, error) {
	scope, err := scopeOf(r)
	if err != nil {
		return models.Scope{}, 0, err
	}
	id, err := pathID(r, MessageIDVar)
	if err != nil {
		return models.Scope{}, 0, err
	}
	return scope, id, nil
}
