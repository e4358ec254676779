package handlers

import (
	"net/http"

	"github.com/nikhil/zsechat/internal/logger"
	"github.com/nikhil/zsechat/internal/models"
	"github.com/nikhil/zsechat/internal/response"
	channelService "github.com/nikhil/zsechat/internal/service/channels"
)

type ChannelHandler struct {
	Service *channelService.ChannelService
	Log     *logger.Logger
}

func NewChannelHandler(service *channelService.ChannelService, log *logger.Logger) *ChannelHandler {
	return &ChannelHandler{Service: service, Log: log}
}

// UpdateChannelRequest asks for a membership change of UserNickname. Nickname
// is the requester and is always taken from the token.
type UpdateChannelRequest struct {
	Nickname     models.Identity            `json:"nickname"`
	ID           int64                      `json:"id" validate:"required"`
	UserNickname models.Identity            `json:"userNickname" validate:"required"`
	Action       models.ChannelUpdateAction `json:"action" validate:"required,oneof=ADD_OWNER REMOVE_OWNER ADD_MEMBER REMOVE_MEMBER"`
}

func (req *UpdateChannelRequest) BindIdentity(identity models.Identity) {
	req.Nickname = identity
}

// List returns the channels the caller owns or belongs to.
func (h *ChannelHandler) List(w http.ResponseWriter, r *http.Request) {
	log := h.Log.WithContext(r.Context())
	identity, ok := identityFrom(w, r, log)
	if !ok {
		return
	}

	channels, err := h.Service.List(r.Context(), identity)
	if err != nil {
		response.Error(w, log, err)
		return
	}

	if channels == nil {
		channels = []models.Channel{}
	}
	response.JSON(w, http.StatusOK, channels)
}

// Create opens a new channel owned by the caller.
func (h *ChannelHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.Log.WithContext(r.Context())
	identity, ok := identityFrom(w, r, log)
	if !ok {
		return
	}

	channel, err := h.Service.Create(r.Context(), identity)
	if err != nil {
		response.Error(w, log, err)
		return
	}

	response.JSON(w, http.StatusCreated, channel)
}

func (h *ChannelHandler) UpdateMembers(w http.ResponseWriter, r *http.Request, req *UpdateChannelRequest) {
	log := h.Log.WithContext(r.Context())
	if err := validateRequest(req); err != nil {
		response.Error(w, log, err)
		return
	}

	channel, err := h.Service.UpdateMembers(r.Context(), req.Nickname, req.ID, req.Action, req.UserNickname)
	if err != nil {
		response.Error(w, log, err)
		return
	}

	response.JSON(w, http.StatusOK, channel)
}
