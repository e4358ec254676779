package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/nikhil/zsechat/internal/apperrors"
	"github.com/nikhil/zsechat/internal/logger"
	"github.com/nikhil/zsechat/internal/models"
	"github.com/nikhil/zsechat/internal/response"
	messageService "github.com/nikhil/zsechat/internal/service/messages"
	"github.com/samber/lo"
)

// WebSocketHandler streams message events of one scope to the caller
type WebSocketHandler struct {
	hub      *models.Hub
	messages *messageService.MessageService
	upgrader websocket.Upgrader
	Log      *logger.Logger
}

// NewWebSocketHandler creates a new WebSocket handler. Browsers may connect
// from allowedOrigins; with none configured only same-origin pages may.
func NewWebSocketHandler(hub *models.Hub, messages *messageService.MessageService, allowedOrigins []string, log *logger.Logger) *WebSocketHandler {
	h := &WebSocketHandler{
		hub:      hub,
		messages: messages,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Log: log,
	}
	if len(allowedOrigins) > 0 {
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || lo.Contains(allowedOrigins, origin)
		}
	}
	return h
}

// HandleWebSocket subscribes the caller to the global channel, or to the
// channel given by the channel_id query parameter when they may view it.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	log := h.Log.WithContext(r.Context())
	identity, ok := identityFrom(w, r, log)
	if !ok {
		return
	}

	scope := models.GlobalScope()
	if raw := r.URL.Query().Get("channel_id"); raw != "" {
		channelID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(w, log, fmt.Errorf("%w: invalid channel_id", apperrors.ErrMalformedPayload))
			return
		}
		scope = models.ChannelScope(channelID)
	}

	if err := h.messages.CheckAccess(r.Context(), scope, identity); err != nil {
		response.Error(w, log, err)
		return
	}

	// Upgrade the HTTP connection to a WebSocket connection
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("Error upgrading connection", "error", err)
		return
	}

	client := &models.Client{
		Hub:      h.hub,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Identity: identity,
		Scope:    scope,
	}

	if !h.hub.Subscribe(client) {
		conn.Close()
		return
	}

	// a revocation between the first check and Subscribe missed this client
	if err := h.messages.CheckAccess(r.Context(), scope, identity); err != nil {
		log.Warn("Feed access lost while subscribing", "user", identity, "error", err)
		h.hub.Unsubscribe(client)
		go client.WritePump()
		return
	}
	log.Debug("Feed subscribed", "user", identity, "global", scope.IsGlobal())

	// Start goroutines for reading and writing messages
	go client.WritePump()
	go client.ReadPump()
}
