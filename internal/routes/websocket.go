package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nikhil/zsechat/internal/handlers"
)

// RegisterWebSocketRoutes registers all WebSocket related routes
func RegisterWebSocketRoutes(router *mux.Router, h *handlers.Set) {
	router.Handle("/ws", h.Gate.ProtectFunc(h.WebSocket.HandleWebSocket)).Methods(http.MethodGet)
}
