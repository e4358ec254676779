package messageRoutes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nikhil/zsechat/internal/handlers"
	"github.com/nikhil/zsechat/internal/middleware"
)

// MessageRoutes serves the global channel under /messages and every other
// channel under /messages/channels/{channelId}; both share the handlers.
func MessageRoutes(router *mux.Router, h *handlers.Set) {
	protectedRouter := router.PathPrefix("/messages").Subrouter()
	protectedRouter.Use(middleware.ResponseWrapperMiddleware)

	for _, prefix := range []string{"", "/channels/{" + handlers.ChannelIDVar + ":[0-9]+}"} {
		item := prefix + "/{" + handlers.MessageIDVar + ":[0-9]+}"

		protectedRouter.Handle(prefix, h.Gate.ProtectFunc(h.Messages.List)).Methods(http.MethodGet)
		protectedRouter.Handle(prefix, middleware.Bind[handlers.MessageRequest](h.Gate, h.Messages.Create)).Methods(http.MethodPost)
		protectedRouter.Handle(item, h.Gate.ProtectFunc(h.Messages.Get)).Methods(http.MethodGet)
		protectedRouter.Handle(item, middleware.Bind[handlers.MessageRequest](h.Gate, h.Messages.Update)).Methods(http.MethodPut)
		protectedRouter.Handle(item, h.Gate.ProtectFunc(h.Messages.Delete)).Methods(http.MethodDelete)
	}
}
