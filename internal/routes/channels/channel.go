package channnelRoutes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nikhil/zsechat/internal/handlers"
	"github.com/nikhil/zsechat/internal/middleware"
)

func ChannelRoutes(router *mux.Router, h *handlers.Set) {
	protectedRouter := router.PathPrefix("/channels").Subrouter()
	protectedRouter.Use(middleware.ResponseWrapperMiddleware)

	protectedRouter.Handle("", h.Gate.ProtectFunc(h.Channels.List)).Methods(http.MethodGet)
	protectedRouter.Handle("", h.Gate.ProtectFunc(h.Channels.Create)).Methods(http.MethodPost)
	protectedRouter.Handle("/users", middleware.Bind[handlers.UpdateChannelRequest](h.Gate, h.Channels.UpdateMembers)).Methods(http.MethodPut)
}
