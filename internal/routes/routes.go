package routes

import (
	"github.com/gorilla/mux"
	"github.com/nikhil/zsechat/internal/handlers"
	"github.com/nikhil/zsechat/internal/logger"
	"github.com/nikhil/zsechat/internal/middleware"
	authRoute "github.com/nikhil/zsechat/internal/routes/Auth"
	channnelRoutes "github.com/nikhil/zsechat/internal/routes/channels"
	messageRoutes "github.com/nikhil/zsechat/internal/routes/messages"
	userRoutes "github.com/nikhil/zsechat/internal/routes/user"
)

// List of all route registration functions
var routeModules = []func(*mux.Router, *handlers.Set){
	authRoute.RegisterAuthRoutes,
	userRoutes.UserProfileRoutes,
	channnelRoutes.ChannelRoutes,
	messageRoutes.MessageRoutes,
	RegisterWebSocketRoutes,
}

// Register all routes dynamically
func RegisterAllRoutes(h *handlers.Set, log *logger.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestID, middleware.AccessLog(log), middleware.Recover(log))

	for _, register := range routeModules {
		register(router, h)
	}

	return router
}
