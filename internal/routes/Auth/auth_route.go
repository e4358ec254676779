package authRoute

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nikhil/zsechat/internal/handlers"
	"github.com/nikhil/zsechat/internal/middleware"
)

func RegisterAuthRoutes(router *mux.Router, h *handlers.Set) {
	// Public routes without auth middleware
	router.Handle("/login", middleware.ResponseWrapperMiddleware(http.HandlerFunc(h.Auth.Login))).Methods(http.MethodPost)
	router.Handle("/users", middleware.ResponseWrapperMiddleware(http.HandlerFunc(h.Auth.Signup))).Methods(http.MethodPost)
}
