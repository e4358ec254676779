package userRoutes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nikhil/zsechat/internal/handlers"
	"github.com/nikhil/zsechat/internal/middleware"
)

func UserProfileRoutes(router *mux.Router, h *handlers.Set) {
	protectedRouter := router.PathPrefix("/users").Subrouter()
	protectedRouter.Use(middleware.ResponseWrapperMiddleware)

	protectedRouter.Handle("", h.Gate.ProtectFunc(h.Users.List)).Methods(http.MethodGet)
	protectedRouter.Handle("", middleware.Bind[handlers.UpdateUserRequest](h.Gate, h.Users.Update)).Methods(http.MethodPut)
	// before /{nick} so "details" is not taken for a nickname
	protectedRouter.Handle("/details", h.Gate.ProtectFunc(h.Users.Details)).Methods(http.MethodGet)
	protectedRouter.Handle("/{nick}", h.Gate.ProtectFunc(h.Users.Get)).Methods(http.MethodGet)
}
