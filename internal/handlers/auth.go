package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nikhil/zsechat/internal/apperrors"
	"github.com/nikhil/zsechat/internal/logger"
	"github.com/nikhil/zsechat/internal/models"
	usermodels "github.com/nikhil/zsechat/internal/models/users"
	"github.com/nikhil/zsechat/internal/response"
	services "github.com/nikhil/zsechat/internal/service/auth"
)

type AuthHandler struct {
	Service *services.AuthService
	Log     *logger.Logger
}

// NewAuthHandler creates a new instance of AuthHandler
func NewAuthHandler(service *services.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{Service: service, Log: log}
}

type LoginRequest struct {
	Nickname models.Identity `json:"nickname"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type CreateUserRequest struct {
	Nickname    models.Identity      `json:"nickname" validate:"required,max=64"`
	FirstName   string               `json:"firstName" validate:"max=100"`
	LastName    string               `json:"lastName" validate:"max=100"`
	Email       string               `json:"email" validate:"required,email,max=255"`
	PhoneNumber string               `json:"phoneNumber" validate:"max=32"`
	Country     string               `json:"country" validate:"max=100"`
	City        string               `json:"city" validate:"max=100"`
	Language    *usermodels.Language `json:"language" validate:"omitempty,oneof=POLISH ENGLISH GERMAN"`
}

func (req CreateUserRequest) user() usermodels.User {
	user := usermodels.User{
		Nickname:    req.Nickname,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Country:     req.Country,
		City:        req.City,
	}
	if req.Language != nil {
		user.Language = *req.Language
	}
	return user
}

// Signup handles the user registration request
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	log := h.Log.WithContext(r.Context())

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, log, fmt.Errorf("%w: %v", apperrors.ErrMalformedPayload, err))
		return
	}
	if err := validateRequest(req); err != nil {
		response.Error(w, log, err)
		return
	}

	user, err := h.Service.Signup(r.Context(), req.user())
	if err != nil {
		response.Error(w, log, err)
		return
	}

	response.JSON(w, http.StatusCreated, user.Public())
}

// Login handles the user authentication request
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := h.Log.WithContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, log, fmt.Errorf("%w: %v", apperrors.ErrMalformedPayload, err))
		return
	}

	token, err := h.Service.Login(r.Context(), req.Nickname)
	if err != nil {
		response.Error(w, log, err)
		return
	}

	response.JSON(w, http.StatusOK, LoginResponse{Token: token})
}
