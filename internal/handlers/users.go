package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nikhil/zsechat/internal/logger"
	"github.com/nikhil/zsechat/internal/models"
	usermodels "github.com/nikhil/zsechat/internal/models/users"
	"github.com/nikhil/zsechat/internal/response"
	profileService "github.com/nikhil/zsechat/internal/service/users"
	"github.com/samber/lo"
)

type UserHandler struct {
	Service *profileService.ProfileService
	Log     *logger.Logger
}

func NewUserHandler(service *profileService.ProfileService, log *logger.Logger) *UserHandler {
	return &UserHandler{Service: service, Log: log}
}

// UpdateUserRequest is bound to the caller; the nickname in the body is ignored.
type UpdateUserRequest struct {
	Nickname models.Identity `json:"nickname"`
	usermodels.Patch
}

func (req *UpdateUserRequest) BindIdentity(identity models.Identity) {
	req.Nickname = identity
}

// UserDetailResponse is the full profile, shown only to its owner.
type UserDetailResponse struct {
	Nickname                 models.Identity `json:"nickname"`
	FirstName                string          `json:"firstName"`
	LastName                 string          `json:"lastName"`
	Email                    string          `json:"email"`
	PhoneNumber              string          `json:"phoneNumber"`
	Country                  string          `json:"country"`
	City                     string          `json:"city"`
	UserStatus               string          `json:"userStatus"`
	UserLanguage             string          `json:"userLanguage"`
	TimeZone                 string          `json:"timeZone"`
	ShowFirstNameAndLastName bool            `json:"showFirstNameAndLastName"`
	ShowEmail                bool            `json:"showEmail"`
	ShowPhoneNumber          bool            `json:"showPhoneNumber"`
	ShowAddress              bool            `json:"showAddress"`
	Deleted                  bool            `json:"deleted"`
}

func newUserDetailResponse(u usermodels.User) UserDetailResponse {
	return UserDetailResponse{
		Nickname:                 u.Nickname,
		FirstName:                u.FirstName,
		LastName:                 u.LastName,
		Email:                    u.Email,
		PhoneNumber:              u.PhoneNumber,
		Country:                  u.Country,
		City:                     u.City,
		UserStatus:               string(u.Status),
		UserLanguage:             string(u.Language),
		TimeZone:                 u.TimeZone,
		ShowFirstNameAndLastName: u.ShowFirstNameAndLastName,
		ShowEmail:                u.ShowEmail,
		ShowPhoneNumber:          u.ShowPhoneNumber,
		ShowAddress:              u.ShowAddress,
		Deleted:                  u.Deleted,
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	log := h.Log.WithContext(r.Context())

	users, err := h.Service.List(r.Context())
	if err != nil {
		response.Error(w, log, err)
		return
	}

	response.JSON(w, http.StatusOK, lo.Map(users, func(u usermodels.User, _ int) usermodels.PublicProfile {
		return u.Public()
	}))
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.Log.WithContext(r.Context())

	user, err := h.Service.GetByNickname(r.Context(), models.Identity(mux.Vars(r)["nick"]))
	if err != nil {
		response.Error(w, log, err)
		return
	}

	response.JSON(w, http.StatusOK, user.Public())
}

func (h *UserHandler) Details(w http.ResponseWriter, r *http.Request) {
	log := h.Log.WithContext(r.Context())
	identity, ok := identityFrom(w, r, log)
	if !ok {
		return
	}

	user, err := h.Service.Details(r.Context(), identity)
	if err != nil {
		response.Error(w, log, err)
		return
	}

	response.JSON(w, http.StatusOK, newUserDetailResponse(user))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request, req *UpdateUserRequest) {
	log := h.Log.WithContext(r.Context())
	if err := validateRequest(req); err != nil {
		response.Error(w, log, err)
		return
	}

	user, err := h.Service.Update(r.Context(), req.Nickname, req.Patch)
	if err != nil {
		response.Error(w, log, err)
		return
	}

	response.JSON(w, http.StatusOK, user.Public())
}
