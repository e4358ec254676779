package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/nikhil/zsechat/internal/apperrors"
	"github.com/nikhil/zsechat/internal/logger"
	"github.com/nikhil/zsechat/internal/middleware"
	"github.com/nikhil/zsechat/internal/models"
	"github.com/nikhil/zsechat/internal/response"
)

// Set bundles the handlers the route modules register.
type Set struct {
	Gate      *middleware.Gate
	Auth      *AuthHandler
	Users     *UserHandler
	Channels  *ChannelHandler
	Messages  *MessageHandler
	WebSocket *WebSocketHandler
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields under their JSON names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// validateRequest returns a *response.ValidationError listing every rejected field.
func validateRequest(request interface{}) error {
	err := validate.Struct(request)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", apperrors.ErrMalformedPayload, err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		fields[fieldErr.Field()] = fieldMessage(fieldErr)
	}
	return &response.ValidationError{Fields: fields}
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "must not be empty"
	case "email":
		return "must be a well-formed email address"
	case "oneof":
		return "must be one of: " + fieldErr.Param()
	case "max":
		return "size must be at most " + fieldErr.Param()
	case "timezone":
		return "must be a valid time zone"
	}
	return "is invalid"
}

// identityFrom returns the caller the gate placed on the context. Handlers
// registered behind the gate always have one.
func identityFrom(w http.ResponseWriter, r *http.Request, log *logger.Logger) (models.Identity, bool) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		log.Error("Failed to extract user details from context")
		response.Error(w, log, apperrors.ErrInvalidToken)
	}
	return identity, ok
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", apperrors.ErrMalformedPayload, name)
	}
	return id, nil
}
