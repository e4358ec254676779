package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nikhil/zsechat/internal/apperrors"
	"github.com/nikhil/zsechat/internal/auth"
	"github.com/nikhil/zsechat/internal/logger"
	"github.com/nikhil/zsechat/internal/models"
	"github.com/nikhil/zsechat/internal/response"
)

type ContextKey string

const IdentityContextKey ContextKey = "currentUser"

const bearerPrefix = "Bearer "

// IdentityBinder is implemented by request DTOs whose identity field the gate
// overwrites with the verified caller.
type IdentityBinder interface {
	BindIdentity(models.Identity)
}

// ArgHandler is a handler that receives its decoded request DTO.
type ArgHandler[P any] func(w http.ResponseWriter, r *http.Request, arg P)

// Gate authenticates requests before protected handlers run.
type Gate struct {
	verifier auth.TokenVerifier
	log      *logger.Logger
}

func NewGate(verifier auth.TokenVerifier, log *logger.Logger) *Gate {
	return &Gate{verifier: verifier, log: log}
}

// Authenticate extracts and verifies the bearer credential of r. The verifier
// is not consulted when the header is absent or blank.
func (g *Gate) Authenticate(r *http.Request) (models.Identity, error) {
	header := r.Header.Get("Authorization")
	if strings.TrimSpace(header) == "" {
		return "", apperrors.ErrMissingToken
	}

	identity, err := g.verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidToken) {
			err = fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
		}
		return "", err
	}
	if identity == "" {
		return "", apperrors.ErrInvalidToken
	}
	return identity, nil
}

// Protect is the context-only mode: the identity is placed on the request
// context and no argument is touched.
func (g *Gate) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := g.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// ProtectFunc is Protect for plain handler functions.
func (g *Gate) ProtectFunc(next http.HandlerFunc) http.Handler {
	return g.Protect(next)
}

// Bind is the argument-binding mode: the request body is decoded into a new
// DTO whose identity is then overwritten with the verified caller, discarding
// whatever the client sent.
func Bind[T any, P interface {
	*T
	IdentityBinder
}](g *Gate, next ArgHandler[P]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := g.authenticate(w, r)
		if !ok {
			return
		}

		arg := P(new(T))
		if err := decodeBody(r, arg); err != nil {
			response.Error(w, g.log.WithContext(r.Context()), fmt.Errorf("%w: %v", apperrors.ErrMalformedPayload, err))
			return
		}
		arg.BindIdentity(identity)

		next(w, r.WithContext(WithIdentity(r.Context(), identity)), arg)
	})
}

func (g *Gate) authenticate(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	identity, err := g.Authenticate(r)
	if err != nil {
		log := g.log.WithContext(r.Context())
		if errors.Is(err, apperrors.ErrMissingToken) {
			log.Warn("Missing JWT token", "method", r.Method, "path", r.URL.Path)
		} else {
			log.Error("Parsing JWT token failed", "method", r.Method, "path", r.URL.Path, "error", err)
		}
		// the verifier detail stays in the log
		if errors.Is(err, apperrors.ErrInvalidToken) {
			err = apperrors.ErrInvalidToken
		}
		response.Error(w, log, err)
		return "", false
	}
	return identity, true
}

func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// WithIdentity returns ctx carrying the verified identity.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}

// IdentityFrom returns the identity a Gate placed on ctx.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(models.Identity)
	return identity, ok && identity != ""
}

func ResponseWrapperMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
