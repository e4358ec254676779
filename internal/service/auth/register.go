package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/nikhil/zsechat/internal/apperrors"
	"github.com/nikhil/zsechat/internal/logger"
	"github.com/nikhil/zsechat/internal/models"
	usermodels "github.com/nikhil/zsechat/internal/models/users"
	"github.com/nikhil/zsechat/internal/repository"
)

// TokenIssuer signs tokens carrying a nickname.
type TokenIssuer interface {
	Issue(nickname models.Identity) (string, error)
}

type AuthService struct {
	Users  repository.UserStore
	Issuer TokenIssuer
	Log    *logger.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(users repository.UserStore, issuer TokenIssuer, log *logger.Logger) *AuthService {
	return &AuthService{
		Users:  users,
		Issuer: issuer,
		Log:    log,
	}
}

// Signup handles user registration
func (s *AuthService) Signup(ctx context.Context, user usermodels.User) (usermodels.User, error) {
	if strings.TrimSpace(string(user.Nickname)) == "" {
		return usermodels.User{}, missingField("nickname")
	}
	if strings.TrimSpace(user.Email) == "" {
		return usermodels.User{}, missingField("email")
	}

	created, err := s.Users.Create(ctx, user.WithDefaults())
	if err != nil {
		return usermodels.User{}, err
	}

	s.Log.WithContext(ctx).Info("User has been created", "user", created.Nickname)
	return created, nil
}

// Login issues a token for an existing nickname.
func (s *AuthService) Login(ctx context.Context, nickname models.Identity) (string, error) {
	if strings.TrimSpace(string(nickname)) == "" {
		return "", missingField("nickname")
	}

	exists, err := s.Users.Exists(ctx, nickname)
	if err != nil {
		return "", fmt.Errorf("checking user %s: %w", nickname, err)
	}
	if !exists {
		return "", fmt.Errorf("%w. Nickname: %s", apperrors.ErrUserNotFound, nickname)
	}

	token, err := s.Issuer.Issue(nickname)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}

	s.Log.WithContext(ctx).Audit("User logged in", "user", nickname)
	return token, nil
}

func missingField(name string) error {
	return fmt.Errorf("%w: %q", apperrors.ErrMissingField, name)
}
