package services

import (
	"context"
	"testing"
	"time"

	"github.com/nikhil/zsechat/internal/apperrors"
	"github.com/nikhil/zsechat/internal/auth"
	"github.com/nikhil/zsechat/internal/logger"
	"github.com/nikhil/zsechat/internal/mocks"
	"github.com/nikhil/zsechat/internal/models"
	usermodels "github.com/nikhil/zsechat/internal/models/users"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const secret = "login-secret"

func newService(t *testing.T) (*mocks.MockUserStore, *AuthService) {
	store := mocks.NewMockUserStore(gomock.NewController(t))
	return store, NewAuthService(store, auth.NewIssuer(secret, time.Hour), logger.NewNop())
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("should issue a token the verifier accepts", func(t *testing.T) {
		req := require.New(t)
		store, service := newService(t)
		store.EXPECT().Exists(ctx, models.Identity("alice")).Return(true, nil)

		token, err := service.Login(ctx, "alice")
		req.NoError(err)

		identity, err := auth.NewVerifier(secret).Verify(token)
		req.NoError(err)
		req.Equal(models.Identity("alice"), identity)
	})

	t.Run("should refuse an unknown nickname", func(t *testing.T) {
		req := require.New(t)
		store, service := newService(t)
		store.EXPECT().Exists(ctx, models.Identity("ghost")).Return(false, nil)

		_, err := service.Login(ctx, "ghost")

		req.ErrorIs(err, apperrors.ErrUserNotFound)
	})

	t.Run("should require a nickname", func(t *testing.T) {
		req := require.New(t)
		store, service := newService(t)
		store.EXPECT().Exists(gomock.Any(), gomock.Any()).Times(0)

		_, err := service.Login(ctx, "")

		req.ErrorIs(err, apperrors.ErrMissingField)
		req.Contains(err.Error(), `"nickname"`)
	})
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("should store the user with defaults", func(t *testing.T) {
		req := require.New(t)
		store, service := newService(t)
		store.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u usermodels.User) (usermodels.User, error) {
			u.UserID = 1
			return u, nil
		})

		created, err := service.Signup(ctx, usermodels.User{Nickname: "alice", Email: "alice@example.com"})

		req.NoError(err)
		req.Equal(int64(1), created.UserID)
		req.Equal(usermodels.StatusOffline, created.Status)
		req.Equal(usermodels.LanguagePolish, created.Language)
		req.Equal(usermodels.DefaultTimeZone, created.TimeZone)
	})

	t.Run("should pass duplicates through", func(t *testing.T) {
		req := require.New(t)
		store, service := newService(t)
		store.EXPECT().Create(ctx, gomock.Any()).Return(usermodels.User{}, apperrors.ErrNicknameTaken)

		_, err := service.Signup(ctx, usermodels.User{Nickname: "alice", Email: "alice@example.com"})

		req.ErrorIs(err, apperrors.ErrNicknameTaken)
	})

	t.Run("should require an email", func(t *testing.T) {
		req := require.New(t)
		store, service := newService(t)
		store.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := service.Signup(ctx, usermodels.User{Nickname: "alice"})

		req.ErrorIs(err, apperrors.ErrMissingField)
	})
}
