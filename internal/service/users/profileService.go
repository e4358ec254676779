package profileService

import (
	"context"
	"fmt"

	"github.com/nikhil/zsechat/internal/logger"
	"github.com/nikhil/zsechat/internal/models"
	usermodels "github.com/nikhil/zsechat/internal/models/users"
	"github.com/nikhil/zsechat/internal/repository"
)

type ProfileService struct {
	Users repository.UserStore
	Log   *logger.Logger
}

func NewProfileService(users repository.UserStore, log *logger.Logger) *ProfileService {
	return &ProfileService{
		Users: users,
		Log:   log,
	}
}

func (profile *ProfileService) List(ctx context.Context) ([]usermodels.User, error) {
	users, err := profile.Users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (profile *ProfileService) GetByNickname(ctx context.Context, nickname models.Identity) (usermodels.User, error) {
	return profile.Users.FindByNickname(ctx, nickname)
}

// Details returns the full profile of the caller.
func (profile *ProfileService) Details(ctx context.Context, identity models.Identity) (usermodels.User, error) {
	return profile.Users.FindByNickname(ctx, identity)
}

// Update applies patch to the caller's own profile.
func (profile *ProfileService) Update(ctx context.Context, identity models.Identity, patch usermodels.Patch) (usermodels.User, error) {
	user, err := profile.Users.FindByNickname(ctx, identity)
	if err != nil {
		return usermodels.User{}, err
	}

	updated, err := profile.Users.Update(ctx, patch.Apply(user))
	if err != nil {
		return usermodels.User{}, fmt.Errorf("updating user %s: %w", identity, err)
	}

	profile.Log.WithContext(ctx).Info("User details updated", "user", identity)
	return updated, nil
}
