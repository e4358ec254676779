package channelService

import (
	"context"
	"errors"
	"testing"

	"github.com/nikhil/zsechat/internal/apperrors"
	"github.com/nikhil/zsechat/internal/logger"
	"github.com/nikhil/zsechat/internal/mocks"
	"github.com/nikhil/zsechat/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fixture struct {
	channels *mocks.MockChannelStore
	users    *mocks.MockUserStore
	revoker  *mocks.MockRevoker
	service  *ChannelService
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		channels: mocks.NewMockChannelStore(ctrl),
		users:    mocks.NewMockUserStore(ctrl),
		revoker:  mocks.NewMockRevoker(ctrl),
	}
	f.service = NewChannelService(f.channels, f.users, f.revoker, logger.NewNop())
	return f
}

func savedAs(id int64) func(context.Context, models.Channel) (models.Channel, error) {
	return func(_ context.Context, ch models.Channel) (models.Channel, error) {
		ch.ID = id
		return ch, nil
	}
}

func TestChannelService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should seed the creator as the only owner", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.users.EXPECT().Exists(ctx, models.Identity("alice")).Return(true, nil)
		f.channels.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(savedAs(1))

		ch, err := f.service.Create(ctx, "alice")

		req.NoError(err)
		requireChannel(t, channel(1, ids("alice"), nil), ch)
	})

	t.Run("should reject an unknown creator", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.users.EXPECT().Exists(ctx, models.Identity("ghost")).Return(false, nil)
		f.channels.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.service.Create(ctx, "ghost")

		req.ErrorIs(err, apperrors.ErrUserNotFound)
	})
}

func TestChannelService_UpdateMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("should add an owner", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.channels.EXPECT().FindByID(ctx, int64(1)).Return(channel(1, ids("alice"), nil), nil)
		f.users.EXPECT().Exists(ctx, models.Identity("bob")).Return(true, nil)
		f.channels.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(savedAs(1))

		ch, err := f.service.UpdateMembers(ctx, "alice", 1, models.AddOwner, "bob")

		req.NoError(err)
		requireChannel(t, channel(1, ids("alice", "bob"), nil), ch)
	})

	t.Run("should deny a member changing membership", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.channels.EXPECT().FindByID(ctx, int64(1)).Return(channel(1, ids("alice"), ids("bob")), nil)
		f.users.EXPECT().Exists(gomock.Any(), gomock.Any()).Times(0)
		f.channels.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.service.UpdateMembers(ctx, "bob", 1, models.AddOwner, "bob")

		req.ErrorIs(err, apperrors.ErrChannelUpdateDenied)
	})

	t.Run("should log the denied attempt with its channel", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		core, logs := observer.New(zapcore.WarnLevel)
		f.service.Log = logger.New(core, "test")
		f.channels.EXPECT().FindByID(ctx, int64(1)).Return(channel(1, ids("alice"), ids("bob")), nil)

		_, err := f.service.UpdateMembers(ctx, "bob", 1, models.RemoveOwner, "alice")
		req.ErrorIs(err, apperrors.ErrChannelUpdateDenied)

		denied := logs.FilterMessage("Unauthorized channel update attempt").All()
		req.Len(denied, 1)
		fields := denied[0].ContextMap()
		req.EqualValues(1, fields["channel_id"])
		req.Equal("bob", fields["user"])
		req.Equal("alice", fields["target"])
	})

	t.Run("should report a missing channel", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.channels.EXPECT().FindByID(ctx, int64(9)).Return(models.Channel{}, apperrors.ErrChannelNotFound)

		_, err := f.service.UpdateMembers(ctx, "alice", 9, models.AddMember, "bob")

		req.ErrorIs(err, apperrors.ErrChannelNotFound)
	})

	t.Run("should reject an unknown target", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.channels.EXPECT().FindByID(ctx, int64(1)).Return(channel(1, ids("alice"), nil), nil)
		f.users.EXPECT().Exists(ctx, models.Identity("ghost")).Return(false, nil)
		f.channels.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.service.UpdateMembers(ctx, "alice", 1, models.AddMember, "ghost")

		req.ErrorIs(err, apperrors.ErrUserNotFound)
	})

	t.Run("should refuse to demote the last owner", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.channels.EXPECT().FindByID(ctx, int64(1)).Return(channel(1, ids("alice"), ids("bob")), nil)
		f.users.EXPECT().Exists(ctx, models.Identity("alice")).Return(true, nil)
		f.channels.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.service.UpdateMembers(ctx, "alice", 1, models.RemoveOwner, "alice")

		req.ErrorIs(err, apperrors.ErrChannelUpdateDenied)
	})

	t.Run("should revoke live access of a removed member", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.channels.EXPECT().FindByID(ctx, int64(1)).Return(channel(1, ids("alice"), ids("bob")), nil)
		f.users.EXPECT().Exists(ctx, models.Identity("bob")).Return(true, nil)
		f.channels.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(savedAs(1))
		f.revoker.EXPECT().Revoke(int64(1), models.Identity("bob"))

		ch, err := f.service.UpdateMembers(ctx, "alice", 1, models.RemoveMember, "bob")

		req.NoError(err)
		requireChannel(t, channel(1, ids("alice"), nil), ch)
	})

	t.Run("should not revoke a demoted owner", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		f.channels.EXPECT().FindByID(ctx, int64(1)).Return(channel(1, ids("alice", "bob"), nil), nil)
		f.users.EXPECT().Exists(ctx, models.Identity("bob")).Return(true, nil)
		f.channels.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(savedAs(1))
		f.revoker.EXPECT().Revoke(gomock.Any(), gomock.Any()).Times(0)

		ch, err := f.service.UpdateMembers(ctx, "alice", 1, models.RemoveOwner, "bob")

		req.NoError(err)
		requireChannel(t, channel(1, ids("alice"), ids("bob")), ch)
	})

	t.Run("should propagate storage failures", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		boom := errors.New("connection reset")
		f.channels.EXPECT().FindByID(ctx, int64(1)).Return(channel(1, ids("alice"), nil), nil)
		f.users.EXPECT().Exists(ctx, models.Identity("bob")).Return(true, nil)
		f.channels.EXPECT().Save(ctx, gomock.Any()).Return(models.Channel{}, boom)

		_, err := f.service.UpdateMembers(ctx, "alice", 1, models.AddMember, "bob")

		req.ErrorIs(err, boom)
	})
}

func TestChannelService_List(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t)
	expected := []models.Channel{channel(1, ids("alice"), nil), channel(2, ids("bob"), ids("alice"))}
	f.channels.EXPECT().FindByIdentity(ctx, models.Identity("alice")).Return(expected, nil)

	channels, err := f.service.List(ctx, "alice")

	req.NoError(err)
	req.Len(channels, 2)
}
