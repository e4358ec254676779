package channelService

import (
	"testing"

	"github.com/nikhil/zsechat/internal/models"
	"github.com/stretchr/testify/require"
)

var allActions = []models.ChannelUpdateAction{
	models.AddOwner,
	models.RemoveOwner,
	models.AddMember,
	models.RemoveMember,
}

func channel(id int64, owners, members []models.Identity) models.Channel {
	return models.Channel{
		ID:      id,
		Owners:  models.NewIdentitySet(owners...),
		Members: models.NewIdentitySet(members...),
	}
}

func ids(values ...models.Identity) []models.Identity {
	return values
}

func requireChannel(t *testing.T, expected, actual models.Channel) {
	t.Helper()
	req := require.New(t)
	req.Equal(expected.ID, actual.ID)
	req.Equal(expected.Owners.Strings(), actual.Owners.Strings(), "owners")
	req.Equal(expected.Members.Strings(), actual.Members.Strings(), "members")
}

func TestApply(t *testing.T) {
	t.Run("should add a second owner", func(t *testing.T) {
		ch := channel(1, ids("alice"), nil)

		result := Apply(ch, models.AddOwner, "bob")

		requireChannel(t, channel(1, ids("alice", "bob"), nil), result)
	})

	t.Run("should demote a removed owner to member", func(t *testing.T) {
		ch := channel(1, ids("alice", "bob"), nil)

		result := Apply(ch, models.RemoveOwner, "bob")

		requireChannel(t, channel(1, ids("alice"), ids("bob")), result)
	})

	t.Run("should promote a member to owner", func(t *testing.T) {
		ch := channel(1, ids("alice"), ids("bob", "carol"))

		result := Apply(ch, models.AddOwner, "bob")

		requireChannel(t, channel(1, ids("alice", "bob"), ids("carol")), result)
	})

	t.Run("should ignore adding an owner as member", func(t *testing.T) {
		ch := channel(1, ids("alice", "bob"), ids("carol"))

		result := Apply(ch, models.AddMember, "bob")

		requireChannel(t, ch, result)
	})

	t.Run("should add a member once", func(t *testing.T) {
		ch := channel(1, ids("alice"), ids("bob"))

		result := Apply(Apply(ch, models.AddMember, "carol"), models.AddMember, "carol")

		requireChannel(t, channel(1, ids("alice"), ids("bob", "carol")), result)
	})

	t.Run("should remove a member and be idempotent", func(t *testing.T) {
		ch := channel(1, ids("alice"), ids("bob", "carol"))

		once := Apply(ch, models.RemoveMember, "bob")
		twice := Apply(once, models.RemoveMember, "bob")

		requireChannel(t, channel(1, ids("alice"), ids("carol")), once)
		requireChannel(t, once, twice)
	})

	t.Run("should not touch owners on remove member", func(t *testing.T) {
		ch := channel(1, ids("alice"), nil)

		result := Apply(ch, models.RemoveMember, "alice")

		requireChannel(t, ch, result)
	})

	t.Run("should ignore removing an owner who is not one", func(t *testing.T) {
		ch := channel(1, ids("alice"), ids("bob"))

		requireChannel(t, ch, Apply(ch, models.RemoveOwner, "bob"))
		requireChannel(t, ch, Apply(ch, models.RemoveOwner, "zed"))
	})

	t.Run("should leave the input channel unchanged", func(t *testing.T) {
		ch := channel(1, ids("alice"), ids("bob"))

		Apply(ch, models.AddOwner, "bob")
		Apply(ch, models.AddMember, "carol")
		Apply(ch, models.RemoveOwner, "alice")

		requireChannel(t, channel(1, ids("alice"), ids("bob")), ch)
	})

	t.Run("should keep owners and members disjoint for every action", func(t *testing.T) {
		req := require.New(t)
		people := ids("alice", "bob", "carol", "dave")
		start := []models.Channel{
			channel(1, ids("alice"), nil),
			channel(2, ids("alice", "bob"), ids("carol")),
			channel(3, ids("bob"), ids("alice", "carol", "dave")),
		}

		for _, ch := range start {
			// two steps deep covers promotions after demotions and the reverse
			for _, first := range allActions {
				for _, a := range people {
					mid := Apply(ch, first, a)
					req.False(mid.Owners.Intersects(mid.Members), "%v %s on %v", first, a, ch)
					for _, second := range allActions {
						for _, b := range people {
							end := Apply(mid, second, b)
							req.False(end.Owners.Intersects(end.Members), "%v %s then %v %s", first, a, second, b)
						}
					}
				}
			}
		}
	})
}

func TestAuthorizer(t *testing.T) {
	ch := channel(1, ids("alice"), ids("bob"))

	cases := []struct {
		identity  models.Identity
		canModify bool
		canView   bool
	}{
		{"alice", true, true},
		{"bob", false, true},
		{"carol", false, false},
		{"", false, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.identity), func(t *testing.T) {
			req := require.New(t)
			req.Equal(tc.canModify, CanModify(ch, tc.identity))
			req.Equal(tc.canView, CanView(ch, tc.identity))
		})
	}

	t.Run("should match set membership for every transition result", func(t *testing.T) {
		req := require.New(t)
		for _, action := range allActions {
			result := Apply(ch, action, "carol")
			for _, id := range ids("alice", "bob", "carol") {
				req.Equal(result.Owners.Contains(id), CanModify(result, id))
				req.Equal(result.Owners.Contains(id) || result.Members.Contains(id), CanView(result, id))
			}
		}
	})
}
