package channelService

import "github.com/nikhil/zsechat/internal/models"

// Apply returns channel with action applied to target. The requester's right to
// modify the channel is checked by the caller. Owners and members stay disjoint
// and channel itself is left untouched.
func Apply(channel models.Channel, action models.ChannelUpdateAction, target models.Identity) models.Channel {
	next := channel
	switch action {
	case models.AddOwner:
		next.Owners = channel.Owners.With(target)
		next.Members = channel.Members.Without(target)
	case models.RemoveOwner:
		if !channel.Owners.Contains(target) {
			return channel
		}
		next.Owners = channel.Owners.Without(target)
		next.Members = channel.Members.With(target)
	case models.AddMember:
		// owners are implicitly members
		if channel.Owners.Contains(target) {
			return channel
		}
		next.Members = channel.Members.With(target)
	case models.RemoveMember:
		next.Members = channel.Members.Without(target)
	}
	return next
}
