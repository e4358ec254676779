package channelService

import "github.com/nikhil/zsechat/internal/models"

// CanModify reports whether identity may change the membership of channel.
func CanModify(channel models.Channel, identity models.Identity) bool {
	return channel.Owners.Contains(identity)
}

// CanView reports whether identity may read the messages of channel.
func CanView(channel models.Channel, identity models.Identity) bool {
	return channel.Owners.Contains(identity) || channel.Members.Contains(identity)
}
