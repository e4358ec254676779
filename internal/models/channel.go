package models

// Channel is a group conversation with disjoint owner and member sets.
type Channel struct {
	ID      int64       `json:"id"`
	Owners  IdentitySet `json:"owners"`
	Members IdentitySet `json:"members"`
}

// NewChannel returns an unsaved channel owned solely by creator.
func NewChannel(creator Identity) Channel {
	return Channel{
		Owners:  NewIdentitySet(creator),
		Members: NewIdentitySet(),
	}
}

// ChannelUpdateAction is a membership change requested on a channel.
type ChannelUpdateAction string

const (
	AddOwner     ChannelUpdateAction = "ADD_OWNER"
	RemoveOwner  ChannelUpdateAction = "REMOVE_OWNER"
	AddMember    ChannelUpdateAction = "ADD_MEMBER"
	RemoveMember ChannelUpdateAction = "REMOVE_MEMBER"
)

func (a ChannelUpdateAction) Valid() bool {
	switch a {
	case AddOwner, RemoveOwner, AddMember, RemoveMember:
		return true
	}
	return false
}

// Scope is either the implicit global channel or one specific channel.
// The zero value is the global scope.
type Scope struct {
	channelID int64
	specific  bool
}

func GlobalScope() Scope {
	return Scope{}
}

func ChannelScope(channelID int64) Scope {
	return Scope{channelID: channelID, specific: true}
}

func (s Scope) IsGlobal() bool {
	return !s.specific
}

// ChannelID returns the channel of a specific scope; ok is false for the global scope.
func (s Scope) ChannelID() (id int64, ok bool) {
	return s.channelID, s.specific
}
