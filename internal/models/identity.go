package models

import (
	"encoding/json"

	"github.com/samber/lo"
)

// Identity is the nickname of a principal. It is the only unit of authorization.
type Identity string

func (i Identity) String() string {
	return string(i)
}

// IdentitySet is an ordered, duplicate-free set of identities. Every operation
// returns a new set; the receiver is never modified.
type IdentitySet struct {
	items []Identity
}

// NewIdentitySet builds a set keeping the first occurrence of each identity.
func NewIdentitySet(ids ...Identity) IdentitySet {
	return IdentitySet{items: lo.Uniq(lo.Filter(ids, func(id Identity, _ int) bool {
		return id != ""
	}))}
}

func (s IdentitySet) Contains(id Identity) bool {
	return lo.Contains(s.items, id)
}

// With returns a set with id appended, or s itself when id is already present.
func (s IdentitySet) With(id Identity) IdentitySet {
	if id == "" || s.Contains(id) {
		return s
	}
	items := make([]Identity, 0, len(s.items)+1)
	items = append(items, s.items...)
	return IdentitySet{items: append(items, id)}
}

// Without returns a set lacking id, or s itself when id is absent.
func (s IdentitySet) Without(id Identity) IdentitySet {
	if !s.Contains(id) {
		return s
	}
	return IdentitySet{items: lo.Without(s.items, id)}
}

func (s IdentitySet) Len() int {
	return len(s.items)
}

func (s IdentitySet) IsEmpty() bool {
	return len(s.items) == 0
}

// Slice returns a copy of the members in insertion order.
func (s IdentitySet) Slice() []Identity {
	out := make([]Identity, len(s.items))
	copy(out, s.items)
	return out
}

// Strings returns the members as plain strings, never nil.
func (s IdentitySet) Strings() []string {
	return lo.Map(s.items, func(id Identity, _ int) string {
		return string(id)
	})
}

func (s IdentitySet) Intersects(other IdentitySet) bool {
	return lo.SomeBy(s.items, other.Contains)
}

func (s IdentitySet) Equal(other IdentitySet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for i := range s.items {
		if s.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

func (s IdentitySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}
