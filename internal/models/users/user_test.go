package usermodels

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestUser_Public(t *testing.T) {
	user := User{
		Nickname:    "alice",
		FirstName:   "Alice",
		LastName:    "Smith",
		Email:       "alice@example.com",
		PhoneNumber: "123",
		Country:     "PL",
		City:        "Gdansk",
	}

	t.Run("should hide everything by default", func(t *testing.T) {
		require.Equal(t, PublicProfile{Nickname: "alice"}, user.Public())
	})

	t.Run("should reveal the fields the user shows", func(t *testing.T) {
		shown := user
		shown.ShowFirstNameAndLastName = true
		shown.ShowAddress = true

		require.Equal(t, PublicProfile{
			Nickname:  "alice",
			FirstName: "Alice",
			LastName:  "Smith",
			Country:   "PL",
			City:      "Gdansk",
		}, shown.Public())
	})
}

func TestPatch_Apply(t *testing.T) {
	req := require.New(t)
	user := User{Nickname: "alice", FirstName: "Alice", City: "Gdansk"}.WithDefaults()

	patched := Patch{
		City:      lo.ToPtr("Warsaw"),
		Language:  lo.ToPtr(LanguageEnglish),
		ShowEmail: lo.ToPtr(true),
	}.Apply(user)

	req.Equal("Alice", patched.FirstName)
	req.Equal("Warsaw", patched.City)
	req.Equal(LanguageEnglish, patched.Language)
	req.Equal(StatusOffline, patched.Status)
	req.Equal(DefaultTimeZone, patched.TimeZone)
	req.True(patched.ShowEmail)
	req.Equal("Gdansk", user.City)
}
