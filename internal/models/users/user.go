package usermodels

import "github.com/nikhil/zsechat/internal/models"

type Status string

const (
	StatusOffline Status = "OFFLINE"
	StatusOnline  Status = "ONLINE"
)

type Language string

const (
	LanguagePolish  Language = "POLISH"
	LanguageEnglish Language = "ENGLISH"
	LanguageGerman  Language = "GERMAN"
)

const DefaultTimeZone = "Europe/Warsaw"

// User is a registered chat participant. Nickname and Email are unique.
type User struct {
	UserID      int64
	Nickname    models.Identity
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Country     string
	City        string
	Status      Status
	Language    Language
	TimeZone    string

	ShowFirstNameAndLastName bool
	ShowEmail                bool
	ShowPhoneNumber          bool
	ShowAddress              bool
	Deleted                  bool
}

// WithDefaults fills the fields a new user gets when the caller left them empty.
func (u User) WithDefaults() User {
	if u.Status == "" {
		u.Status = StatusOffline
	}
	if u.Language == "" {
		u.Language = LanguagePolish
	}
	if u.TimeZone == "" {
		u.TimeZone = DefaultTimeZone
	}
	return u
}

// PublicProfile is what other users see; personal fields stay empty unless the
// owner chose to show them.
type PublicProfile struct {
	Nickname    models.Identity `json:"nickname"`
	FirstName   string          `json:"firstName,omitempty"`
	LastName    string          `json:"lastName,omitempty"`
	Email       string          `json:"email,omitempty"`
	PhoneNumber string          `json:"phoneNumber,omitempty"`
	Country     string          `json:"country,omitempty"`
	City        string          `json:"city,omitempty"`
}

func (u User) Public() PublicProfile {
	profile := PublicProfile{Nickname: u.Nickname}
	if u.ShowFirstNameAndLastName {
		profile.FirstName = u.FirstName
		profile.LastName = u.LastName
	}
	if u.ShowEmail {
		profile.Email = u.Email
	}
	if u.ShowPhoneNumber {
		profile.PhoneNumber = u.PhoneNumber
	}
	if u.ShowAddress {
		profile.Country = u.Country
		profile.City = u.City
	}
	return profile
}

// Patch holds the profile fields a user may change; nil fields are left as
// they are. Nickname and email are not patchable.
type Patch struct {
	FirstName   *string   `json:"firstName"`
	LastName    *string   `json:"lastName"`
	PhoneNumber *string   `json:"phoneNumber"`
	Country     *string   `json:"country"`
	City        *string   `json:"city"`
	Status      *Status   `json:"userStatus" validate:"omitempty,oneof=OFFLINE ONLINE"`
	Language    *Language `json:"language" validate:"omitempty,oneof=POLISH ENGLISH GERMAN"`
	TimeZone    *string   `json:"timeZone" validate:"omitempty,timezone"`

	ShowFirstNameAndLastName *bool `json:"showFirstNameAndLastName"`
	ShowEmail                *bool `json:"showEmail"`
	ShowPhoneNumber          *bool `json:"showPhoneNumber"`
	ShowAddress              *bool `json:"showAddress"`
	Deleted                  *bool `json:"deleted"`
}

func (p Patch) Apply(u User) User {
	set(&u.FirstName, p.FirstName)
	set(&u.LastName, p.LastName)
	set(&u.PhoneNumber, p.PhoneNumber)
	set(&u.Country, p.Country)
	set(&u.City, p.City)
	set(&u.Status, p.Status)
	set(&u.Language, p.Language)
	set(&u.TimeZone, p.TimeZone)
	set(&u.ShowFirstNameAndLastName, p.ShowFirstNameAndLastName)
	set(&u.ShowEmail, p.ShowEmail)
	set(&u.ShowPhoneNumber, p.ShowPhoneNumber)
	set(&u.ShowAddress, p.ShowAddress)
	set(&u.Deleted, p.Deleted)
	return u
}

func set[T any](dst *T, value *T) {
	if value != nil {
		*dst = *value
	}
}
