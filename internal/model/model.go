// Package model defines the core domain types for the attendee registry.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Role is the attendee category that decides which fields apply.
type Role string

const (
	RoleGuest   Role = "GUEST"
	RoleNovice  Role = "NOVICE"
	RoleFighter Role = "FIGHTER"
	RoleVeteran Role = "VETERAN"
)

// Roles lists every role in declaration order.
var Roles = []Role{RoleGuest, RoleNovice, RoleFighter, RoleVeteran}

// ParseRole accepts a role token in any letter case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleGuest, RoleNovice, RoleFighter, RoleVeteran:
		return r, nil
	}
	return "", &InvalidEnumError{Kind: "role", Value: s}
}

// UnmarshalText rejects unknown role tokens while decoding request bodies.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// EventLocation is the part of the event an attendee comes to.
type EventLocation string

const (
	LocationOfficialPart EventLocation = "OFFICIAL_PART"
	LocationBanquet      EventLocation = "BANQUET"
	LocationBoth         EventLocation = "BOTH"
)

// ParseEventLocation accepts a location token in any letter case.
func ParseEventLocation(s string) (EventLocation, error) {
	l := EventLocation(strings.ToUpper(strings.TrimSpace(s)))
	switch l {
	case LocationOfficialPart, LocationBanquet, LocationBoth:
		return l, nil
	}
	return "", &InvalidEnumError{Kind: "event location", Value: s}
}

func (l *EventLocation) UnmarshalText(b []byte) error {
	parsed, err := ParseEventLocation(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Squad is the student squad a guest belongs to.
type Squad string

const (
	SquadVagants    Squad = "VAGANTS"
	SquadVega       Squad = "VEGA"
	SquadGnom       Squad = "GNOM"
	SquadKapitel    Squad = "KAPITEL"
	SquadPlamya     Squad = "PLAMYA"
	SquadTruvery    Squad = "TRUVERY"
	SquadFeniks     Squad = "FENIKS"
	SquadFlibustery Squad = "FLIBUSTERY"
	SquadAltavista  Squad = "ALTAVISTA"
)

var squadDisplayNames = map[Squad]string{
	SquadVagants:    `СПО "Ваганты"`,
	SquadVega:       `СО "Вега"`,
	SquadGnom:       `СПО "ГНОМ"`,
	SquadKapitel:    `СПО "КапиТель"`,
	SquadPlamya:     `СПО "Пламя"`,
	SquadTruvery:    `СПО "Труверы"`,
	SquadFeniks:     `СО "ФениксЪ"`,
	SquadFlibustery: `СО "Флибустьеры"`,
	SquadAltavista:  `СО "ALTAVISTA"`,
}

// ParseSquad accepts a squad token in any letter case.
func ParseSquad(s string) (Squad, error) {
	sq := Squad(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := squadDisplayNames[sq]; !ok {
		return "", &InvalidEnumError{Kind: "squad", Value: s}
	}
	return sq, nil
}

func (s *Squad) UnmarshalText(b []byte) error {
	parsed, err := ParseSquad(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DisplayName returns the squad name as printed on badges and reports.
func (s Squad) DisplayName() string {
	return squadDisplayNames[s]
}

// Date is a calendar date without a time of day, encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate returns the given calendar date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON shadows the promoted time.Time encoder.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a YYYY-MM-DD string, got %s", s)
	}
	return d.UnmarshalText([]byte(s[1 : len(s)-1]))
}

// Attendee is a registered participant. Optional fields are nil when unset.
type Attendee struct {
	ID                    string         `json:"id"`
	Name                  string         `json:"name"`
	Surname               string         `json:"surname"`
	Patronymic            *string        `json:"patronymic,omitempty"`
	Role                  Role           `json:"role"`
	Squad                 *Squad         `json:"squad,omitempty"`
	NeedSpeech            *bool          `json:"needSpeech,omitempty"`
	BirthDate             *Date          `json:"birthDate,omitempty"`
	EventLocation         *EventLocation `json:"eventLocation,omitempty"`
	HasAllergies          *bool          `json:"hasAllergies,omitempty"`
	Allergies             *string        `json:"allergies,omitempty"`
	FoodPreferences       *string        `json:"foodPreferences,omitempty"`
	WantBowling           *bool          `json:"wantBowling,omitempty"`
	AlcoholPreferences    *string        `json:"alcoholPreferences,omitempty"`
	HasCar                *bool          `json:"hasCar,omitempty"`
	TableCompanions       *string        `json:"tableCompanions,omitempty"`
	SpeechCompanions      *string        `json:"speechCompanions,omitempty"`
	WillPerform           *bool          `json:"willPerform,omitempty"`
	PerformanceCompanions *string        `json:"performanceCompanions,omitempty"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
}

// AttendingBanquet reports whether the attendee comes to the banquet.
func (a *Attendee) AttendingBanquet() bool {
	return a.EventLocation != nil &&
		(*a.EventLocation == LocationBanquet || *a.EventLocation == LocationBoth)
}

// AttendingOfficialPart reports whether the attendee comes to the official part.
func (a *Attendee) AttendingOfficialPart() bool {
	return a.EventLocation != nil &&
		(*a.EventLocation == LocationOfficialPart || *a.EventLocation == LocationBoth)
}

// AttendeeRequest is the payload for creating or updating an attendee.
// On update every nil field leaves the stored value unchanged.
type AttendeeRequest struct {
	Name                  *string        `json:"name"`
	Surname               *string        `json:"surname"`
	Patronymic            *string        `json:"patronymic"`
	Role                  *Role          `json:"role"`
	Squad                 *Squad         `json:"squad"`
	NeedSpeech            *bool          `json:"needSpeech"`
	BirthDate             *Date          `json:"birthDate"`
	EventLocation         *EventLocation `json:"eventLocation"`
	HasAllergies          *bool          `json:"hasAllergies"`
	Allergies             *string        `json:"allergies"`
	FoodPreferences       *string        `json:"foodPreferences"`
	WantBowling           *bool          `json:"wantBowling"`
	AlcoholPreferences    *string        `json:"alcoholPreferences"`
	HasCar                *bool          `json:"hasCar"`
	TableCompanions       *string        `json:"tableCompanions"`
	SpeechCompanions      *string        `json:"speechCompanions"`
	WillPerform           *bool          `json:"willPerform"`
	PerformanceCompanions *string        `json:"performanceCompanions"`
}

// MergeInto copies every non-nil request field onto a.
func (r *AttendeeRequest) MergeInto(a *Attendee) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Surname != nil {
		a.Surname = *r.Surname
	}
	if r.Role != nil {
		a.Role = *r.Role
	}
	mergePtr(&a.Patronymic, r.Patronymic)
	mergePtr(&a.Squad, r.Squad)
	mergePtr(&a.NeedSpeech, r.NeedSpeech)
	mergePtr(&a.BirthDate, r.BirthDate)
	mergePtr(&a.EventLocation, r.EventLocation)
	mergePtr(&a.HasAllergies, r.HasAllergies)
	mergePtr(&a.Allergies, r.Allergies)
	mergePtr(&a.FoodPreferences, r.FoodPreferences)
	mergePtr(&a.WantBowling, r.WantBowling)
	mergePtr(&a.AlcoholPreferences, r.AlcoholPreferences)
	mergePtr(&a.HasCar, r.HasCar)
	mergePtr(&a.TableCompanions, r.TableCompanions)
	mergePtr(&a.SpeechCompanions, r.SpeechCompanions)
	mergePtr(&a.WillPerform, r.WillPerform)
	mergePtr(&a.PerformanceCompanions, r.PerformanceCompanions)
}

func mergePtr[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// AttendeeView is the read-side representation of an attendee with the
// role-derived flags computed at read time.
type AttendeeView struct {
	Attendee
	SquadDisplayName      *string `json:"squadDisplayName,omitempty"`
	AlcoholAllowed        bool    `json:"alcoholAllowed"`
	AttendingBanquet      bool    `json:"attendingBanquet"`
	AttendingOfficialPart bool    `json:"attendingOfficialPart"`
	ShowAlcoholWarning    bool    `json:"showAlcoholWarning"`
	Valid                 bool    `json:"valid"`
}

// Admin is an operator allowed to manage attendees and export reports.
type Admin struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LoginRequest is the payload for admin login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned on successful login.
type AuthResponse struct {
	Token    string `json:"token"`
	Message  string `json:"message"`
	Username string `json:"username"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}
