// Package rules holds the role rule table. For every optional attendee field
// it records, per role, whether the field is required, allowed or forbidden,
// and under which record state an allowed field is shown.
//
// Everything here is pure: no I/O, no shared mutable state.
package rules

import (
	"fmt"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
)

// Field identifies an optional, role-dependent attendee field.
// Constants are in declaration order; validation reports follow it.
type Field int

const (
	FieldSquad Field = iota
	FieldNeedSpeech
	FieldBirthDate
	FieldEventLocation
	FieldHasAllergies
	FieldAllergies
	FieldFoodPreferences
	FieldWantBowling
	FieldAlcoholPreferences
	FieldHasCar
	FieldTableCompanions
	FieldSpeechCompanions
	FieldWillPerform
	FieldPerformanceCompanions
	fieldCount
)

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return table[f].name
}

// Fields returns every role-dependent field in declaration order.
func Fields() []Field {
	out := make([]Field, 0, fieldCount)
	for f := range fieldCount {
		out = append(out, f)
	}
	return out
}

// Presence is what a role says about a field.
type Presence int

const (
	// Unchecked fields are neither validated nor shown for the role.
	Unchecked Presence = iota
	Forbidden
	Allowed
	Required
)

func (p Presence) String() string {
	switch p {
	case Forbidden:
		return "forbidden"
	case Allowed:
		return "allowed"
	case Required:
		return "required"
	}
	return "unchecked"
}

// Guard is a set of record-state conditions that must all hold for an
// allowed field to be shown.
type Guard uint8

const (
	GuardBanquet Guard = 1 << iota
	GuardOfficialPart
	GuardNeedSpeech
	GuardHasAllergies
	GuardWillPerform
)

func (g Guard) holds(a *model.Attendee) bool {
	if g&GuardBanquet != 0 && !a.AttendingBanquet() {
		return false
	}
	if g&GuardOfficialPart != 0 && !a.AttendingOfficialPart() {
		return false
	}
	if g&GuardNeedSpeech != 0 && !isTrue(a.NeedSpeech) {
		return false
	}
	if g&GuardHasAllergies != 0 && !isTrue(a.HasAllergies) {
		return false
	}
	if g&GuardWillPerform != 0 && !isTrue(a.WillPerform) {
		return false
	}
	return true
}

// byRole holds one value per role. Table entries use unkeyed literals so
// adding a role breaks compilation at every entry that must be extended.
type byRole[T any] struct {
	guest, novice, fighter, veteran T
}

func (b byRole[T]) of(r model.Role) (T, bool) {
	switch r {
	case model.RoleGuest:
		return b.guest, true
	case model.RoleNovice:
		return b.novice, true
	case model.RoleFighter:
		return b.fighter, true
	case model.RoleVeteran:
		return b.veteran, true
	}
	var zero T
	return zero, false
}

var roleLabels = byRole[string]{"Guest", "Novice", "Fighter", "Veteran"}

type fieldRule struct {
	name     string
	presence byRole[Presence]
	guard    Guard
	isSet    func(*model.Attendee) bool
	// Message fragments: "<Role> cannot <forbidden>", "<Role> must specify <missing>".
	forbidden string
	missing   string
}

const (
	req  = Required
	opt  = Allowed
	no   = Forbidden
	skip = Unchecked
)

var table = [fieldCount]fieldRule{
	FieldSquad: {
		name:      "squad",
		presence:  byRole[Presence]{req, no, no, no},
		isSet:     func(a *model.Attendee) bool { return a.Squad != nil },
		forbidden: "have a squad",
		missing:   "a squad",
	},
	FieldNeedSpeech: {
		name:      "needSpeech",
		presence:  byRole[Presence]{opt, skip, skip, opt},
		isSet:     func(a *model.Attendee) bool { return a.NeedSpeech != nil },
		forbidden: "request a stage speech",
		missing:   "whether a stage speech is needed",
	},
	FieldBirthDate: {
		name:      "birthDate",
		presence:  byRole[Presence]{no, req, no, no},
		isSet:     func(a *model.Attendee) bool { return a.BirthDate != nil },
		forbidden: "have a birth date",
		missing:   "a birth date",
	},
	FieldEventLocation: {
		name:      "eventLocation",
		presence:  byRole[Presence]{no, req, req, req},
		isSet:     func(a *model.Attendee) bool { return a.EventLocation != nil },
		forbidden: "specify event location",
		missing:   "event location",
	},
	FieldHasAllergies: {
		name:      "hasAllergies",
		presence:  byRole[Presence]{no, opt, opt, opt},
		guard:     GuardBanquet,
		isSet:     func(a *model.Attendee) bool { return a.HasAllergies != nil },
		forbidden: "specify allergy information",
		missing:   "allergy information",
	},
	FieldAllergies: {
		name:      "allergies",
		presence:  byRole[Presence]{no, opt, opt, opt},
		guard:     GuardBanquet | GuardHasAllergies,
		isSet:     func(a *model.Attendee) bool { return a.Allergies != nil },
		forbidden: "specify allergies",
		missing:   "allergies",
	},
	FieldFoodPreferences: {
		name:      "foodPreferences",
		presence:  byRole[Presence]{no, opt, opt, opt},
		guard:     GuardBanquet,
		isSet:     func(a *model.Attendee) bool { return a.FoodPreferences != nil },
		forbidden: "specify food preferences",
		missing:   "food preferences",
	},
	FieldWantBowling: {
		name:      "wantBowling",
		presence:  byRole[Presence]{no, opt, opt, opt},
		guard:     GuardBanquet,
		isSet:     func(a *model.Attendee) bool { return a.WantBowling != nil },
		forbidden: "specify bowling preferences",
		missing:   "bowling preferences",
	},
	FieldAlcoholPreferences: {
		name:      "alcoholPreferences",
		presence:  byRole[Presence]{no, no, opt, opt},
		guard:     GuardBanquet,
		isSet:     func(a *model.Attendee) bool { return a.AlcoholPreferences != nil },
		forbidden: "specify alcohol preferences",
		missing:   "alcohol preferences",
	},
	FieldHasCar: {
		name:      "hasCar",
		presence:  byRole[Presence]{no, no, opt, opt},
		isSet:     func(a *model.Attendee) bool { return a.HasCar != nil },
		forbidden: "specify car availability",
		missing:   "car availability",
	},
	FieldTableCompanions: {
		name:      "tableCompanions",
		presence:  byRole[Presence]{no, no, no, opt},
		guard:     GuardBanquet,
		isSet:     func(a *model.Attendee) bool { return a.TableCompanions != nil },
		forbidden: "specify table companions",
		missing:   "table companions",
	},
	FieldSpeechCompanions: {
		name:      "speechCompanions",
		presence:  byRole[Presence]{no, no, no, opt},
		guard:     GuardNeedSpeech,
		isSet:     func(a *model.Attendee) bool { return a.SpeechCompanions != nil },
		forbidden: "specify speech companions",
		missing:   "speech companions",
	},
	FieldWillPerform: {
		name:      "willPerform",
		presence:  byRole[Presence]{no, no, no, opt},
		guard:     GuardOfficialPart,
		isSet:     func(a *model.Attendee) bool { return a.WillPerform != nil },
		forbidden: "specify a performance",
		missing:   "whether they will perform",
	},
	FieldPerformanceCompanions: {
		name:      "performanceCompanions",
		presence:  byRole[Presence]{no, no, no, opt},
		guard:     GuardOfficialPart | GuardWillPerform,
		isSet:     func(a *model.Attendee) bool { return a.PerformanceCompanions != nil },
		forbidden: "specify performance companions",
		missing:   "performance companions",
	},
}

// Known reports whether r is one of the fixed roles.
func Known(r model.Role) bool {
	_, ok := roleLabels.of(r)
	return ok
}

// Label returns the English role name used in violation messages.
func Label(r model.Role) string {
	label, ok := roleLabels.of(r)
	if !ok {
		return string(r)
	}
	return label
}

// PresenceOf returns what role r says about field f. Unknown roles and
// fields yield Unchecked.
func PresenceOf(r model.Role, f Field) Presence {
	if f < 0 || f >= fieldCount {
		return Unchecked
	}
	p, _ := table[f].presence.of(r)
	return p
}

// Applies reports whether field f is part of role r's record at all.
func Applies(r model.Role, f Field) bool {
	p := PresenceOf(r, f)
	return p == Allowed || p == Required
}

// IsSet reports whether the attendee carries a value for f.
func IsSet(a *model.Attendee, f Field) bool {
	if f < 0 || f >= fieldCount {
		return false
	}
	return table[f].isSet(a)
}

// GuardOf returns the visibility guard of f.
func GuardOf(f Field) Guard {
	if f < 0 || f >= fieldCount {
		return 0
	}
	return table[f].guard
}

// Visible reports whether f should be shown for the attendee: the role
// must allow or require it and the field's guard must hold.
func Visible(a *model.Attendee, f Field) bool {
	return Applies(a.Role, f) && table[f].guard.holds(a)
}

// FieldSets is the outcome of evaluating the rule table against a record.
type FieldSets struct {
	Required  []Field
	Forbidden []Field
	Visible   []Field
}

// Evaluate maps a record's role and state to its field sets.
func Evaluate(a *model.Attendee) (FieldSets, error) {
	if !Known(a.Role) {
		return FieldSets{}, &model.InvalidEnumError{Kind: "role", Value: string(a.Role)}
	}
	var sets FieldSets
	for f := range fieldCount {
		switch PresenceOf(a.Role, f) {
		case Required:
			sets.Required = append(sets.Required, f)
		case Forbidden:
			sets.Forbidden = append(sets.Forbidden, f)
		}
		if Visible(a, f) {
			sets.Visible = append(sets.Visible, f)
		}
	}
	return sets, nil
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
