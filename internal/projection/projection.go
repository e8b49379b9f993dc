// Package projection derives the read-side view of an attendee. All flags are
// computed on every call from the stored record and the evaluation date;
// nothing is cached on the record.
package projection

import (
	"time"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/rules"
)

// DrinkingAge is the minimum age in whole years for alcohol at the banquet.
const DrinkingAge = 18

// Projector turns stored attendees into views. The clock supplies the
// evaluation date for age checks.
type Projector struct {
	now func() time.Time
}

// New returns a Projector. A nil clock means time.Now.
func New(now func() time.Time) *Projector {
	if now == nil {
		now = time.Now
	}
	return &Projector{now: now}
}

// Project builds the view of a single attendee.
func (p *Projector) Project(a model.Attendee) model.AttendeeView {
	return Project(a, p.now())
}

// ProjectAll builds views for a list of attendees against one evaluation date.
func (p *Projector) ProjectAll(attendees []model.Attendee) []model.AttendeeView {
	today := p.now()
	views := make([]model.AttendeeView, len(attendees))
	for i, a := range attendees {
		views[i] = Project(a, today)
	}
	return views
}

// Project builds the view of a at the given evaluation instant.
func Project(a model.Attendee, at time.Time) model.AttendeeView {
	v := model.AttendeeView{
		Attendee:              a,
		AlcoholAllowed:        AlcoholAllowed(a.BirthDate, at),
		AttendingBanquet:      a.AttendingBanquet(),
		AttendingOfficialPart: a.AttendingOfficialPart(),
		Valid:                 rules.Complete(&a),
	}
	if a.Squad != nil {
		name := a.Squad.DisplayName()
		v.SquadDisplayName = &name
	}
	v.ShowAlcoholWarning = a.Role == model.RoleNovice && v.AttendingBanquet && !v.AlcoholAllowed
	return v
}

// AlcoholAllowed reports whether someone born on birth is of drinking age on
// the calendar date of at. An unknown birth date is treated as allowed.
func AlcoholAllowed(birth *model.Date, at time.Time) bool {
	if birth == nil {
		return true
	}
	return AgeInYears(*birth, at) >= DrinkingAge
}

// AgeInYears counts whole years between birth and the calendar date of at.
// Someone born on 29 February turns a year older on 1 March in common years.
func AgeInYears(birth model.Date, at time.Time) int {
	y, m, d := at.Date()
	by, bm, bd := birth.Date()
	age := y - by
	if m < bm || (m == bm && d < bd) {
		age--
	}
	return age
}
