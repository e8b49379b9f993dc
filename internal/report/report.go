// Package report projects attendee views into fixed tabular layouts for
// document export. The layouts are consumed downstream, so header text and
// column order must not change.
package report

import (
	"strconv"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
	"github.com/Shivanand-hulikatti/attendee-registry/internal/rules"
)

// Cell tokens.
const (
	Placeholder  = "-"
	Yes          = "Да"
	No           = "Нет"
	WarningYes   = "ДА"
	WarningNo    = "нет"
	NoData       = "Нет данных для отображения"
	NotSpecified = "Не указано"
	HasAllergies = "Есть аллергии"
)

// Orientation is the page orientation a renderer should use for a table.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// Scope selects which attendees and which layout a report covers.
// The zero value is the complete report over every role.
type Scope struct {
	role   model.Role
	byRole bool
}

// ScopeAll covers every attendee with the complete layout.
var ScopeAll = Scope{}

// ScopeRole covers a single role with its role-specific layout.
func ScopeRole(r model.Role) Scope {
	return Scope{role: r, byRole: true}
}

// Role returns the scoped role and false for ScopeAll.
func (s Scope) Role() (model.Role, bool) {
	return s.role, s.byRole
}

// Table is the projection handed to a document renderer. When NoData is set
// the renderer must print the placeholder paragraph instead of a table.
type Table struct {
	Headers []string
	Rows    [][]string
	NoData  string
}

// Empty reports whether the table is the no-data placeholder.
func (t Table) Empty() bool {
	return t.NoData != ""
}

// ProjectForExport selects the layout for scope and renders one row per view.
// Views are expected to already be filtered to the scope.
func ProjectForExport(views []model.AttendeeView, scope Scope) (Table, error) {
	cols, err := layoutFor(scope)
	if err != nil {
		return Table{}, err
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}
	if len(views) == 0 {
		return Table{Headers: headers, NoData: NoData}, nil
	}

	rows := make([][]string, len(views))
	for i := range views {
		v := &views[i]
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = c.cell(i, v)
		}
		rows[i] = row
	}
	return Table{Headers: headers, Rows: rows}, nil
}

// column is one report column. When field is set the cell falls back to the
// placeholder for records whose role the field does not apply to.
type column struct {
	header string
	field  *rules.Field
	value  func(index int, v *model.AttendeeView) string
}

func (c column) cell(index int, v *model.AttendeeView) string {
	if c.field != nil && !rules.Applies(v.Role, *c.field) {
		return Placeholder
	}
	return c.value(index, v)
}

func fieldColumn(header string, f rules.Field, value func(v *model.AttendeeView) string) column {
	return column{
		header: header,
		field:  &f,
		value:  func(_ int, v *model.AttendeeView) string { return value(v) },
	}
}

func plainColumn(header string, value func(v *model.AttendeeView) string) column {
	return column{
		header: header,
		value:  func(_ int, v *model.AttendeeView) string { return value(v) },
	}
}

func indexColumn() column {
	return column{
		header: "№",
		value:  func(i int, _ *model.AttendeeView) string { return strconv.Itoa(i + 1) },
	}
}

func boolText(b *bool) string {
	if b != nil && *b {
		return Yes
	}
	return No
}

func flagText(b bool) string {
	if b {
		return Yes
	}
	return No
}

func warningText(b bool) string {
	if b {
		return WarningYes
	}
	return WarningNo
}

func stringText(s *string) string {
	if s == nil {
		return Placeholder
	}
	return *s
}

func dateText(d *model.Date) string {
	if d == nil {
		return Placeholder
	}
	return d.String()
}

func allergyDetails(v *model.AttendeeView) string {
	if v.HasAllergies != nil && *v.HasAllergies {
		if v.Allergies != nil {
			return *v.Allergies
		}
		return HasAllergies
	}
	return No
}

// RoleName returns the report display name of a role.
func RoleName(r model.Role) string {
	switch r {
	case model.RoleGuest:
		return "Гость"
	case model.RoleNovice:
		return "Новичок"
	case model.RoleFighter:
		return "Боец"
	case model.RoleVeteran:
		return "Старик"
	}
	return string(r)
}

// LocationName returns the report display name of an event location.
func LocationName(l *model.EventLocation) string {
	if l == nil {
		return NotSpecified
	}
	switch *l {
	case model.LocationOfficialPart:
		return "Официальная часть"
	case model.LocationBanquet:
		return "Банкет"
	case model.LocationBoth:
		return "Официальная часть и банкет"
	}
	return string(*l)
}
