package rules

import (
	"fmt"

	"github.com/Shivanand-hulikatti/attendee-registry/internal/model"
)

// Validate checks a candidate record against its role's rules.
//
// It returns nil when the record is acceptable, *model.InvalidEnumError when
// the role is unknown, and otherwise *model.ValidationError listing every
// violation: forbidden fields first, then missing required fields, each in
// field declaration order.
func Validate(a *model.Attendee) error {
	if !Known(a.Role) {
		return &model.InvalidEnumError{Kind: "role", Value: string(a.Role)}
	}

	var violations []model.Violation
	label := Label(a.Role)
	for f := range fieldCount {
		rule := table[f]
		if PresenceOf(a.Role, f) == Forbidden && rule.isSet(a) {
			violations = append(violations, model.Violation{
				Kind:    model.ViolationForbidden,
				Role:    a.Role,
				Field:   rule.name,
				Message: fmt.Sprintf("%s cannot %s", label, rule.forbidden),
			})
		}
	}
	violations = append(violations, MissingRequired(a)...)

	if len(violations) == 0 {
		return nil
	}
	return &model.ValidationError{Violations: violations}
}

// MissingRequired returns a violation for every required field of the
// record's role that is unset. It ignores forbidden fields, so it also
// serves as the read-time health check for stored records.
func MissingRequired(a *model.Attendee) []model.Violation {
	label := Label(a.Role)
	var violations []model.Violation
	for f := range fieldCount {
		rule := table[f]
		if PresenceOf(a.Role, f) == Required && !rule.isSet(a) {
			violations = append(violations, model.Violation{
				Kind:    model.ViolationMissing,
				Role:    a.Role,
				Field:   rule.name,
				Message: fmt.Sprintf("%s must specify %s", label, rule.missing),
			})
		}
	}
	return violations
}

// Complete reports whether every required field for the record's role is set.
// Records with an unknown role are never complete.
func Complete(a *model.Attendee) bool {
	return Known(a.Role) && len(MissingRequired(a)) == 0
}
