package model

import (
	"fmt"
	"strings"
)

// ViolationKind distinguishes the two ways a record can break its role rules.
type ViolationKind int

const (
	// ViolationForbidden: a field outside the role's allowed set carries a value.
	ViolationForbidden ViolationKind = iota + 1
	// ViolationMissing: a field the role requires is unset.
	ViolationMissing
)

func (k ViolationKind) String() string {
	switch k {
	case ViolationForbidden:
		return "forbidden_field"
	case ViolationMissing:
		return "missing_required_field"
	}
	return "unknown"
}

// Violation is a single reason a candidate record fails validation.
type Violation struct {
	Kind    ViolationKind
	Role    Role
	Field   string
	Message string
}

// ValidationError carries every violation found in one validation pass,
// in a stable order.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the human-readable violation texts.
func (e *ValidationError) Messages() []string {
	out := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v.Message
	}
	return out
}

// InvalidEnumError reports an unrecognised role, location or squad token.
type InvalidEnumError struct {
	Kind  string
	Value string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Kind, e.Value)
}
