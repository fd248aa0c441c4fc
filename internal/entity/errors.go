// internal/entity/errors.go
//
// Roster – Entities: validation failure taxonomy.
//
// Context
//   Setters never panic and never store a value that failed its rule.  They
//   return a *FieldError whose Reason tells callers what went wrong: the
//   value was absent (MissingData) or present but malformed (InvalidData).
//   Callers match on the reason with errors.Is against the two sentinels,
//   or pull the full record out with errors.As.
//
//------------------------------------------------------------------------------

package entity

import (
	"errors"
	"fmt"
)

// Reason enumerates why a field was rejected.
type Reason int

const (
	// MissingData means a required value was empty or absent.
	MissingData Reason = iota + 1
	// InvalidData means a value was present but failed its format or range
	// rule.
	InvalidData
)

func (r Reason) String() string {
	switch r {
	case MissingData:
		return "missing_data"
	case InvalidData:
		return "invalid_data"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is.
var (
	ErrMissingData = errors.New("missing data")
	ErrInvalidData = errors.New("invalid data")
)

// FieldError describes one rejected field.
type FieldError struct {
	Kind   string // "classroom", "course"
	Field  string // "capacity", "course_id", ...
	Reason Reason
	Value  string // raw input as received, empty for MissingData
	Err    error  // underlying parse or rule error, optional
}

func (e *FieldError) Error() string {
	switch e.Reason {
	case MissingData:
		return fmt.Sprintf("%s: %s is required", e.Kind, e.Field)
	case InvalidData:
		if e.Err != nil {
			return fmt.Sprintf("%s: invalid %s %q: %v", e.Kind, e.Field, e.Value, e.Err)
		}
		return fmt.Sprintf("%s: invalid %s %q", e.Kind, e.Field, e.Value)
	default:
		return fmt.Sprintf("%s: %s rejected", e.Kind, e.Field)
	}
}

// Is maps the reason onto the package sentinels.
func (e *FieldError) Is(target error) bool {
	switch target {
	case ErrMissingData:
		return e.Reason == MissingData
	case ErrInvalidData:
		return e.Reason == InvalidData
	}
	return false
}

func (e *FieldError) Unwrap() error { return e.Err }

// ReasonOf returns the Reason carried by err, or 0 when err is not a
// *FieldError.
func ReasonOf(err error) Reason {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return 0
}

func missing(kind, field string) error {
	return &FieldError{Kind: kind, Field: field, Reason: MissingData}
}

func invalid(kind, field, raw string, err error) error {
	return &FieldError{Kind: kind, Field: field, Reason: InvalidData, Value: raw, Err: err}
}
