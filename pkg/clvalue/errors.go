package clvalue

import (
	"errors"
	"fmt"
)

// ErrMalformed is returned when serialized bytes or JSON cannot be read back.
var ErrMalformed = errors.New("malformed value")

// EncodeError is returned when a native value cannot be represented under
// its declared type. Values are never truncated or wrapped to make them fit.
type EncodeError struct {
	Type   Type
	Value  any
	Reason string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("cannot encode %T as %s: %s", e.Value, e.Type, e.Reason)
}

// DecodeMismatchError is returned when a value is read as a type other than
// the one it carries.
type DecodeMismatchError struct {
	Expected Type
	Got      Type
}

func (e *DecodeMismatchError) Error() string {
	return fmt.Sprintf("decode mismatch: expected %s, got %s", e.Expected, e.Got)
}

func encodeErr(t Type, v any, format string, args ...any) error {
	return &EncodeError{Type: t, Value: v, Reason: fmt.Sprintf(format, args...)}
}
