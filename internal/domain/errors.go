package domain

import (
	"errors"
	"fmt"

	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a state item or dictionary entry doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrNotBound is returned when an operation needs a contract and none is bound
	ErrNotBound = errors.New("no contract hash set")

	// ErrUnsigned is returned when sending a deploy that carries no approvals
	ErrUnsigned = errors.New("deploy is not signed")

	// ErrNoSigningKey is returned by a signer that has no key configured
	ErrNoSigningKey = errors.New("no signing key configured")

	// ErrUnknownEntryPoint is returned for a call variant the builder doesn't know
	ErrUnknownEntryPoint = errors.New("unknown entry point")
)

// ValidationError reports a conflicting or malformed argument found before
// any encoding takes place.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UsageError reports an operation invoked before its preconditions hold,
// such as minting before a contract hash is set.
type UsageError struct {
	Op     string
	Reason string
	Err    error
}

func (e UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e UsageError) Unwrap() error {
	return e.Err
}

// DecodeMismatchError reports a stored value that does not have the expected
// type or whose ordinal is outside its enum.
type DecodeMismatchError struct {
	Item     string
	Expected string
	Got      string
	Err      error
}

func (e DecodeMismatchError) Error() string {
	return fmt.Sprintf("decode %s: expected %s, got %s", e.Item, e.Expected, e.Got)
}

func (e DecodeMismatchError) Unwrap() error {
	return e.Err
}

// WrapDecode attaches item to a codec type mismatch. Other errors pass through.
func WrapDecode(item string, err error) error {
	var mismatch *clvalue.DecodeMismatchError
	if errors.As(err, &mismatch) {
		return &DecodeMismatchError{
			Item:     item,
			Expected: mismatch.Expected.String(),
			Got:      mismatch.Got.String(),
			Err:      err,
		}
	}
	return err
}

// NotBound is the UsageError of op invoked without a bound contract.
func NotBound(op string) error {
	return &UsageError{Op: op, Reason: "contract hash is not set", Err: ErrNotBound}
}
