package tag

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTag     = errors.New("unknown tag")
	ErrModeNotAllowed = errors.New("search mode not allowed for tag")
	ErrInvalidRegex   = errors.New("invalid regular expression")
	ErrInvalidYear    = errors.New("year is not an integer")
)

// OperandError reports an operand that could not be compiled into a matcher.
type OperandError struct {
	Operand string
	Err     error
	Cause   error
}

func (e *OperandError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v %q: %v", e.Err, e.Operand, e.Cause)
	}
	return fmt.Sprintf("%v %q", e.Err, e.Operand)
}

func (e *OperandError) Unwrap() error { return e.Err }

// ResolveError reports why a tag match could not be resolved.
type ResolveError struct {
	Tag  string
	Mode SearchMode
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s%s: %v", e.Mode.Prefix(), e.Tag, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }
