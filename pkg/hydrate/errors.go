package hydrate

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownShape is returned when a shape name is not registered.
	ErrUnknownShape = errors.New("unknown shape")
	// ErrInvalidTarget is returned by Bind for a nil or non-pointer destination.
	ErrInvalidTarget = errors.New("bind target must be a non-nil pointer")
)

// ParseError reports a string input that is not valid JSON.
type ParseError struct {
	Offset int64 // byte offset the decoder stopped at
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse json at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
