package parsec

import (
	"errors"
	"fmt"
)

// ParseError is the single failure kind produced by the combinators. It
// records where a parse attempt failed and why.
type ParseError struct {
	Pos     Pos
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Message)
}

// AsParseError extracts a *ParseError from err, if it holds one.
func AsParseError(err error) (*ParseError, bool) {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}

func failAt[R any](pos Pos, message string) (R, error) {
	var zero R
	return zero, &ParseError{Pos: pos, Message: message}
}
