// Package errors provides sentinel errors and error types for the engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed position string.
	ErrInvalidFEN = errors.New("invalid position string")

	// ErrIllegalMove indicates a move that is not legal in the current position.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidMoveText indicates text that is not coordinate move notation.
	ErrInvalidMoveText = errors.New("invalid move text")

	// ErrUnknownVariant indicates a variant name that is not registered.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// PositionError describes a rejected position string, naming the field
// that failed to parse.
type PositionError struct {
	Err   error  // The underlying error
	Field string // Which field failed: "placement", "side", "castling", ...
	Value string // The offending text (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *PositionError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	if e.Value != "" {
		parts = append(parts, fmt.Sprintf("%q", e.Value))
	}
	context := strings.Join(parts, " ")

	switch {
	case e.Err != nil && context != "":
		return fmt.Sprintf("%v: %s", e.Err, context)
	case e.Err != nil:
		return e.Err.Error()
	case context != "":
		return context
	}
	return "invalid position"
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the PositionError wrapper.
func (e *PositionError) Unwrap() error {
	return e.Err
}

// MoveError reports a move the engine refused, with the text it was given
// and the position it was played in.
type MoveError struct {
	Err  error  // The underlying error
	Move string // The move text as received
	FEN  string // Position the move was tried in (if known)
}

// Error returns a formatted error message.
func (e *MoveError) Error() string {
	msg := fmt.Sprintf("move %q", e.Move)
	if e.FEN != "" {
		msg += fmt.Sprintf(" in %q", e.FEN)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
