// Package dsl parses the compact field/relation mini-language accepted by
// `nebulis generate entity --fields`. A field group holds comma-separated
// units; each unit is either a field (`name:Type|rule rule=value`) or a
// relation (`hasMany->Comment`).
package dsl

import (
	"errors"
	"fmt"
)

// Sentinel errors for DSL parsing.
var (
	// ErrInvalidRelationType indicates a relation keyword other than hasOne, hasMany or belongsTo.
	ErrInvalidRelationType = errors.New("invalid relation type")

	// ErrInvalidRelationFormat indicates a relation unit that does not split into exactly two parts.
	ErrInvalidRelationFormat = errors.New("invalid relation format")

	// ErrInvalidFieldFormat indicates a field unit that does not split into name and type.
	ErrInvalidFieldFormat = errors.New("invalid field format")

	// ErrInvalidType indicates a type tag outside the closed set of ValidTypes.
	ErrInvalidType = errors.New("invalid type")

	// ErrUnknownRule indicates an unrecognized validation rule name.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrMissingRuleValue indicates a valued rule given without "=value".
	ErrMissingRuleValue = errors.New("validation rule requires a value")

	// ErrInvalidRuleValue indicates a length rule whose value is not an unsigned integer.
	ErrInvalidRuleValue = errors.New("invalid validation rule value")
)

// SyntaxError reports the offending token of a failed parse.
type SyntaxError struct {
	Token   string
	Hint    string
	Wrapped error // sentinel for errors.Is support
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%v: %s. %s", e.Wrapped, e.Token, e.Hint)
	}
	return fmt.Sprintf("%v: %s", e.Wrapped, e.Token)
}

// Unwrap returns the underlying sentinel error.
func (e *SyntaxError) Unwrap() error {
	return e.Wrapped
}

func syntaxErr(sentinel error, token, hint string) *SyntaxError {
	return &SyntaxError{Token: token, Hint: hint, Wrapped: sentinel}
}
