package model

import "fmt"

// ValidationError is returned when an input value is rejected before any
// network activity takes place.
type ValidationError struct {
	// Field names the rejected input (e.g. "mode").
	Field string

	// Value is the rejected value as given by the caller.
	Value string

	// Reason describes what a valid value looks like.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
