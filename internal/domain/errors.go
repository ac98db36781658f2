package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by local lookups that miss. Deletes of absent keys
// are silent; updates of absent keys surface this error.
var ErrNotFound = errors.New("not found")

// ValidationError reports a remote field that could not be normalized into
// the local article shape.
type ValidationError struct {
	Field string
	Value any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for field %s", fmt.Sprint(e.Value), e.Field)
}
