package invite

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoHandles is returned when a batch contains no handles.
	ErrNoHandles = errors.New("at least one handle must be provided")
	// ErrNoRolesSelected is returned when a batch contains no roles.
	ErrNoRolesSelected = errors.New("at least one role must be selected")
)

// InvalidHandlesError rejects a whole batch: if any handle fails validation
// the submission is refused before any side effect.
type InvalidHandlesError struct {
	Handles []string
}

func (e *InvalidHandlesError) Error() string {
	return fmt.Sprintf("invalid handles: %s", strings.Join(e.Handles, ", "))
}
