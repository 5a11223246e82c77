package settings

import (
	"errors"
	"fmt"
)

// ErrSettingsNotFound is returned by repositories when no settings have been
// persisted under either the canonical or the legacy key.
var ErrSettingsNotFound = errors.New("settings not found")

// ValidationError reports an invalid settings field before any write occurs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
