package config

import (
	"fmt"
	"strings"
)

// SeedRole is one role to preload into a file or memory role catalog, which
// have no migration path to fill the roles table.
type SeedRole struct {
	ID    string
	Label string
}

// ParseSeedRoles parses "id:label" pairs from a comma-separated environment
// value. The label may be omitted, in which case the id doubles as the label.
// Returns a ValidationError for entries with an empty id.
func ParseSeedRoles(values []string) ([]SeedRole, error) {
	roles := make([]SeedRole, 0, len(values))

	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}

		id, label, found := strings.Cut(trimmed, ":")
		id = strings.TrimSpace(id)
		label = strings.TrimSpace(label)
		if id == "" {
			return nil, &ValidationError{
				Field:   "INVITE_SEED_ROLES",
				Message: fmt.Sprintf("entry %q has no role id", value),
			}
		}
		if !found || label == "" {
			label = id
		}

		roles = append(roles, SeedRole{ID: id, Label: label})
	}

	return roles, nil
}
