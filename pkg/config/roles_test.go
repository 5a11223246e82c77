package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeedRoles(t *testing.T) {
	roles, err := ParseSeedRoles([]string{"editor:Editor", " viewer : Site Viewer ", "", "manager"})
	require.NoError(t, err)

	require.Len(t, roles, 3)
	assert.Equal(t, SeedRole{ID: "editor", Label: "Editor"}, roles[0])
	assert.Equal(t, SeedRole{ID: "viewer", Label: "Site Viewer"}, roles[1])
	// Bare ids double as labels.
	assert.Equal(t, SeedRole{ID: "manager", Label: "manager"}, roles[2])
}

func TestParseSeedRolesEmpty(t *testing.T) {
	roles, err := ParseSeedRoles(nil)
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestParseSeedRolesMissingID(t *testing.T) {
	_, err := ParseSeedRoles([]string{":Editor"})
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "INVITE_SEED_ROLES", validationErr.Field)
}
