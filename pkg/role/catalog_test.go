package role

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-invite/pkg/settings"
)

func seededRepo() *InMemoryRoleRepository {
	repo := NewInMemoryRoleRepository()
	repo.AddRole(Role{ID: AnonymousRoleID, Label: "Anonymous user"})
	repo.AddRole(Role{ID: AuthenticatedRoleID, Label: "Authenticated user"})
	repo.AddRole(Role{ID: "editor", Label: "Editor"})
	repo.AddRole(Role{ID: "viewer", Label: "Viewer"})
	return repo
}

func TestListAllRolesExcludesAnonymous(t *testing.T) {
	svc := NewCatalogService(seededRepo(), settings.NewSettingsService(settings.NewInMemorySettingsRepository()))

	roles, err := svc.ListAllRoles(context.Background())
	require.NoError(t, err)

	ids := make([]string, len(roles))
	for i, r := range roles {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{AuthenticatedRoleID, "editor", "viewer"}, ids)
}

func TestListInvitableRoles(t *testing.T) {
	settingsRepo := settings.NewInMemorySettingsRepository()
	settingsService := settings.NewSettingsService(settingsRepo)
	ctx := context.Background()

	require.NoError(t, settingsRepo.Put(ctx, settings.Settings{
		Roles: map[string]settings.RoleConfig{
			"editor":  {ID: "editor", Label: "Editor", Enabled: true, Default: true, Description: "Can edit content"},
			"viewer":  {ID: "viewer", Label: "Viewer", Enabled: false},
			"retired": {ID: "retired", Label: "Retired", Enabled: true},
		},
	}))

	svc := NewCatalogService(seededRepo(), settingsService)

	invitable, err := svc.ListInvitableRoles(ctx)
	require.NoError(t, err)

	// Only enabled roles that still exist in the role repository appear:
	// "viewer" is disabled and "retired" is unknown to the repository.
	require.Len(t, invitable, 1)
	editor := invitable["editor"]
	assert.Equal(t, "Editor", editor.Label)
	assert.True(t, editor.Default)
	assert.Equal(t, "Can edit content", editor.Description)
}

func TestListInvitableRolesEmptyWhenUnconfigured(t *testing.T) {
	svc := NewCatalogService(seededRepo(), settings.NewSettingsService(settings.NewInMemorySettingsRepository()))

	invitable, err := svc.ListInvitableRoles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, invitable)
}

// failingSettingsRepo simulates an unavailable settings store.
type failingSettingsRepo struct{}

func (failingSettingsRepo) Get(ctx context.Context) (settings.Settings, error) {
	return settings.Settings{}, errors.New("settings store unavailable")
}

func (failingSettingsRepo) Put(ctx context.Context, s settings.Settings) error {
	return errors.New("settings store unavailable")
}

func TestListInvitableRolesEmptyWhenStoreUnavailable(t *testing.T) {
	svc := NewCatalogService(seededRepo(), settings.NewSettingsService(failingSettingsRepo{}))

	invitable, err := svc.ListInvitableRoles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, invitable)
}
