package role

import (
	"context"
	"log/slog"

	"github.com/tendant/simple-invite/pkg/settings"
)

// InvitableRole is one role offered on the invite form.
type InvitableRole struct {
	Label       string
	Default     bool
	Description string
}

// CatalogService exposes the roles known to the system and the subset an
// administrator has opened up for invites.
type CatalogService struct {
	repo            RoleRepository
	settingsService *settings.SettingsService
}

// NewCatalogService creates a new role catalog service
func NewCatalogService(repo RoleRepository, settingsService *settings.SettingsService) *CatalogService {
	return &CatalogService{
		repo:            repo,
		settingsService: settingsService,
	}
}

// ListAllRoles returns every role except the reserved anonymous role, in
// stable id order.
func (s *CatalogService) ListAllRoles(ctx context.Context) ([]Role, error) {
	roles, err := s.repo.FindRoles(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]Role, 0, len(roles))
	for _, r := range roles {
		if r.ID == AnonymousRoleID {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}

// ListInvitableRoles returns id -> InvitableRole for roles enabled in the
// persisted settings. Result keys are always a subset of ListAllRoles ids.
//
// An unavailable settings store yields an empty map, not an error: the invite
// form treats "no invitable roles" as the not-yet-configured state.
func (s *CatalogService) ListInvitableRoles(ctx context.Context) (map[string]InvitableRole, error) {
	invitable := make(map[string]InvitableRole)

	cfg, err := s.settingsService.GetSettings(ctx)
	if err != nil {
		slog.Warn("Settings unavailable, no roles are invitable", "error", err)
		return invitable, nil
	}

	all, err := s.ListAllRoles(ctx)
	if err != nil {
		return nil, err
	}

	for _, r := range all {
		rc, ok := cfg.Roles[r.ID]
		if !ok || !rc.Enabled {
			continue
		}
		invitable[r.ID] = InvitableRole{
			Label:       r.Label,
			Default:     rc.Default,
			Description: rc.Description,
		}
	}
	return invitable, nil
}
