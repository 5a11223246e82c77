package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// SettingsService provides read and validated-write access to the invite
// configuration.
type SettingsService struct {
	repo SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// GetSettings returns the persisted settings. A missing settings object is
// not an error: a fresh install reports empty settings with no roles.
func (s *SettingsService) GetSettings(ctx context.Context) (Settings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrSettingsNotFound) {
			return NewSettings(), nil
		}
		return Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return stored, nil
}

// UpdateSettings validates and persists a full settings replacement. On a
// validation failure nothing is written.
func (s *SettingsService) UpdateSettings(ctx context.Context, settings Settings) error {
	if err := Validate(settings); err != nil {
		return err
	}

	if err := s.repo.Put(ctx, settings); err != nil {
		slog.Error("Failed to persist settings", "error", err)
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}

// Validate checks a settings object against the rules the settings form
// enforces: role entries must be well formed, at least one role enabled,
// exactly one default role which must be among the enabled ones, and both
// message templates present.
func Validate(settings Settings) error {
	for id, rc := range settings.Roles {
		if rc.ID == "" || rc.ID != id {
			return &ValidationError{Field: "roles", Message: fmt.Sprintf("role entry %q has a mismatched id", id)}
		}
		if rc.Label == "" {
			return &ValidationError{Field: "roles", Message: fmt.Sprintf("role %q has no label", id)}
		}
	}

	if len(settings.EnabledRoles()) == 0 {
		return &ValidationError{Field: "roles", Message: "at least one role must be enabled for invites"}
	}

	var defaults []RoleConfig
	for _, rc := range settings.Roles {
		if rc.Default {
			defaults = append(defaults, rc)
		}
	}
	switch {
	case len(defaults) == 0:
		return &ValidationError{Field: "default_role", Message: "a default role is required"}
	case len(defaults) > 1:
		return &ValidationError{Field: "default_role", Message: "only one role may be the default"}
	case !defaults[0].Enabled:
		return &ValidationError{Field: "default_role", Message: "default role can only be one of the roles selected to invite"}
	}

	if settings.InviteTemplate == "" {
		return &ValidationError{Field: "invite_template", Message: "invitation email template is required"}
	}
	if settings.ConfirmationTemplate == "" {
		return &ValidationError{Field: "confirmation_template", Message: "confirmation email template is required"}
	}

	return nil
}
