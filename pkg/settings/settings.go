package settings

// Storage keys for the persisted invite settings. The legacy key comes from
// an older revision of the module and is read, never written.
const (
	ConfigKey       = "ucb_user_invite.settings"
	LegacyConfigKey = "ucb_user_invite.configuration"
)

// RoleConfig describes one invitable role as configured by an administrator.
type RoleConfig struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Enabled     bool   `json:"enabled"`
	Default     bool   `json:"default"`
	Description string `json:"description"`
}

// Settings holds the complete invite configuration.
type Settings struct {
	Roles                map[string]RoleConfig `json:"roles"`
	DefaultCustomMessage string                `json:"default_custom_message"`
	InviteSubject        string                `json:"invite_subject"`
	InviteTemplate       string                `json:"invite_template"`
	ConfirmationSubject  string                `json:"confirmation_subject"`
	ConfirmationTemplate string                `json:"confirmation_template"`
}

// NewSettings returns empty settings with an initialized role map, the state
// of a fresh install before any configuration has been saved.
func NewSettings() Settings {
	return Settings{Roles: make(map[string]RoleConfig)}
}

// EnabledRoles returns the subset of roles with Enabled set.
func (s Settings) EnabledRoles() map[string]RoleConfig {
	enabled := make(map[string]RoleConfig)
	for id, rc := range s.Roles {
		if rc.Enabled {
			enabled[id] = rc
		}
	}
	return enabled
}

// DefaultRoleID returns the id of the role marked as default, or "".
func (s Settings) DefaultRoleID() string {
	for id, rc := range s.Roles {
		if rc.Default {
			return id
		}
	}
	return ""
}

// legacySettings is the shape persisted by the older single-role revision
// under LegacyConfigKey.
type legacySettings struct {
	Roles                map[string]string `json:"roles"`
	DefaultRole          string            `json:"default_role"`
	DefaultCustomMessage string            `json:"default_custom_message"`
	InviteSubject        string            `json:"invite_subject"`
	InviteTemplate       string            `json:"invite_template"`
	ConfirmationSubject  string            `json:"confirmation_subject"`
	ConfirmationTemplate string            `json:"confirmation_template"`
}

// toSettings converts the legacy shape to the canonical one. Every role
// present in the legacy role map was invitable, so all convert as enabled.
func (l legacySettings) toSettings() Settings {
	s := Settings{
		Roles:                make(map[string]RoleConfig, len(l.Roles)),
		DefaultCustomMessage: l.DefaultCustomMessage,
		InviteSubject:        l.InviteSubject,
		InviteTemplate:       l.InviteTemplate,
		ConfirmationSubject:  l.ConfirmationSubject,
		ConfirmationTemplate: l.ConfirmationTemplate,
	}
	for id, label := range l.Roles {
		s.Roles[id] = RoleConfig{
			ID:      id,
			Label:   label,
			Enabled: true,
			Default: id == l.DefaultRole,
		}
	}
	return s
}
