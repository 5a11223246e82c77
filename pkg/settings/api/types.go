package api

// RoleConfigDTO mirrors the per-role configuration on the wire.
type RoleConfigDTO struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Enabled     bool   `json:"enabled"`
	Default     bool   `json:"default"`
	Description string `json:"description,omitempty"`
}

// RoleOption is one role available for configuration, whether or not it is
// currently enabled for invites.
type RoleOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SettingsDTO is the invite configuration on the wire.
type SettingsDTO struct {
	Roles                map[string]RoleConfigDTO `json:"roles"`
	DefaultCustomMessage string                   `json:"default_custom_message"`
	InviteSubject        string                   `json:"invite_subject"`
	InviteTemplate       string                   `json:"invite_template"`
	ConfirmationSubject  string                   `json:"confirmation_subject"`
	ConfirmationTemplate string                   `json:"confirmation_template"`
}

// GetSettingsResponse is the body of GET /settings: the stored configuration
// plus the full role list the form offers for selection.
type GetSettingsResponse struct {
	Settings       SettingsDTO  `json:"settings"`
	AvailableRoles []RoleOption `json:"available_roles"`
}

// ErrorResponse is the JSON body for rejected requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
