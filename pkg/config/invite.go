package config

// PersistenceTypes accepted by the repository factories.
var PersistenceTypes = []string{"postgres", "file", "memory"}

// InviteConfig holds the invite service's own settings: the email domain
// handles map into, the administrator contact, and how state is persisted.
type InviteConfig struct {
	EmailDomain      string `env:"INVITE_EMAIL_DOMAIN" env-default:"colorado.edu"`
	AdminEmail       string `env:"INVITE_ADMIN_EMAIL" env-default:"websupport@colorado.edu"`
	PersistenceType  string `env:"INVITE_PERSISTENCE_TYPE" env-default:"postgres"`
	DataDir          string `env:"INVITE_DATA_DIR" env-default:"./data"`
	MailConfirmation bool   `env:"INVITE_MAIL_CONFIRMATION" env-default:"true"`

	// SeedRoles holds "id:label" pairs that preload the role catalog when
	// persistence is file or memory; postgres reads the roles table instead.
	SeedRoles []string `env:"INVITE_SEED_ROLES"`

	// Schema capability flags, for deployments whose account store predates
	// the terms-of-service columns.
	TosAcceptanceField bool `env:"INVITE_TOS_ACCEPTANCE_FIELD" env-default:"true"`
	TosTimestampField  bool `env:"INVITE_TOS_TIMESTAMP_FIELD" env-default:"true"`
}

// Validate checks the invite configuration for values the service cannot
// start with.
func (c InviteConfig) Validate() error {
	errs := CollectErrors(
		RequireNonEmpty("INVITE_EMAIL_DOMAIN", c.EmailDomain),
		RequireValidEmail("INVITE_ADMIN_EMAIL", c.AdminEmail),
		RequireOneOf("INVITE_PERSISTENCE_TYPE", c.PersistenceType, PersistenceTypes),
	)
	if errs.HasErrors() {
		return errs
	}
	if _, err := ParseSeedRoles(c.SeedRoles); err != nil {
		return err
	}
	return nil
}
