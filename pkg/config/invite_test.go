package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInviteConfig() InviteConfig {
	return InviteConfig{
		EmailDomain:     "colorado.edu",
		AdminEmail:      "websupport@colorado.edu",
		PersistenceType: "postgres",
	}
}

func TestInviteConfigValidate(t *testing.T) {
	assert.NoError(t, validInviteConfig().Validate())
}

func TestInviteConfigValidateSeedRoles(t *testing.T) {
	cfg := validInviteConfig()
	cfg.SeedRoles = []string{"editor:Editor"}
	assert.NoError(t, cfg.Validate())

	cfg.SeedRoles = []string{":Editor"}
	err := cfg.Validate()
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "INVITE_SEED_ROLES", validationErr.Field)
}

func TestInviteConfigValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InviteConfig)
		field  string
	}{
		{
			name:   "missing domain",
			mutate: func(c *InviteConfig) { c.EmailDomain = "" },
			field:  "INVITE_EMAIL_DOMAIN",
		},
		{
			name:   "bad admin email",
			mutate: func(c *InviteConfig) { c.AdminEmail = "not-an-email" },
			field:  "INVITE_ADMIN_EMAIL",
		},
		{
			name:   "unknown persistence type",
			mutate: func(c *InviteConfig) { c.PersistenceType = "etcd" },
			field:  "INVITE_PERSISTENCE_TYPE",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validInviteConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			errs, ok := err.(ValidationErrors)
			require.True(t, ok)
			require.Len(t, errs, 1)
			assert.Equal(t, tc.field, errs[0].Field)
		})
	}
}
