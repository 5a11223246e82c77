package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() Settings {
	return Settings{
		Roles: map[string]RoleConfig{
			"editor": {ID: "editor", Label: "Editor", Enabled: true, Default: true, Description: "Can edit content"},
			"viewer": {ID: "viewer", Label: "Viewer", Enabled: true},
		},
		DefaultCustomMessage: "Welcome aboard!",
		InviteSubject:        "You have been invited",
		InviteTemplate:       "Hello, you have been invited as {{.RoleLabels}}.",
		ConfirmationSubject:  "Invites sent",
		ConfirmationTemplate: "Invites were sent to {{.Handles}}.",
	}
}

func TestGetSettingsEmptyOnFreshInstall(t *testing.T) {
	svc := NewSettingsService(NewInMemorySettingsRepository())

	s, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, s.Roles)
	assert.Empty(t, s.Roles)
}

func TestUpdateAndGetSettings(t *testing.T) {
	svc := NewSettingsService(NewInMemorySettingsRepository())
	ctx := context.Background()

	err := svc.UpdateSettings(ctx, validSettings())
	require.NoError(t, err)

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "editor", got.DefaultRoleID())
	assert.Len(t, got.EnabledRoles(), 2)
	assert.Equal(t, "Welcome aboard!", got.DefaultCustomMessage)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		field  string
	}{
		{
			name:   "valid",
			mutate: func(s *Settings) {},
		},
		{
			name: "no enabled roles",
			mutate: func(s *Settings) {
				for id, rc := range s.Roles {
					rc.Enabled = false
					s.Roles[id] = rc
				}
			},
			field: "roles",
		},
		{
			name: "no default role",
			mutate: func(s *Settings) {
				rc := s.Roles["editor"]
				rc.Default = false
				s.Roles["editor"] = rc
			},
			field: "default_role",
		},
		{
			name: "two default roles",
			mutate: func(s *Settings) {
				rc := s.Roles["viewer"]
				rc.Default = true
				s.Roles["viewer"] = rc
			},
			field: "default_role",
		},
		{
			name: "default role not enabled",
			mutate: func(s *Settings) {
				rc := s.Roles["editor"]
				rc.Enabled = false
				s.Roles["editor"] = rc
			},
			field: "default_role",
		},
		{
			name: "mismatched role id",
			mutate: func(s *Settings) {
				s.Roles["other"] = RoleConfig{ID: "editor", Label: "Editor"}
			},
			field: "roles",
		},
		{
			name:   "missing invite template",
			mutate: func(s *Settings) { s.InviteTemplate = "" },
			field:  "invite_template",
		},
		{
			name:   "missing confirmation template",
			mutate: func(s *Settings) { s.ConfirmationTemplate = "" },
			field:  "confirmation_template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(&s)

			err := Validate(s)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestUpdateSettingsRejectsInvalidWithoutWriting(t *testing.T) {
	repo := NewInMemorySettingsRepository()
	svc := NewSettingsService(repo)
	ctx := context.Background()

	bad := validSettings()
	bad.InviteTemplate = ""

	err := svc.UpdateSettings(ctx, bad)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrSettingsNotFound)
}
