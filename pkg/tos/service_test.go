package tos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-invite/pkg/account"
)

func createAccount(t *testing.T, repo account.AccountRepository) account.Account {
	a, err := repo.Create(context.Background(), account.CreateAccountParams{
		Handle:  "jdoe",
		Email:   "jdoe@example.edu",
		Roles:   []string{"editor"},
		Enabled: true,
	})
	require.NoError(t, err)
	return a
}

func TestAcceptTos(t *testing.T) {
	repo := account.NewInMemoryAccountRepository()
	a := createAccount(t, repo)
	svc := NewTosService(repo, DefaultSchemaCapabilities())
	ctx := context.Background()

	before := time.Now().UTC()
	require.NoError(t, svc.AcceptTos(ctx, a.ID))

	stored, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, stored.TosAccepted)
	require.NotNil(t, stored.TosAcceptedAt)
	assert.WithinDuration(t, before, *stored.TosAcceptedAt, 5*time.Second)
	assert.Equal(t, time.UTC, stored.TosAcceptedAt.Location())
}

func TestAcceptTosIdempotent(t *testing.T) {
	repo := account.NewInMemoryAccountRepository()
	a := createAccount(t, repo)

	fixed := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTosService(repo, DefaultSchemaCapabilities()).WithClock(func() time.Time { return fixed })
	ctx := context.Background()

	require.NoError(t, svc.AcceptTos(ctx, a.ID))
	require.NoError(t, svc.AcceptTos(ctx, a.ID))

	stored, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, stored.TosAccepted)
	assert.Equal(t, fixed, *stored.TosAcceptedAt)
}

func TestAcceptTosMissingAccount(t *testing.T) {
	repo := account.NewInMemoryAccountRepository()
	svc := NewTosService(repo, DefaultSchemaCapabilities())

	err := svc.AcceptTos(context.Background(), uuid.New())
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestAcceptTosFieldUnavailable(t *testing.T) {
	repo := account.NewInMemoryAccountRepository()
	a := createAccount(t, repo)
	svc := NewTosService(repo, SchemaCapabilities{AcceptanceField: false})

	err := svc.AcceptTos(context.Background(), a.ID)
	assert.ErrorIs(t, err, ErrTosFieldUnavailable)
}

func TestAcceptTosWithoutTimestampField(t *testing.T) {
	repo := account.NewInMemoryAccountRepository()
	a := createAccount(t, repo)
	svc := NewTosService(repo, SchemaCapabilities{AcceptanceField: true, TimestampField: false})
	ctx := context.Background()

	require.NoError(t, svc.AcceptTos(ctx, a.ID))

	stored, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, stored.TosAccepted)
	assert.Nil(t, stored.TosAcceptedAt)
}
