package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slices"

	"github.com/tendant/simple-invite/pkg/role"
)

// ProvisionerService idempotently ensures invited handles have local accounts
// holding the granted roles.
type ProvisionerService struct {
	repo AccountRepository
}

// NewProvisionerService creates a new account provisioner
func NewProvisionerService(repo AccountRepository) *ProvisionerService {
	return &ProvisionerService{repo: repo}
}

// Ensure creates an account for handle if none exists, or unions roleIDs into
// the existing account's role set. The reserved authenticated role is never
// granted explicitly; requests for it are skipped, not failed.
func (s *ProvisionerService) Ensure(ctx context.Context, handle, email string, roleIDs []string) (Account, error) {
	grant := grantableRoles(roleIDs)

	existing, err := s.repo.GetByHandle(ctx, handle)
	if err == nil {
		changed := false
		for _, roleID := range grant {
			if !slices.Contains(existing.Roles, roleID) {
				existing.Roles = append(existing.Roles, roleID)
				changed = true
			}
		}
		if existing.Identikey == "" {
			existing.Identikey = handle
			changed = true
		}
		if !changed {
			return existing, nil
		}
		slices.Sort(existing.Roles)

		updated, err := s.repo.Update(ctx, existing)
		if err != nil {
			return Account{}, fmt.Errorf("failed to update account %q: %w", handle, err)
		}
		slog.Info("Granted roles to existing account", "handle", handle, "roles", grant)
		return updated, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return Account{}, fmt.Errorf("failed to look up account %q: %w", handle, err)
	}

	hash, err := placeholderPasswordHash()
	if err != nil {
		return Account{}, fmt.Errorf("failed to generate placeholder password: %w", err)
	}

	created, err := s.repo.Create(ctx, CreateAccountParams{
		Handle:       handle,
		Email:        email,
		Roles:        grant,
		Enabled:      true,
		Identikey:    handle,
		PasswordHash: hash,
	})
	if err != nil {
		return Account{}, fmt.Errorf("failed to create account %q: %w", handle, err)
	}
	slog.Info("Provisioned new account", "handle", handle, "email", email, "roles", grant)
	return created, nil
}

// grantableRoles drops the reserved authenticated role and returns a sorted,
// deduplicated role set.
func grantableRoles(roleIDs []string) []string {
	grant := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		if id == role.AuthenticatedRoleID {
			continue
		}
		if !slices.Contains(grant, id) {
			grant = append(grant, id)
		}
	}
	slices.Sort(grant)
	return grant
}

// placeholderPasswordHash produces a hash of random bytes that no login
// attempt can ever match. Invited accounts authenticate through SSO only.
func placeholderPasswordHash() ([]byte, error) {
	random := make([]byte, 32)
	if _, err := rand.Read(random); err != nil {
		return nil, err
	}
	return bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(random)), bcrypt.DefaultCost)
}
