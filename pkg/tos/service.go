package tos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-invite/pkg/account"
)

// ErrTosFieldUnavailable is returned when the deployment's account schema
// does not carry the acceptance fields.
var ErrTosFieldUnavailable = errors.New("tos acceptance field not available")

// SchemaCapabilities declares, once at startup, which optional fields the
// deployed account schema carries. Services branch on these flags instead of
// probing per call.
type SchemaCapabilities struct {
	AcceptanceField bool
	TimestampField  bool
}

// DefaultSchemaCapabilities matches the standard schema shipped in
// migrations/invite_db.sql.
func DefaultSchemaCapabilities() SchemaCapabilities {
	return SchemaCapabilities{AcceptanceField: true, TimestampField: true}
}

// TosService records Terms of Service acceptance on accounts.
type TosService struct {
	repo         account.AccountRepository
	capabilities SchemaCapabilities
	now          func() time.Time
}

// NewTosService creates a new TOS acceptance service
func NewTosService(repo account.AccountRepository, capabilities SchemaCapabilities) *TosService {
	return &TosService{
		repo:         repo,
		capabilities: capabilities,
		now:          time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *TosService) WithClock(now func() time.Time) *TosService {
	s.now = now
	return s
}

// AcceptTos marks the account as having accepted the Terms of Service and,
// when the schema carries the timestamp field, records the acceptance instant
// in UTC. Repeated calls re-set the same values.
func (s *TosService) AcceptTos(ctx context.Context, userID uuid.UUID) error {
	acct, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return err
		}
		return fmt.Errorf("failed to load account: %w", err)
	}

	if !s.capabilities.AcceptanceField {
		return ErrTosFieldUnavailable
	}

	acct.TosAccepted = true
	if s.capabilities.TimestampField {
		acceptedAt := s.now().UTC()
		acct.TosAcceptedAt = &acceptedAt
	}

	if _, err := s.repo.Update(ctx, acct); err != nil {
		return fmt.Errorf("failed to persist tos acceptance: %w", err)
	}

	slog.Info("Terms of Service accepted", "userId", userID)
	return nil
}
