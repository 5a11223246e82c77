package account

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// InMemoryAccountRepository implements AccountRepository using in-memory storage
type InMemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]Account
}

// NewInMemoryAccountRepository creates a new in-memory account repository
func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{
		accounts: make(map[uuid.UUID]Account),
	}
}

// GetByHandle retrieves an account by its unique handle
func (r *InMemoryAccountRepository) GetByHandle(ctx context.Context, handle string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Handle == handle {
			return a, nil
		}
	}
	return Account{}, ErrAccountNotFound
}

// GetByID retrieves an account by id
func (r *InMemoryAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return a, nil
}

// Create creates a new account
func (r *InMemoryAccountRepository) Create(ctx context.Context, params CreateAccountParams) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	a := Account{
		ID:             uuid.New(),
		Handle:         params.Handle,
		Email:          params.Email,
		Roles:          slices.Clone(params.Roles),
		Enabled:        params.Enabled,
		Identikey:      params.Identikey,
		PasswordHash:   params.PasswordHash,
		CreatedAt:      now,
		LastModifiedAt: now,
	}
	r.accounts[a.ID] = a
	return a, nil
}

// Update persists account changes
func (r *InMemoryAccountRepository) Update(ctx context.Context, account Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[account.ID]
	if !ok {
		return Account{}, ErrAccountNotFound
	}

	account.Handle = stored.Handle
	account.CreatedAt = stored.CreatedAt
	account.LastModifiedAt = time.Now().UTC()
	account.Roles = slices.Clone(account.Roles)
	r.accounts[account.ID] = account
	return account, nil
}
