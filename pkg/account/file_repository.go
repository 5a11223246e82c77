package account

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

const accountsFileName = "accounts.json"

// FileAccountRepository implements AccountRepository using file-based storage
type FileAccountRepository struct {
	dataDir  string
	accounts map[uuid.UUID]Account
	mutex    sync.RWMutex
}

// accountData represents the structure of data stored in the JSON file
type accountData struct {
	Accounts []Account `json:"accounts"`
}

// NewFileAccountRepository creates a new file-based account repository
func NewFileAccountRepository(dataDir string) (*FileAccountRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	repo := &FileAccountRepository{
		dataDir:  dataDir,
		accounts: make(map[uuid.UUID]Account),
	}

	if err := repo.load(); err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	return repo, nil
}

// GetByHandle retrieves an account by its unique handle
func (r *FileAccountRepository) GetByHandle(ctx context.Context, handle string) (Account, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, a := range r.accounts {
		if a.Handle == handle {
			return a, nil
		}
	}
	return Account{}, ErrAccountNotFound
}

// GetByID retrieves an account by id
func (r *FileAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (Account, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return a, nil
}

// Create creates a new account
func (r *FileAccountRepository) Create(ctx context.Context, params CreateAccountParams) (Account, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

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

	if err := r.save(); err != nil {
		delete(r.accounts, a.ID)
		return Account{}, err
	}
	return a, nil
}

// Update persists account changes
func (r *FileAccountRepository) Update(ctx context.Context, account Account) (Account, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored, ok := r.accounts[account.ID]
	if !ok {
		return Account{}, ErrAccountNotFound
	}

	account.Handle = stored.Handle
	account.CreatedAt = stored.CreatedAt
	account.LastModifiedAt = time.Now().UTC()
	account.Roles = slices.Clone(account.Roles)
	r.accounts[account.ID] = account

	if err := r.save(); err != nil {
		r.accounts[account.ID] = stored
		return Account{}, err
	}
	return account, nil
}

func (r *FileAccountRepository) filePath() string {
	return filepath.Join(r.dataDir, accountsFileName)
}

func (r *FileAccountRepository) load() error {
	data, err := os.ReadFile(r.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var stored accountData
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}
	for _, a := range stored.Accounts {
		r.accounts[a.ID] = a
	}
	return nil
}

func (r *FileAccountRepository) save() error {
	stored := accountData{Accounts: make([]Account, 0, len(r.accounts))}
	for _, a := range r.accounts {
		stored.Accounts = append(stored.Accounts, a)
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.filePath(), data, 0644)
}
