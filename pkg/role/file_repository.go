package role

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/exp/slices"
)

const rolesFileName = "roles.json"

// FileRoleRepository implements RoleRepository using file-based storage
type FileRoleRepository struct {
	dataDir string
	roles   map[string]Role
	mutex   sync.RWMutex
}

// roleData represents the structure of data stored in the JSON file
type roleData struct {
	Roles []Role `json:"roles"`
}

// NewFileRoleRepository creates a new file-based role repository
func NewFileRoleRepository(dataDir string) (*FileRoleRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	repo := &FileRoleRepository{
		dataDir: dataDir,
		roles:   make(map[string]Role),
	}

	if err := repo.load(); err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}

	return repo, nil
}

// AddRole adds or replaces a role and persists the catalog.
func (r *FileRoleRepository) AddRole(role Role) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	previous, existed := r.roles[role.ID]
	r.roles[role.ID] = role
	if err := r.save(); err != nil {
		if existed {
			r.roles[role.ID] = previous
		} else {
			delete(r.roles, role.ID)
		}
		return fmt.Errorf("failed to save roles: %w", err)
	}
	return nil
}

// FindRoles returns all roles in id order
func (r *FileRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	roles := make([]Role, 0, len(r.roles))
	for _, role := range r.roles {
		roles = append(roles, role)
	}
	slices.SortFunc(roles, func(a, b Role) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return roles, nil
}

// GetRole retrieves a role by id
func (r *FileRoleRepository) GetRole(ctx context.Context, id string) (Role, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	role, ok := r.roles[id]
	if !ok {
		return Role{}, ErrRoleNotFound
	}
	return role, nil
}

func (r *FileRoleRepository) filePath() string {
	return filepath.Join(r.dataDir, rolesFileName)
}

func (r *FileRoleRepository) load() error {
	data, err := os.ReadFile(r.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var stored roleData
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("failed to parse roles file: %w", err)
	}
	for _, role := range stored.Roles {
		r.roles[role.ID] = role
	}
	return nil
}

func (r *FileRoleRepository) save() error {
	stored := roleData{Roles: make([]Role, 0, len(r.roles))}
	for _, role := range r.roles {
		stored.Roles = append(stored.Roles, role)
	}
	slices.SortFunc(stored.Roles, func(a, b Role) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.filePath(), data, 0644)
}
