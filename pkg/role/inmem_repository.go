package role

import (
	"context"
	"sync"

	"golang.org/x/exp/slices"
)

// InMemoryRoleRepository implements RoleRepository using in-memory storage
type InMemoryRoleRepository struct {
	mu    sync.RWMutex
	roles map[string]Role
}

// NewInMemoryRoleRepository creates a new in-memory role repository
func NewInMemoryRoleRepository() *InMemoryRoleRepository {
	return &InMemoryRoleRepository{
		roles: make(map[string]Role),
	}
}

// AddRole seeds a role, primarily for tests and bootstrap.
func (r *InMemoryRoleRepository) AddRole(role Role) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.roles[role.ID] = role
}

// FindRoles returns all roles in id order
func (r *InMemoryRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

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
func (r *InMemoryRoleRepository) GetRole(ctx context.Context, id string) (Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.roles[id]
	if !ok {
		return Role{}, ErrRoleNotFound
	}
	return role, nil
}
