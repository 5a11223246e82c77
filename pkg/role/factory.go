package role

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig contains configuration for creating a role repository
type RepositoryConfig struct {
	// Pool is required for PostgreSQL repositories
	Pool *pgxpool.Pool
	// DataDir is required for file-based repositories
	DataDir string
	// SeedRoles populates file and memory repositories, which have no
	// migration path to fill the catalog. Ignored for postgres, where the
	// roles table is the source of truth.
	SeedRoles []Role
}

// NewRoleRepository creates a new role repository based on the persistence type
func NewRoleRepository(persistenceType string, config RepositoryConfig) (RoleRepository, error) {
	switch persistenceType {
	case "postgres", "postgresql":
		if config.Pool == nil {
			return nil, fmt.Errorf("pool required for postgres repository")
		}
		return NewPostgresRoleRepository(config.Pool), nil
	case "file":
		if config.DataDir == "" {
			return nil, fmt.Errorf("dataDir required for file repository")
		}
		repo, err := NewFileRoleRepository(config.DataDir)
		if err != nil {
			return nil, err
		}
		for _, seed := range config.SeedRoles {
			if err := repo.AddRole(seed); err != nil {
				return nil, fmt.Errorf("failed to seed role %q: %w", seed.ID, err)
			}
		}
		return repo, nil
	case "memory":
		repo := NewInMemoryRoleRepository()
		for _, seed := range config.SeedRoles {
			repo.AddRole(seed)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported persistence type: %s (supported: postgres, file, memory)", persistenceType)
	}
}
