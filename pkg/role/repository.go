package role

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Reserved role ids of the underlying identity system.
const (
	// AnonymousRoleID is never listed nor grantable.
	AnonymousRoleID = "anonymous"
	// AuthenticatedRoleID is implicitly held by every account; granting it
	// explicitly is an error in the identity system and is skipped.
	AuthenticatedRoleID = "authenticated"
)

var ErrRoleNotFound = errors.New("role not found")

// Role is a named permission grouping grantable to an account.
type Role struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// RoleRepository defines the interface for role lookups.
type RoleRepository interface {
	FindRoles(ctx context.Context) ([]Role, error)
	GetRole(ctx context.Context, id string) (Role, error)
}

// PostgresRoleRepository implements RoleRepository using PostgreSQL
type PostgresRoleRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRoleRepository creates a new PostgreSQL-based role repository
func NewPostgresRoleRepository(db *pgxpool.Pool) *PostgresRoleRepository {
	return &PostgresRoleRepository{db: db}
}

// FindRoles returns all roles
func (r *PostgresRoleRepository) FindRoles(ctx context.Context) ([]Role, error) {
	query := `
		SELECT id, label
		FROM roles
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Label); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetRole retrieves a role by id
func (r *PostgresRoleRepository) GetRole(ctx context.Context, id string) (Role, error) {
	query := `
		SELECT id, label
		FROM roles
		WHERE id = $1
	`

	var role Role
	err := r.db.QueryRow(ctx, query, id).Scan(&role.ID, &role.Label)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		return Role{}, err
	}
	return role, nil
}
