package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAccountNotFound = errors.New("account not found")

// Account is a local user account provisioned through an invite. Accounts
// authenticate only through the institutional single-sign-on path; the stored
// password hash is a random placeholder that can never match a login attempt.
type Account struct {
	ID             uuid.UUID
	Handle         string
	Email          string
	Roles          []string
	Enabled        bool
	Identikey      string
	PasswordHash   []byte
	TosAccepted    bool
	TosAcceptedAt  *time.Time
	CreatedAt      time.Time
	LastModifiedAt time.Time
}

// CreateAccountParams represents parameters for creating an account
type CreateAccountParams struct {
	Handle       string
	Email        string
	Roles        []string
	Enabled      bool
	Identikey    string
	PasswordHash []byte
}

// AccountRepository defines the interface for account storage operations.
// GetByHandle relies on handle uniqueness: zero or one match.
type AccountRepository interface {
	GetByHandle(ctx context.Context, handle string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	Create(ctx context.Context, params CreateAccountParams) (Account, error)
	Update(ctx context.Context, account Account) (Account, error)
}

// PostgresAccountRepository implements AccountRepository using PostgreSQL
type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

// NewPostgresAccountRepository creates a new PostgreSQL-based account repository
func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

const accountColumns = `
	a.id, a.handle, a.email, a.enabled, a.identikey, a.password_hash,
	a.tos_accepted, a.tos_accepted_at, a.created_at, a.last_modified_at,
	COALESCE(array_agg(ar.role_id ORDER BY ar.role_id) FILTER (WHERE ar.role_id IS NOT NULL), '{}')
`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	err := row.Scan(
		&a.ID,
		&a.Handle,
		&a.Email,
		&a.Enabled,
		&a.Identikey,
		&a.PasswordHash,
		&a.TosAccepted,
		&a.TosAcceptedAt,
		&a.CreatedAt,
		&a.LastModifiedAt,
		&a.Roles,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	return a, nil
}

// GetByHandle retrieves an account by its unique handle
func (r *PostgresAccountRepository) GetByHandle(ctx context.Context, handle string) (Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts a
		LEFT JOIN account_roles ar ON ar.account_id = a.id
		WHERE a.handle = $1
		GROUP BY a.id
	`

	return scanAccount(r.db.QueryRow(ctx, query, handle))
}

// GetByID retrieves an account by id
func (r *PostgresAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts a
		LEFT JOIN account_roles ar ON ar.account_id = a.id
		WHERE a.id = $1
		GROUP BY a.id
	`

	return scanAccount(r.db.QueryRow(ctx, query, id))
}

// Create creates a new account with its role assignments
func (r *PostgresAccountRepository) Create(ctx context.Context, params CreateAccountParams) (Account, error) {
	query := `
		INSERT INTO accounts (handle, email, enabled, identikey, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, params.Handle, params.Email, params.Enabled, params.Identikey, params.PasswordHash).Scan(&id)
	if err != nil {
		return Account{}, err
	}

	if err := r.replaceRoles(ctx, id, params.Roles); err != nil {
		return Account{}, err
	}

	return r.GetByID(ctx, id)
}

// Update persists account field and role changes
func (r *PostgresAccountRepository) Update(ctx context.Context, account Account) (Account, error) {
	query := `
		UPDATE accounts
		SET email = $2, enabled = $3, identikey = $4,
		    tos_accepted = $5, tos_accepted_at = $6,
		    last_modified_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, account.ID, account.Email, account.Enabled,
		account.Identikey, account.TosAccepted, account.TosAcceptedAt)
	if err != nil {
		return Account{}, err
	}
	if tag.RowsAffected() == 0 {
		return Account{}, ErrAccountNotFound
	}

	if err := r.replaceRoles(ctx, account.ID, account.Roles); err != nil {
		return Account{}, err
	}

	return r.GetByID(ctx, account.ID)
}

func (r *PostgresAccountRepository) replaceRoles(ctx context.Context, id uuid.UUID, roles []string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM account_roles WHERE account_id = $1`, id); err != nil {
		return err
	}
	for _, roleID := range roles {
		if _, err := r.db.Exec(ctx,
			`INSERT INTO account_roles (account_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			id, roleID); err != nil {
			return err
		}
	}
	return nil
}
