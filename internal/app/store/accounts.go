package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"placerank/internal/app/account"
)

// Store is the pgx-backed implementation of AccountStore and PlaceStore.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps the given connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const accountColumns = `id, email, password_hash, name, role, bio, location, description, website, phone, created_at`

// CreateAccount inserts a new account row. Unique-email conflicts surface as
// the driver's unique violation, which callers detect with IsUniqueViolation.
func (s *Store) CreateAccount(ctx context.Context, a Account) (Account, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO accounts (id, email, password_hash, name, role, bio, location, description, website, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+accountColumns,
		a.ID, a.Email, a.PasswordHash, a.Name, a.Role.String(),
		a.Bio, a.Location, a.Description, a.Website, a.Phone,
	)
	return scanAccount(row)
}

// GetAccountByEmail fetches the account registered under the given email.
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (Account, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

// GetAccountByID fetches an account by its identifier.
func (s *Store) GetAccountByID(ctx context.Context, id string) (Account, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

// UpdateProfile applies a shallow partial update. COALESCE keeps columns whose
// pointer was nil, matching the merge semantics of the client session store.
func (s *Store) UpdateProfile(ctx context.Context, id string, update account.ProfileUpdate) (Account, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE accounts SET
			name        = COALESCE($2, name),
			bio         = COALESCE($3, bio),
			location    = COALESCE($4, location),
			description = COALESCE($5, description),
			website     = COALESCE($6, website),
			phone       = COALESCE($7, phone)
		WHERE id = $1
		RETURNING `+accountColumns,
		id, update.Name, update.Bio, update.Location,
		update.Description, update.Website, update.Phone,
	)
	return scanAccount(row)
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (Account, error) {
	var a Account
	var role string
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &role,
		&a.Bio, &a.Location, &a.Description, &a.Website, &a.Phone, &a.CreatedAt)
	if err != nil {
		return Account{}, mapNoRows(err)
	}

	parsed, err := account.ParseRole(role)
	if err != nil {
		return Account{}, err
	}
	a.Role = parsed

	return a, nil
}
