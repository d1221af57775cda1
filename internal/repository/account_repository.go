package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unievents/unievents/internal/model"
	"github.com/unievents/unievents/internal/service"
)

// PoolInterface defines the database operations repositories need.
// Both pgxpool.Pool and test doubles satisfy it.
type PoolInterface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const uniqueViolation = "23505"

// AccountRepository provides data access for accounts using pgx. The cart is
// stored in the account row, so every account write is a single-row write.
type AccountRepository struct {
	pool PoolInterface
}

// NewAccountRepository creates an AccountRepository with the given pool.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// NewAccountRepositoryWithPool creates an AccountRepository with a custom
// pool interface. Primarily used for testing.
func NewAccountRepositoryWithPool(pool PoolInterface) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, email, password_hash, role, state, registered_at,
	registration_code, recovery_code, legal_id, name, address, phones, cart`

func scanAccount(row pgx.Row) (*model.Account, error) {
	var account model.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.Role,
		&account.State,
		&account.RegisteredAt,
		&account.RegistrationCode,
		&account.RecoveryCode,
		&account.Profile.LegalID,
		&account.Profile.Name,
		&account.Profile.Address,
		&account.Profile.Phones,
		&account.Cart,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Insert stores a new account and fills in its generated id. Unique
// violations map to service.ErrEmailExists / service.ErrLegalIDExists.
func (r *AccountRepository) Insert(ctx context.Context, account *model.Account) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO accounts (email, password_hash, role, state, registered_at,
			registration_code, recovery_code, legal_id, name, address, phones, cart)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		account.Email, account.PasswordHash, account.Role, account.State,
		account.RegisteredAt, account.RegistrationCode, account.RecoveryCode,
		account.Profile.LegalID, account.Profile.Name, account.Profile.Address,
		account.Profile.Phones, account.Cart,
	).Scan(&account.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == "accounts_legal_id_live" {
				return service.ErrLegalIDExists
			}
			return service.ErrEmailExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by id. Returns nil, nil when not found.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*model.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by id: %w", err)
	}
	return account, nil
}

// GetByEmail retrieves the non-deleted account with the given email.
// Returns nil, nil when not found.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1 AND state <> 'DELETED'`, email)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return account, nil
}

// EmailExists reports whether a non-deleted account other than exceptID holds
// the email. Pass an empty exceptID to consider every account.
func (r *AccountRepository) EmailExists(ctx context.Context, email, exceptID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM accounts
			WHERE email = $1 AND state <> 'DELETED' AND ($2 = '' OR id <> $2::uuid)
		)`, email, exceptID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

// LegalIDExists reports whether a non-deleted account other than exceptID
// holds the legal id.
func (r *AccountRepository) LegalIDExists(ctx context.Context, legalID, exceptID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM accounts
			WHERE legal_id = $1 AND state <> 'DELETED' AND ($2 = '' OR id <> $2::uuid)
		)`, legalID, exceptID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check legal id: %w", err)
	}
	return exists, nil
}

// Update replaces every mutable field of the account row except the cart.
func (r *AccountRepository) Update(ctx context.Context, account *model.Account) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET email = $2, password_hash = $3, role = $4, state = $5,
			registration_code = $6, recovery_code = $7, legal_id = $8, name = $9,
			address = $10, phones = $11
		 WHERE id = $1`,
		account.ID, account.Email, account.PasswordHash, account.Role, account.State,
		account.RegistrationCode, account.RecoveryCode, account.Profile.LegalID,
		account.Profile.Name, account.Profile.Address, account.Profile.Phones,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if pgErr.ConstraintName == "accounts_legal_id_live" {
				return service.ErrLegalIDExists
			}
			return service.ErrEmailExists
		}
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrAccountNotFound
	}
	return nil
}

// UpdateCart replaces the embedded cart in a single-row write.
func (r *AccountRepository) UpdateCart(ctx context.Context, accountID string, cart model.Cart) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET cart = $2 WHERE id = $1`, accountID, cart)
	if err != nil {
		return fmt.Errorf("update cart: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return service.ErrAccountNotFound
	}
	return nil
}

// List returns a summary of every non-deleted account.
func (r *AccountRepository) List(ctx context.Context) ([]model.AccountSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, email, name, phones FROM accounts WHERE state <> 'DELETED' ORDER BY registered_at`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	summaries := []model.AccountSummary{}
	for rows.Next() {
		var s model.AccountSummary
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.Phones); err != nil {
			return nil, fmt.Errorf("scan account summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return summaries, nil
}
