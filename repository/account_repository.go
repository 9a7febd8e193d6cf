package repository

import (
	"context"
	"errors"
	"fmt"

	"lotto/domain/entities"
	"lotto/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// AccountRepository implements account data access
type AccountRepository struct {
	q Queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(q Queryable) interfaces.AccountRepository {
	return &AccountRepository{q: q}
}

const accountColumns = `id, username, balance, total_spent, total_won, created_at, updated_at`

func scanAccount(row pgx.Row) (*entities.Account, error) {
	var account entities.Account
	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.Balance,
		&account.TotalSpent,
		&account.TotalWon,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// Create creates a new account at zero balance
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	query := `
		INSERT INTO accounts (username)
		VALUES ($1)
		RETURNING id, balance, total_spent, total_won, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query, account.Username).Scan(
		&account.ID,
		&account.Balance,
		&account.TotalSpent,
		&account.TotalWon,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*entities.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// GetByIDForUpdate retrieves an account with a row lock
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 FOR UPDATE`

	account, err := scanAccount(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	return account, nil
}

// GetByUsername retrieves an account by username
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*entities.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`

	account, err := scanAccount(r.q.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by username: %w", err)
	}
	return account, nil
}

// Update persists balance and lifetime totals
func (r *AccountRepository) Update(ctx context.Context, account *entities.Account) error {
	query := `
		UPDATE accounts
		SET balance = $2, total_spent = $3, total_won = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query, account.ID, account.Balance, account.TotalSpent, account.TotalWon)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrNotFound
	}
	return nil
}
