package repository

import (
	"context"
	"fmt"
	"time"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
)

// LedgerEntryRepository implements the append-only money ledger
type LedgerEntryRepository struct {
	q Queryable
}

// NewLedgerEntryRepository creates a new ledger entry repository
func NewLedgerEntryRepository(q Queryable) interfaces.LedgerEntryRepository {
	return &LedgerEntryRepository{q: q}
}

// Record creates a new ledger entry. Entries are never updated or deleted.
func (r *LedgerEntryRepository) Record(ctx context.Context, entry *entities.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (account_id, entry_type, amount, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.AccountID,
		entry.Kind,
		entry.Amount,
		entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}
	return nil
}

// GetByAccount returns entries for an account, newest first
func (r *LedgerEntryRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.LedgerEntry, error) {
	query := `
		SELECT id, account_id, entry_type, amount, description, created_at
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*entities.LedgerEntry
	for rows.Next() {
		var entry entities.LedgerEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&entry.Kind,
			&entry.Amount,
			&entry.Description,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

// SumByKind returns the summed magnitude of one entry kind for an account
func (r *LedgerEntryRepository) SumByKind(ctx context.Context, accountID int64, kind entities.EntryKind) (entities.Amount, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE account_id = $1 AND entry_type = $2
	`

	var sum entities.Amount
	if err := r.q.QueryRow(ctx, query, accountID, kind).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum ledger entries: %w", err)
	}
	return sum, nil
}

// TotalsByKind returns summed magnitudes per kind within a time range
func (r *LedgerEntryRepository) TotalsByKind(ctx context.Context, from, to time.Time) (map[entities.EntryKind]entities.Amount, error) {
	query := `
		SELECT entry_type, COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY entry_type
	`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[entities.EntryKind]entities.Amount)
	for rows.Next() {
		var kind entities.EntryKind
		var sum entities.Amount
		if err := rows.Scan(&kind, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan ledger total: %w", err)
		}
		totals[kind] = sum
	}
	return totals, rows.Err()
}

// DailyTotals returns per-day summed magnitudes of one kind over the last
// days days, oldest first
func (r *LedgerEntryRepository) DailyTotals(ctx context.Context, kind entities.EntryKind, days int) ([]interfaces.DailyTotal, error) {
	query := `
		SELECT date_trunc('day', created_at), COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE entry_type = $1 AND created_at >= $2
		GROUP BY 1
		ORDER BY 1
	`

	since := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -(days - 1))
	rows, err := r.q.Query(ctx, query, kind, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily ledger totals: %w", err)
	}
	defer rows.Close()

	var totals []interfaces.DailyTotal
	for rows.Next() {
		var dt interfaces.DailyTotal
		if err := rows.Scan(&dt.Day, &dt.Total); err != nil {
			return nil, fmt.Errorf("failed to scan daily ledger total: %w", err)
		}
		totals = append(totals, dt)
	}
	return totals, rows.Err()
}
