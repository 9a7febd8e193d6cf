package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lotto/domain/entities"
	"lotto/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// DrawRepository implements draw data access
type DrawRepository struct {
	q Queryable
}

// NewDrawRepository creates a new draw repository
func NewDrawRepository(q Queryable) interfaces.DrawRepository {
	return &DrawRepository{q: q}
}

const drawColumns = `id, lottery_type_id, draw_number, draw_date, winning_numbers, is_drawn, created_at`

func scanDraw(row pgx.Row) (*entities.Draw, error) {
	var draw entities.Draw
	err := row.Scan(
		&draw.ID,
		&draw.LotteryTypeID,
		&draw.DrawNumber,
		&draw.DrawDate,
		&draw.WinningNumbers,
		&draw.IsDrawn,
		&draw.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &draw, nil
}

// Create creates a new draw. ON CONFLICT DO NOTHING keeps a lost creation
// race from aborting the surrounding transaction; the caller sees
// entities.ErrDuplicateDrawNumber and retries the lookup.
func (r *DrawRepository) Create(ctx context.Context, draw *entities.Draw) error {
	query := `
		INSERT INTO draws (lottery_type_id, draw_number, draw_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (lottery_type_id, draw_number) DO NOTHING
		RETURNING id, winning_numbers, is_drawn, created_at
	`

	err := r.q.QueryRow(ctx, query,
		draw.LotteryTypeID,
		draw.DrawNumber,
		draw.DrawDate,
	).Scan(&draw.ID, &draw.WinningNumbers, &draw.IsDrawn, &draw.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.ErrDuplicateDrawNumber
	}
	if err != nil {
		return fmt.Errorf("failed to create draw: %w", err)
	}
	return nil
}

// GetByID retrieves a draw by its ID
func (r *DrawRepository) GetByID(ctx context.Context, id int64) (*entities.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws WHERE id = $1`

	draw, err := scanDraw(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draw: %w", err)
	}
	return draw, nil
}

// GetByIDForUpdate retrieves a draw with a row lock
func (r *DrawRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws WHERE id = $1 FOR UPDATE`

	draw, err := scanDraw(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock draw: %w", err)
	}
	return draw, nil
}

// GetOpenByType returns the most recently created open draw for a type
func (r *DrawRepository) GetOpenByType(ctx context.Context, lotteryTypeID int64) (*entities.Draw, error) {
	query := `
		SELECT ` + drawColumns + `
		FROM draws
		WHERE lottery_type_id = $1 AND NOT is_drawn
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	draw, err := scanDraw(r.q.QueryRow(ctx, query, lotteryTypeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open draw: %w", err)
	}
	return draw, nil
}

// CountByNumberPrefix counts draws of a type whose number starts with prefix
func (r *DrawRepository) CountByNumberPrefix(ctx context.Context, lotteryTypeID int64, prefix string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM draws
		WHERE lottery_type_id = $1 AND draw_number LIKE $2 || '%'
	`

	var count int
	if err := r.q.QueryRow(ctx, query, lotteryTypeID, prefix).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count draws: %w", err)
	}
	return count, nil
}

// Update persists winning numbers and drawn status
func (r *DrawRepository) Update(ctx context.Context, draw *entities.Draw) error {
	query := `
		UPDATE draws
		SET winning_numbers = $2, is_drawn = $3, draw_date = $4
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query, draw.ID, draw.WinningNumbers, draw.IsDrawn, draw.DrawDate)
	if err != nil {
		return fmt.Errorf("failed to update draw: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// ListPending returns open draws whose draw date is at or before now
func (r *DrawRepository) ListPending(ctx context.Context, now time.Time) ([]*entities.Draw, error) {
	query := `
		SELECT ` + drawColumns + `
		FROM draws
		WHERE NOT is_drawn AND draw_date <= $1
		ORDER BY draw_date
	`

	rows, err := r.q.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending draws: %w", err)
	}
	defer rows.Close()

	var draws []*entities.Draw
	for rows.Next() {
		draw, err := scanDraw(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		draws = append(draws, draw)
	}
	return draws, rows.Err()
}

// ListDrawn returns completed draws for a type, newest first
func (r *DrawRepository) ListDrawn(ctx context.Context, lotteryTypeID int64, limit int) ([]*entities.Draw, error) {
	query := `
		SELECT ` + drawColumns + `
		FROM draws
		WHERE lottery_type_id = $1 AND is_drawn
		ORDER BY draw_date DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, lotteryTypeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query drawn draws: %w", err)
	}
	defer rows.Close()

	var draws []*entities.Draw
	for rows.Next() {
		draw, err := scanDraw(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		draws = append(draws, draw)
	}
	return draws, rows.Err()
}
