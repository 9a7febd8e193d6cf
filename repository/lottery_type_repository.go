package repository

import (
	"context"
	"errors"
	"fmt"

	"lotto/domain/entities"
	"lotto/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// LotteryTypeRepository implements lottery type data access
type LotteryTypeRepository struct {
	q Queryable
}

// NewLotteryTypeRepository creates a new lottery type repository
func NewLotteryTypeRepository(q Queryable) interfaces.LotteryTypeRepository {
	return &LotteryTypeRepository{q: q}
}

const lotteryTypeColumns = `id, name, description, price, max_number, numbers_count, is_active, created_at`

func scanLotteryType(row pgx.Row) (*entities.LotteryType, error) {
	var lt entities.LotteryType
	err := row.Scan(
		&lt.ID,
		&lt.Name,
		&lt.Description,
		&lt.Price,
		&lt.MaxNumber,
		&lt.NumbersCount,
		&lt.IsActive,
		&lt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lt, nil
}

// Create creates a new lottery type
func (r *LotteryTypeRepository) Create(ctx context.Context, lt *entities.LotteryType) error {
	query := `
		INSERT INTO lottery_types (name, description, price, max_number, numbers_count, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		lt.Name,
		lt.Description,
		lt.Price,
		lt.MaxNumber,
		lt.NumbersCount,
		lt.IsActive,
	).Scan(&lt.ID, &lt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create lottery type: %w", err)
	}
	return nil
}

// GetByID retrieves a lottery type by its ID
func (r *LotteryTypeRepository) GetByID(ctx context.Context, id int64) (*entities.LotteryType, error) {
	query := `SELECT ` + lotteryTypeColumns + ` FROM lottery_types WHERE id = $1`

	lt, err := scanLotteryType(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery type: %w", err)
	}
	return lt, nil
}

// GetByName retrieves a lottery type by its unique name
func (r *LotteryTypeRepository) GetByName(ctx context.Context, name string) (*entities.LotteryType, error) {
	query := `SELECT ` + lotteryTypeColumns + ` FROM lottery_types WHERE name = $1`

	lt, err := scanLotteryType(r.q.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery type by name: %w", err)
	}
	return lt, nil
}

// ListActive returns all lottery types currently on sale
func (r *LotteryTypeRepository) ListActive(ctx context.Context) ([]*entities.LotteryType, error) {
	query := `SELECT ` + lotteryTypeColumns + ` FROM lottery_types WHERE is_active ORDER BY id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lottery types: %w", err)
	}
	defer rows.Close()

	var types []*entities.LotteryType
	for rows.Next() {
		lt, err := scanLotteryType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lottery type: %w", err)
		}
		types = append(types, lt)
	}
	return types, rows.Err()
}

// Update persists changes to a lottery type
func (r *LotteryTypeRepository) Update(ctx context.Context, lt *entities.LotteryType) error {
	query := `
		UPDATE lottery_types
		SET name = $2, description = $3, price = $4, max_number = $5, numbers_count = $6, is_active = $7
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query,
		lt.ID,
		lt.Name,
		lt.Description,
		lt.Price,
		lt.MaxNumber,
		lt.NumbersCount,
		lt.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update lottery type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrNotFound
	}
	return nil
}
