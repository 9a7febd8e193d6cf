package repository

import (
	"context"
	"errors"
	"fmt"

	"lotto/domain/entities"
	"lotto/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// TicketRepository implements ticket data access
type TicketRepository struct {
	q Queryable
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(q Queryable) interfaces.TicketRepository {
	return &TicketRepository{q: q}
}

const ticketColumns = `id, draw_id, account_id, ticket_number, selected_numbers,
		is_auto_select, purchased_at, is_winning, winning_amount, is_claimed, ledger_entry_id`

func scanTicket(row pgx.Row) (*entities.Ticket, error) {
	var ticket entities.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.DrawID,
		&ticket.AccountID,
		&ticket.TicketNumber,
		&ticket.SelectedNumbers,
		&ticket.IsAutoSelect,
		&ticket.PurchasedAt,
		&ticket.IsWinning,
		&ticket.WinningAmount,
		&ticket.IsClaimed,
		&ticket.LedgerEntryID,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Create creates a new ticket. A colliding ticket number surfaces as
// entities.ErrDuplicateTicketNumber without aborting the transaction, so
// the caller can regenerate and retry.
func (r *TicketRepository) Create(ctx context.Context, ticket *entities.Ticket) error {
	query := `
		INSERT INTO tickets (draw_id, account_id, ticket_number, selected_numbers, is_auto_select, ledger_entry_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (ticket_number) DO NOTHING
		RETURNING id, purchased_at
	`

	err := r.q.QueryRow(ctx, query,
		ticket.DrawID,
		ticket.AccountID,
		ticket.TicketNumber,
		ticket.SelectedNumbers,
		ticket.IsAutoSelect,
		ticket.LedgerEntryID,
	).Scan(&ticket.ID, &ticket.PurchasedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.ErrDuplicateTicketNumber
	}
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// GetByID retrieves a ticket by its ID
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*entities.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return ticket, nil
}

// GetByIDForUpdate retrieves a ticket with a row lock
func (r *TicketRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1 FOR UPDATE`

	ticket, err := scanTicket(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entities.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock ticket: %w", err)
	}
	return ticket, nil
}

// GetByAccount returns tickets bought by an account, newest first
func (r *TicketRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE account_id = $1
		ORDER BY purchased_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

// ListByDraw returns all tickets sold against a draw
func (r *TicketRepository) ListByDraw(ctx context.Context, drawID int64) ([]*entities.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE draw_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, drawID)
	if err != nil {
		return nil, fmt.Errorf("failed to query draw tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

// ListSettleableByAccount returns the account's tickets whose draws completed
func (r *TicketRepository) ListSettleableByAccount(ctx context.Context, accountID int64) ([]*entities.Ticket, error) {
	query := `
		SELECT t.id, t.draw_id, t.account_id, t.ticket_number, t.selected_numbers,
		       t.is_auto_select, t.purchased_at, t.is_winning, t.winning_amount, t.is_claimed, t.ledger_entry_id
		FROM tickets t
		JOIN draws d ON d.id = t.draw_id
		WHERE t.account_id = $1 AND d.is_drawn
		ORDER BY t.id
	`

	rows, err := r.q.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query settleable tickets: %w", err)
	}
	defer rows.Close()

	return collectTickets(rows)
}

// Update persists win and claim status
func (r *TicketRepository) Update(ctx context.Context, ticket *entities.Ticket) error {
	query := `
		UPDATE tickets
		SET is_winning = $2, winning_amount = $3, is_claimed = $4
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query, ticket.ID, ticket.IsWinning, ticket.WinningAmount, ticket.IsClaimed)
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entities.ErrNotFound
	}
	return nil
}

// CountByDraw returns the number of tickets sold against a draw
func (r *TicketRepository) CountByDraw(ctx context.Context, drawID int64) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE draw_id = $1`, drawID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count draw tickets: %w", err)
	}
	return count, nil
}

func collectTickets(rows pgx.Rows) ([]*entities.Ticket, error) {
	var tickets []*entities.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}
