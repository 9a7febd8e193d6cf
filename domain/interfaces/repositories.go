package interfaces

import (
	"context"
	"time"

	"lotto/domain/entities"
	"lotto/domain/events"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// Create creates a new account. The balance on the passed entity is
	// ignored; accounts always start at zero and are funded through the
	// ledger.
	Create(ctx context.Context, account *entities.Account) error

	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id int64) (*entities.Account, error)

	// GetByIDForUpdate retrieves an account with a row lock, serializing
	// concurrent balance mutations on the same account
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Account, error)

	// GetByUsername retrieves an account by username
	GetByUsername(ctx context.Context, username string) (*entities.Account, error)

	// Update persists balance and lifetime totals
	Update(ctx context.Context, account *entities.Account) error
}

// DailyTotal is one day's summed ledger magnitude
type DailyTotal struct {
	Day   time.Time
	Total entities.Amount
}

// LedgerEntryRepository defines the interface for the append-only money ledger
type LedgerEntryRepository interface {
	// Record creates a new ledger entry and fills in its ID and timestamp
	Record(ctx context.Context, entry *entities.LedgerEntry) error

	// GetByAccount returns entries for an account, newest first
	GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.LedgerEntry, error)

	// SumByKind returns the summed magnitude of entries of one kind for an account
	SumByKind(ctx context.Context, accountID int64, kind entities.EntryKind) (entities.Amount, error)

	// TotalsByKind returns summed magnitudes per kind across all accounts
	// within the given time range, for sales reporting
	TotalsByKind(ctx context.Context, from, to time.Time) (map[entities.EntryKind]entities.Amount, error)

	// DailyTotals returns per-day summed magnitudes of one kind over the
	// last days days, oldest first. Days without entries are omitted.
	DailyTotals(ctx context.Context, kind entities.EntryKind, days int) ([]DailyTotal, error)
}

// LotteryTypeRepository defines the interface for lottery type data access
type LotteryTypeRepository interface {
	// Create creates a new lottery type
	Create(ctx context.Context, lt *entities.LotteryType) error

	// GetByID retrieves a lottery type by its ID
	GetByID(ctx context.Context, id int64) (*entities.LotteryType, error)

	// GetByName retrieves a lottery type by its unique name
	GetByName(ctx context.Context, name string) (*entities.LotteryType, error)

	// ListActive returns all lottery types currently on sale
	ListActive(ctx context.Context) ([]*entities.LotteryType, error)

	// Update persists changes to a lottery type
	Update(ctx context.Context, lt *entities.LotteryType) error
}

// DrawRepository defines the interface for draw data access
type DrawRepository interface {
	// Create creates a new draw. Returns entities.ErrDuplicateDrawNumber
	// when another draw of the same type already holds the draw number.
	Create(ctx context.Context, draw *entities.Draw) error

	// GetByID retrieves a draw by its ID
	GetByID(ctx context.Context, id int64) (*entities.Draw, error)

	// GetByIDForUpdate retrieves a draw with a row lock so that only one
	// transaction can execute the draw
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Draw, error)

	// GetOpenByType returns the most recently created open draw for a
	// lottery type, or entities.ErrNotFound when none exists
	GetOpenByType(ctx context.Context, lotteryTypeID int64) (*entities.Draw, error)

	// CountByNumberPrefix counts draws of a type whose draw number starts
	// with the given prefix, used to assign the next sequence number
	CountByNumberPrefix(ctx context.Context, lotteryTypeID int64, prefix string) (int, error)

	// Update persists winning numbers and drawn status
	Update(ctx context.Context, draw *entities.Draw) error

	// ListPending returns open draws whose draw date is at or before now
	ListPending(ctx context.Context, now time.Time) ([]*entities.Draw, error)

	// ListDrawn returns completed draws for a lottery type, newest first
	ListDrawn(ctx context.Context, lotteryTypeID int64, limit int) ([]*entities.Draw, error)
}

// TicketRepository defines the interface for ticket data access
type TicketRepository interface {
	// Create creates a new ticket. Returns entities.ErrDuplicateTicketNumber
	// when the ticket number collides with an existing one.
	Create(ctx context.Context, ticket *entities.Ticket) error

	// GetByID retrieves a ticket by its ID
	GetByID(ctx context.Context, id int64) (*entities.Ticket, error)

	// GetByIDForUpdate retrieves a ticket with a row lock, serializing
	// settlement and claim against each other
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Ticket, error)

	// GetByAccount returns tickets bought by an account, newest first
	GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.Ticket, error)

	// ListByDraw returns all tickets sold against a draw
	ListByDraw(ctx context.Context, drawID int64) ([]*entities.Ticket, error)

	// ListSettleableByAccount returns the account's tickets whose draws
	// have completed, for on-demand settlement
	ListSettleableByAccount(ctx context.Context, accountID int64) ([]*entities.Ticket, error)

	// Update persists win and claim status
	Update(ctx context.Context, ticket *entities.Ticket) error

	// CountByDraw returns the number of tickets sold against a draw
	CountByDraw(ctx context.Context, drawID int64) (int, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
