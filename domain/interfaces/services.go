package interfaces

import (
	"context"

	"lotto/domain/entities"
)

// SettlementResult describes the outcome of settling a single ticket
type SettlementResult struct {
	TicketID      int64
	Matches       int
	IsWinning     bool
	WinningAmount entities.Amount
}

// DrawSettlement summarizes settling every ticket of one draw
type DrawSettlement struct {
	DrawID         int64
	TicketsSettled int
	Winners        int
	TotalPrizes    entities.Amount
}

// DrawResult is the outcome of executing a draw
type DrawResult struct {
	Draw       *entities.Draw
	Settlement *DrawSettlement
}

// LedgerService defines the interface for atomic balance mutations
type LedgerService interface {
	// ApplyAndRecord applies a signed balance delta to an account and
	// records the matching ledger entry, all inside the caller's
	// transaction. A negative delta that would take the balance below
	// zero returns entities.ErrInsufficientFunds before any mutation.
	ApplyAndRecord(ctx context.Context, accountID int64, delta entities.Amount, kind entities.EntryKind, description string) (*entities.LedgerEntry, error)
}

// TicketNumberGenerator defines the interface for producing candidate
// ticket numbers. Uniqueness is enforced at persistence, not here.
type TicketNumberGenerator interface {
	Generate() (string, error)
}

// DrawEngine defines the pure number mechanics of a lottery type
type DrawEngine interface {
	// DrawWinningNumbers produces a sorted random winning set for the type
	DrawWinningNumbers(lt *entities.LotteryType) []int64

	// RandomSelection produces a sorted random player selection for the type
	RandomSelection(lt *entities.LotteryType) []int64

	// ValidateSelection checks count, range and uniqueness of a manual
	// selection, returning entities.ErrInvalidSelection on any violation
	ValidateSelection(lt *entities.LotteryType, selection []int64) error

	// MatchCount returns how many selected numbers appear in the winning set
	MatchCount(selected, winning []int64) int

	// PrizeFor returns the prize for a match count, given the ticket price
	PrizeFor(lt *entities.LotteryType, matches int) entities.Amount
}

// PurchaseService defines the interface for selling tickets
type PurchaseService interface {
	// PurchaseTicket sells one ticket to an account. A nil or empty
	// selection requests auto-select. Payment and ticket creation happen
	// atomically within the caller's transaction.
	PurchaseTicket(ctx context.Context, accountID, lotteryTypeID int64, selection []int64, autoSelect bool) (*entities.Ticket, error)
}

// SettlementService defines the interface for resolving tickets against
// completed draws. All operations are idempotent.
type SettlementService interface {
	// SettleTicket settles a single ticket against its draw. A ticket
	// whose draw has not completed yields an unmarked result.
	SettleTicket(ctx context.Context, ticketID int64) (*SettlementResult, error)

	// SettleDraw settles every ticket sold against a completed draw
	SettleDraw(ctx context.Context, draw *entities.Draw) (*DrawSettlement, error)

	// SettleAccount settles all of an account's tickets whose draws have
	// completed
	SettleAccount(ctx context.Context, accountID int64) ([]*SettlementResult, error)
}

// DrawService defines the interface for executing draws
type DrawService interface {
	// ExecuteDraw fixes winning numbers for an open draw and settles its
	// tickets. Returns entities.ErrAlreadyDrawn if the draw completed.
	ExecuteDraw(ctx context.Context, drawID int64) (*DrawResult, error)
}

// ClaimService defines the interface for paying out winning tickets
type ClaimService interface {
	// ClaimPrize credits a winning ticket's prize to its owner exactly once
	ClaimPrize(ctx context.Context, accountID, ticketID int64) (*entities.Ticket, error)
}

// AccountService defines the interface for account lifecycle and funding
type AccountService interface {
	// CreateAccount creates an account, funding any starting balance
	// through a recharge ledger entry
	CreateAccount(ctx context.Context, username string, startingBalance entities.Amount) (*entities.Account, error)

	// Recharge credits money onto an account
	Recharge(ctx context.Context, accountID int64, amount entities.Amount, description string) (*entities.Account, error)

	// Withdraw debits money from an account, failing with
	// entities.ErrInsufficientFunds when the balance does not cover it
	Withdraw(ctx context.Context, accountID int64, amount entities.Amount, description string) (*entities.Account, error)
}
