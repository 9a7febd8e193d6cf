package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
	"lotto/domain/services"

	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

const maxTxAttempts = 3

// App wires domain services to transactional units of work and exposes
// the system's operations. Every operation runs in its own transaction;
// domain events reach subscribers only after the transaction commits.
type App struct {
	uowFactory UnitOfWorkFactory
	drawEngine interfaces.DrawEngine
	numberGen  interfaces.TicketNumberGenerator
}

// NewApp creates the application facade
func NewApp(uowFactory UnitOfWorkFactory, drawEngine interfaces.DrawEngine, numberGen interfaces.TicketNumberGenerator) *App {
	return &App{
		uowFactory: uowFactory,
		drawEngine: drawEngine,
		numberGen:  numberGen,
	}
}

// retryableTxError reports whether the error is a serialization failure or
// deadlock that a fresh transaction may resolve
func retryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

// withUnitOfWork runs fn inside a transaction, retrying bounded times on
// serialization conflicts. Exhausted retries surface as
// entities.ErrConcurrencyConflict.
func (a *App) withUnitOfWork(ctx context.Context, fn func(uow UnitOfWork) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		uow := a.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		err := fn(uow)
		if err == nil {
			return uow.Commit()
		}

		if rbErr := uow.Rollback(); rbErr != nil {
			log.WithError(rbErr).Error("Failed to rollback transaction")
		}

		if !retryableTxError(err) {
			return err
		}
		lastErr = err
		log.WithError(err).WithField("attempt", attempt+1).Warn("Retrying transaction after conflict")
	}
	return fmt.Errorf("%w: %v", entities.ErrConcurrencyConflict, lastErr)
}

func (a *App) ledgerService(uow UnitOfWork) interfaces.LedgerService {
	return services.NewLedgerService(uow.AccountRepository(), uow.LedgerEntryRepository(), uow.EventBus())
}

func (a *App) settlementService(uow UnitOfWork) interfaces.SettlementService {
	return services.NewSettlementService(uow.DrawRepository(), uow.TicketRepository(), uow.LotteryTypeRepository(), a.drawEngine)
}

// CreateAccount creates an account with a starting balance
func (a *App) CreateAccount(ctx context.Context, username string, startingBalance entities.Amount) (*entities.Account, error) {
	var account *entities.Account
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		svc := services.NewAccountService(uow.AccountRepository(), a.ledgerService(uow), uow.EventBus())
		var err error
		account, err = svc.CreateAccount(ctx, username, startingBalance)
		return err
	})
	return account, err
}

// GetAccount retrieves an account by ID
func (a *App) GetAccount(ctx context.Context, accountID int64) (*entities.Account, error) {
	var account *entities.Account
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		account, err = uow.AccountRepository().GetByID(ctx, accountID)
		return err
	})
	return account, err
}

// GetAccountByUsername retrieves an account by username
func (a *App) GetAccountByUsername(ctx context.Context, username string) (*entities.Account, error) {
	var account *entities.Account
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		account, err = uow.AccountRepository().GetByUsername(ctx, username)
		return err
	})
	return account, err
}

// Recharge credits money onto an account
func (a *App) Recharge(ctx context.Context, accountID int64, amount entities.Amount, description string) (*entities.Account, error) {
	var account *entities.Account
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		svc := services.NewAccountService(uow.AccountRepository(), a.ledgerService(uow), uow.EventBus())
		var err error
		account, err = svc.Recharge(ctx, accountID, amount, description)
		return err
	})
	return account, err
}

// Withdraw debits money from an account
func (a *App) Withdraw(ctx context.Context, accountID int64, amount entities.Amount, description string) (*entities.Account, error) {
	var account *entities.Account
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		svc := services.NewAccountService(uow.AccountRepository(), a.ledgerService(uow), uow.EventBus())
		var err error
		account, err = svc.Withdraw(ctx, accountID, amount, description)
		return err
	})
	return account, err
}

// PurchaseTicket sells one ticket to an account. An empty selection with
// autoSelect requests machine-picked numbers.
func (a *App) PurchaseTicket(ctx context.Context, accountID, lotteryTypeID int64, selection []int64, autoSelect bool) (*entities.Ticket, error) {
	var ticket *entities.Ticket
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		svc := services.NewPurchaseService(
			uow.LotteryTypeRepository(),
			uow.DrawRepository(),
			uow.TicketRepository(),
			a.ledgerService(uow),
			a.numberGen,
			a.drawEngine,
			uow.EventBus(),
		)
		var err error
		ticket, err = svc.PurchaseTicket(ctx, accountID, lotteryTypeID, selection, autoSelect)
		return err
	})
	return ticket, err
}

// ExecuteDraw fixes winning numbers for a draw and settles its tickets
func (a *App) ExecuteDraw(ctx context.Context, drawID int64) (*interfaces.DrawResult, error) {
	var result *interfaces.DrawResult
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		svc := services.NewDrawService(
			uow.DrawRepository(),
			uow.LotteryTypeRepository(),
			a.drawEngine,
			a.settlementService(uow),
			uow.EventBus(),
		)
		var err error
		result, err = svc.ExecuteDraw(ctx, drawID)
		return err
	})
	return result, err
}

// ExecuteDueDraws executes every open draw whose draw date has passed.
// A draw raced away by another executor is skipped, not an error.
func (a *App) ExecuteDueDraws(ctx context.Context) (int, error) {
	var due []*entities.Draw
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		due, err = uow.DrawRepository().ListPending(ctx, time.Now().UTC())
		return err
	})
	if err != nil {
		return 0, err
	}

	executed := 0
	for _, draw := range due {
		if _, err := a.ExecuteDraw(ctx, draw.ID); err != nil {
			if errors.Is(err, entities.ErrAlreadyDrawn) {
				continue
			}
			return executed, fmt.Errorf("failed to execute draw %s: %w", draw.DrawNumber, err)
		}
		executed++
	}
	return executed, nil
}

// SettleTicket settles a single ticket against its completed draw
func (a *App) SettleTicket(ctx context.Context, ticketID int64) (*interfaces.SettlementResult, error) {
	var result *interfaces.SettlementResult
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		result, err = a.settlementService(uow).SettleTicket(ctx, ticketID)
		return err
	})
	return result, err
}

// SettleAccount settles all of an account's tickets with completed draws
func (a *App) SettleAccount(ctx context.Context, accountID int64) ([]*interfaces.SettlementResult, error) {
	var results []*interfaces.SettlementResult
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		results, err = a.settlementService(uow).SettleAccount(ctx, accountID)
		return err
	})
	return results, err
}

// ClaimPrize pays out a winning ticket to its owner
func (a *App) ClaimPrize(ctx context.Context, accountID, ticketID int64) (*entities.Ticket, error) {
	var ticket *entities.Ticket
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		svc := services.NewClaimService(uow.TicketRepository(), uow.DrawRepository(), a.ledgerService(uow), uow.EventBus())
		var err error
		ticket, err = svc.ClaimPrize(ctx, accountID, ticketID)
		return err
	})
	return ticket, err
}

// GetTickets returns an account's tickets, newest first
func (a *App) GetTickets(ctx context.Context, accountID int64, limit int) ([]*entities.Ticket, error) {
	var tickets []*entities.Ticket
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		tickets, err = uow.TicketRepository().GetByAccount(ctx, accountID, limit)
		return err
	})
	return tickets, err
}

// GetLedger returns an account's ledger entries, newest first
func (a *App) GetLedger(ctx context.Context, accountID int64, limit int) ([]*entities.LedgerEntry, error) {
	var entries []*entities.LedgerEntry
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		entries, err = uow.LedgerEntryRepository().GetByAccount(ctx, accountID, limit)
		return err
	})
	return entries, err
}

// ListActiveLotteryTypes returns the lottery types on sale
func (a *App) ListActiveLotteryTypes(ctx context.Context) ([]*entities.LotteryType, error) {
	var types []*entities.LotteryType
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		types, err = uow.LotteryTypeRepository().ListActive(ctx)
		return err
	})
	return types, err
}

// CreateLotteryType registers a new lottery type
func (a *App) CreateLotteryType(ctx context.Context, lt *entities.LotteryType) error {
	return a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		return uow.LotteryTypeRepository().Create(ctx, lt)
	})
}

// GetDrawResults returns completed draws for a lottery type, newest first
func (a *App) GetDrawResults(ctx context.Context, lotteryTypeID int64, limit int) ([]*entities.Draw, error) {
	var draws []*entities.Draw
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		draws, err = uow.DrawRepository().ListDrawn(ctx, lotteryTypeID, limit)
		return err
	})
	return draws, err
}

// SalesReport summarizes ledger activity per entry kind in a time range
func (a *App) SalesReport(ctx context.Context, from, to time.Time) (map[entities.EntryKind]entities.Amount, error) {
	var totals map[entities.EntryKind]entities.Amount
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		totals, err = uow.LedgerEntryRepository().TotalsByKind(ctx, from, to)
		return err
	})
	return totals, err
}

// DailySales returns per-day totals of one entry kind over the last days days
func (a *App) DailySales(ctx context.Context, kind entities.EntryKind, days int) ([]interfaces.DailyTotal, error) {
	var totals []interfaces.DailyTotal
	err := a.withUnitOfWork(ctx, func(uow UnitOfWork) error {
		var err error
		totals, err = uow.LedgerEntryRepository().DailyTotals(ctx, kind, days)
		return err
	})
	return totals, err
}
