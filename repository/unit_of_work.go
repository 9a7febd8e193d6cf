package repository

import (
	"context"
	"fmt"

	"lotto/application"
	"lotto/database"
	"lotto/domain/events"
	"lotto/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db              *database.DB
	tx              pgx.Tx
	ctx             context.Context
	eventBuffer     *txEventBuffer
	accountRepo     interfaces.AccountRepository
	ledgerRepo      interfaces.LedgerEntryRepository
	lotteryTypeRepo interfaces.LotteryTypeRepository
	drawRepo        interfaces.DrawRepository
	ticketRepo      interfaces.TicketRepository
}

type unitOfWorkFactory struct {
	db  *database.DB
	bus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory. Events published
// during a unit of work are buffered and emitted on the bus after commit.
func NewUnitOfWorkFactory(db *database.DB, bus *events.Bus) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db, bus: bus}
}

// Create creates a new UnitOfWork
func (f *unitOfWorkFactory) Create() application.UnitOfWork {
	return &unitOfWork{
		db:          f.db,
		eventBuffer: newTxEventBuffer(f.bus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.accountRepo = NewAccountRepository(tx)
	u.ledgerRepo = NewLedgerEntryRepository(tx)
	u.lotteryTypeRepo = NewLotteryTypeRepository(tx)
	u.drawRepo = NewDrawRepository(tx)
	u.ticketRepo = NewTicketRepository(tx)

	return nil
}

// Commit commits the transaction and flushes buffered events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	u.eventBuffer.Flush(u.ctx)

	return nil
}

// Rollback rolls back the transaction and discards buffered events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	u.eventBuffer.Discard()

	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// AccountRepository returns the account repository for this unit of work
func (u *unitOfWork) AccountRepository() interfaces.AccountRepository {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accountRepo
}

// LedgerEntryRepository returns the ledger entry repository for this unit of work
func (u *unitOfWork) LedgerEntryRepository() interfaces.LedgerEntryRepository {
	if u.ledgerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ledgerRepo
}

// LotteryTypeRepository returns the lottery type repository for this unit of work
func (u *unitOfWork) LotteryTypeRepository() interfaces.LotteryTypeRepository {
	if u.lotteryTypeRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.lotteryTypeRepo
}

// DrawRepository returns the draw repository for this unit of work
func (u *unitOfWork) DrawRepository() interfaces.DrawRepository {
	if u.drawRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.drawRepo
}

// TicketRepository returns the ticket repository for this unit of work
func (u *unitOfWork) TicketRepository() interfaces.TicketRepository {
	if u.ticketRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ticketRepo
}

// EventBus returns the transactional event publisher
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.eventBuffer
}
