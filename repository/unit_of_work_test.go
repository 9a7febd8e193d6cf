package repository

import (
	"context"
	"sync"
	"testing"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitPersistsAndFlushesEvents(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	var mu sync.Mutex
	var received []events.Event
	bus.Subscribe(events.EventTypeAccountCreated, func(ctx context.Context, event events.Event) {
		mu.Lock()
		received = append(received, event)
		mu.Unlock()
	})

	uow := NewUnitOfWorkFactory(testDB.DB, bus).Create()
	require.NoError(t, uow.Begin(ctx))

	account := &entities.Account{Username: "player"}
	require.NoError(t, uow.AccountRepository().Create(ctx, account))
	require.NoError(t, uow.EventBus().Publish(events.AccountCreatedEvent{AccountID: account.ID, Username: "player"}))

	// Nothing flushed before commit
	mu.Lock()
	assert.Empty(t, received)
	mu.Unlock()

	require.NoError(t, uow.Commit())

	mu.Lock()
	require.Len(t, received, 1)
	mu.Unlock()

	got, err := NewAccountRepository(testDB.DB).GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "player", got.Username)
}

func TestUnitOfWork_RollbackDiscards(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	var mu sync.Mutex
	var received []events.Event
	bus.Subscribe(events.EventTypeAccountCreated, func(ctx context.Context, event events.Event) {
		mu.Lock()
		received = append(received, event)
		mu.Unlock()
	})

	uow := NewUnitOfWorkFactory(testDB.DB, bus).Create()
	require.NoError(t, uow.Begin(ctx))

	account := &entities.Account{Username: "ghost"}
	require.NoError(t, uow.AccountRepository().Create(ctx, account))
	require.NoError(t, uow.EventBus().Publish(events.AccountCreatedEvent{AccountID: account.ID, Username: "ghost"}))
	require.NoError(t, uow.Rollback())

	mu.Lock()
	assert.Empty(t, received)
	mu.Unlock()

	_, err := NewAccountRepository(testDB.DB).GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestUnitOfWork_BeginTwiceFails(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	uow := CreateTestUnitOfWork(testDB.DB, nil)
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	assert.Error(t, uow.Begin(ctx))
}

func TestUnitOfWork_TicketNumberCollisionKeepsTransactionUsable(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	uow := CreateTestUnitOfWork(testDB.DB, nil)
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	account := &entities.Account{Username: "player"}
	require.NoError(t, uow.AccountRepository().Create(ctx, account))

	lt := testutil.SixOfThirtyThree()
	require.NoError(t, uow.LotteryTypeRepository().Create(ctx, lt))

	draw := testutil.NewDraw(lt.ID, "20260901-001")
	require.NoError(t, uow.DrawRepository().Create(ctx, draw))

	entry := &entities.LedgerEntry{AccountID: account.ID, Kind: entities.EntryKindPurchase, Amount: entities.NewAmountFromCents(200)}
	require.NoError(t, uow.LedgerEntryRepository().Record(ctx, entry))

	ticket := testutil.NewTicket(draw.ID, account.ID, entry.ID, "T20260901120000111111", []int64{1, 5, 12, 20, 28, 33})
	require.NoError(t, uow.TicketRepository().Create(ctx, ticket))

	// A collision must not poison the transaction for later statements.
	dup := testutil.NewTicket(draw.ID, account.ID, entry.ID, "T20260901120000111111", []int64{2, 6, 13, 21, 29, 30})
	require.ErrorIs(t, uow.TicketRepository().Create(ctx, dup), entities.ErrDuplicateTicketNumber)

	dup.TicketNumber = "T20260901120000222222"
	require.NoError(t, uow.TicketRepository().Create(ctx, dup))
	require.NoError(t, uow.Commit())

	count, err := NewTicketRepository(testDB.DB).CountByDraw(ctx, draw.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
