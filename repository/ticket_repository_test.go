package repository

import (
	"context"
	"testing"

	"lotto/domain/entities"
	"lotto/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ticketFixture struct {
	accountRepo *AccountRepository
	ledgerRepo  *LedgerEntryRepository
	typeRepo    *LotteryTypeRepository
	drawRepo    *DrawRepository
	repo        *TicketRepository
	account     *entities.Account
	draw        *entities.Draw
}

func setupTicketFixture(t *testing.T, testDB *testutil.TestDatabase) *ticketFixture {
	t.Helper()
	f := &ticketFixture{
		accountRepo: NewAccountRepository(testDB.DB).(*AccountRepository),
		ledgerRepo:  NewLedgerEntryRepository(testDB.DB).(*LedgerEntryRepository),
		typeRepo:    NewLotteryTypeRepository(testDB.DB).(*LotteryTypeRepository),
		drawRepo:    NewDrawRepository(testDB.DB).(*DrawRepository),
		repo:        NewTicketRepository(testDB.DB).(*TicketRepository),
	}
	f.account = createAccount(t, f.accountRepo, "player")
	lt := createLotteryType(t, f.typeRepo, testutil.SixOfThirtyThree())
	f.draw = testutil.NewDraw(lt.ID, "20260901-001")
	require.NoError(t, f.drawRepo.Create(context.Background(), f.draw))
	return f
}

func (f *ticketFixture) buyTicket(t *testing.T, number string) *entities.Ticket {
	t.Helper()
	entry := recordEntry(t, f.ledgerRepo, f.account.ID, entities.EntryKindPurchase, 200)
	ticket := testutil.NewTicket(f.draw.ID, f.account.ID, entry.ID, number, []int64{1, 5, 12, 20, 28, 33})
	require.NoError(t, f.repo.Create(context.Background(), ticket))
	return ticket
}

func TestTicketRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	f := setupTicketFixture(t, testDB)

	ticket := f.buyTicket(t, "T20260901120000111111")
	assert.NotZero(t, ticket.ID)
	assert.False(t, ticket.PurchasedAt.IsZero())

	t.Run("duplicate ticket number", func(t *testing.T) {
		entry := recordEntry(t, f.ledgerRepo, f.account.ID, entities.EntryKindPurchase, 200)
		dup := testutil.NewTicket(f.draw.ID, f.account.ID, entry.ID, "T20260901120000111111", []int64{2, 6, 13, 21, 29, 30})
		assert.ErrorIs(t, f.repo.Create(context.Background(), dup), entities.ErrDuplicateTicketNumber)
	})
}

func TestTicketRepository_GetAndList(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	f := setupTicketFixture(t, testDB)
	ctx := context.Background()

	first := f.buyTicket(t, "T20260901120000111111")
	second := f.buyTicket(t, "T20260901120000222222")

	t.Run("by id", func(t *testing.T) {
		got, err := f.repo.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.TicketNumber, got.TicketNumber)
		assert.Equal(t, []int64{1, 5, 12, 20, 28, 33}, got.SelectedNumbers)

		_, err = f.repo.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("by draw", func(t *testing.T) {
		tickets, err := f.repo.ListByDraw(ctx, f.draw.ID)
		require.NoError(t, err)
		assert.Len(t, tickets, 2)

		count, err := f.repo.CountByDraw(ctx, f.draw.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("by account", func(t *testing.T) {
		tickets, err := f.repo.GetByAccount(ctx, f.account.ID, 1)
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.Equal(t, second.ID, tickets[0].ID)
	})
}

func TestTicketRepository_ListSettleableByAccount(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	f := setupTicketFixture(t, testDB)
	ctx := context.Background()

	ticket := f.buyTicket(t, "T20260901120000111111")

	settleable, err := f.repo.ListSettleableByAccount(ctx, f.account.ID)
	require.NoError(t, err)
	assert.Empty(t, settleable)

	f.draw.MarkDrawn([]int64{3, 7, 12, 19, 25, 31})
	require.NoError(t, f.drawRepo.Update(ctx, f.draw))

	settleable, err = f.repo.ListSettleableByAccount(ctx, f.account.ID)
	require.NoError(t, err)
	require.Len(t, settleable, 1)
	assert.Equal(t, ticket.ID, settleable[0].ID)
}

func TestTicketRepository_Update(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	f := setupTicketFixture(t, testDB)
	ctx := context.Background()

	ticket := f.buyTicket(t, "T20260901120000111111")

	ticket.MarkWinning(entities.NewAmountFromCents(2000))
	require.NoError(t, f.repo.Update(ctx, ticket))

	got, err := f.repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.True(t, got.IsWinning)
	assert.Equal(t, entities.NewAmountFromCents(2000), got.WinningAmount)
	assert.False(t, got.IsClaimed)

	got.MarkClaimed()
	require.NoError(t, f.repo.Update(ctx, got))

	claimed, err := f.repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.True(t, claimed.IsClaimed)
}
