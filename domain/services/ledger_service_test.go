package services

import (
	"context"
	"testing"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testAccount(id int64, balanceCents int64) *entities.Account {
	return &entities.Account{
		ID:       id,
		Username: "player",
		Balance:  entities.NewAmountFromCents(balanceCents),
	}
}

func TestLedgerService_ApplyAndRecord_Credit(t *testing.T) {
	t.Parallel()

	accountRepo := new(testhelpers.MockAccountRepository)
	ledgerRepo := new(testhelpers.MockLedgerEntryRepository)
	publisher := new(testhelpers.MockEventPublisher)
	service := NewLedgerService(accountRepo, ledgerRepo, publisher)

	account := testAccount(1, 1000)
	accountRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(account, nil)
	accountRepo.On("Update", mock.Anything, mock.MatchedBy(func(a *entities.Account) bool {
		return a.Balance == entities.NewAmountFromCents(1500)
	})).Return(nil)
	ledgerRepo.On("Record", mock.Anything, mock.MatchedBy(func(e *entities.LedgerEntry) bool {
		return e.AccountID == 1 &&
			e.Kind == entities.EntryKindRecharge &&
			e.Amount == entities.NewAmountFromCents(500)
	})).Return(nil)
	publisher.On("Publish", mock.MatchedBy(func(ev events.Event) bool {
		bc, ok := ev.(events.BalanceChangedEvent)
		return ok && bc.NewBalance == entities.NewAmountFromCents(1500)
	})).Return(nil)

	entry, err := service.ApplyAndRecord(context.Background(), 1, entities.NewAmountFromCents(500), entities.EntryKindRecharge, "top up")

	require.NoError(t, err)
	assert.Equal(t, entities.NewAmountFromCents(500), entry.Amount)
	accountRepo.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestLedgerService_ApplyAndRecord_InsufficientFunds(t *testing.T) {
	t.Parallel()

	accountRepo := new(testhelpers.MockAccountRepository)
	ledgerRepo := new(testhelpers.MockLedgerEntryRepository)
	publisher := new(testhelpers.MockEventPublisher)
	service := NewLedgerService(accountRepo, ledgerRepo, publisher)

	accountRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(testAccount(1, 100), nil)

	_, err := service.ApplyAndRecord(context.Background(), 1, entities.NewAmountFromCents(-200), entities.EntryKindPurchase, "ticket")

	assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	accountRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	ledgerRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestLedgerService_ApplyAndRecord_ExactBalanceDebit(t *testing.T) {
	t.Parallel()

	accountRepo := new(testhelpers.MockAccountRepository)
	ledgerRepo := new(testhelpers.MockLedgerEntryRepository)
	service := NewLedgerService(accountRepo, ledgerRepo, nil)

	accountRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(testAccount(1, 200), nil)
	accountRepo.On("Update", mock.Anything, mock.MatchedBy(func(a *entities.Account) bool {
		return a.Balance.IsZero() && a.TotalSpent == entities.NewAmountFromCents(200)
	})).Return(nil)
	ledgerRepo.On("Record", mock.Anything, mock.Anything).Return(nil)

	entry, err := service.ApplyAndRecord(context.Background(), 1, entities.NewAmountFromCents(-200), entities.EntryKindPurchase, "ticket")

	require.NoError(t, err)
	assert.Equal(t, entities.NewAmountFromCents(200), entry.Amount)
	accountRepo.AssertExpectations(t)
}

func TestLedgerService_ApplyAndRecord_WinningUpdatesTotalWon(t *testing.T) {
	t.Parallel()

	accountRepo := new(testhelpers.MockAccountRepository)
	ledgerRepo := new(testhelpers.MockLedgerEntryRepository)
	service := NewLedgerService(accountRepo, ledgerRepo, nil)

	accountRepo.On("GetByIDForUpdate", mock.Anything, int64(1)).Return(testAccount(1, 0), nil)
	accountRepo.On("Update", mock.Anything, mock.MatchedBy(func(a *entities.Account) bool {
		return a.Balance == entities.NewAmountFromCents(2000) &&
			a.TotalWon == entities.NewAmountFromCents(2000)
	})).Return(nil)
	ledgerRepo.On("Record", mock.Anything, mock.Anything).Return(nil)

	_, err := service.ApplyAndRecord(context.Background(), 1, entities.NewAmountFromCents(2000), entities.EntryKindWinning, "prize")

	require.NoError(t, err)
	accountRepo.AssertExpectations(t)
}

func TestLedgerService_ApplyAndRecord_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		delta entities.Amount
		kind  entities.EntryKind
	}{
		{"zero delta", entities.NewAmountFromCents(0), entities.EntryKindRecharge},
		{"negative recharge", entities.NewAmountFromCents(-100), entities.EntryKindRecharge},
		{"positive purchase", entities.NewAmountFromCents(100), entities.EntryKindPurchase},
		{"negative winning", entities.NewAmountFromCents(-100), entities.EntryKindWinning},
		{"positive withdraw", entities.NewAmountFromCents(100), entities.EntryKindWithdraw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo := new(testhelpers.MockAccountRepository)
			ledgerRepo := new(testhelpers.MockLedgerEntryRepository)
			service := NewLedgerService(accountRepo, ledgerRepo, nil)

			_, err := service.ApplyAndRecord(context.Background(), 1, tt.delta, tt.kind, "bad")

			assert.Error(t, err)
			accountRepo.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
		})
	}
}
