package services

import (
	"context"
	"testing"

	"lotto/domain/entities"
	"lotto/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAccountService(t *testing.T) (*accountService, *testhelpers.MockAccountRepository, *testhelpers.MockLedgerService) {
	t.Helper()
	accountRepo := new(testhelpers.MockAccountRepository)
	ledgerService := new(testhelpers.MockLedgerService)
	service := NewAccountService(accountRepo, ledgerService, nil).(*accountService)
	return service, accountRepo, ledgerService
}

func TestAccountService_CreateAccount_WithStartingBalance(t *testing.T) {
	t.Parallel()

	service, accountRepo, ledgerService := newAccountService(t)
	starting := entities.NewAmountFromCents(50000)

	accountRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *entities.Account) bool {
		return a.Username == "player" && a.Balance.IsZero()
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Account).ID = 1
	}).Return(nil)
	ledgerService.On("ApplyAndRecord", mock.Anything, int64(1), starting, entities.EntryKindRecharge, "initial balance").
		Return(&entities.LedgerEntry{ID: 1}, nil)

	account, err := service.CreateAccount(context.Background(), "player", starting)

	require.NoError(t, err)
	assert.Equal(t, starting, account.Balance)
	accountRepo.AssertExpectations(t)
	ledgerService.AssertExpectations(t)
}

func TestAccountService_CreateAccount_ZeroBalance(t *testing.T) {
	t.Parallel()

	service, accountRepo, ledgerService := newAccountService(t)

	accountRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	account, err := service.CreateAccount(context.Background(), "player", entities.NewAmountFromCents(0))

	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero())
	ledgerService.AssertNotCalled(t, "ApplyAndRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_CreateAccount_Validation(t *testing.T) {
	t.Parallel()

	service, accountRepo, _ := newAccountService(t)

	_, err := service.CreateAccount(context.Background(), "  ", entities.NewAmountFromCents(100))
	assert.Error(t, err)

	_, err = service.CreateAccount(context.Background(), "player", entities.NewAmountFromCents(-100))
	assert.Error(t, err)

	accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Recharge(t *testing.T) {
	t.Parallel()

	service, accountRepo, ledgerService := newAccountService(t)
	amount := entities.NewAmountFromCents(1000)

	ledgerService.On("ApplyAndRecord", mock.Anything, int64(1), amount, entities.EntryKindRecharge, "top up").
		Return(&entities.LedgerEntry{ID: 2}, nil)
	accountRepo.On("GetByID", mock.Anything, int64(1)).Return(testAccount(1, 1500), nil)

	account, err := service.Recharge(context.Background(), 1, amount, "top up")

	require.NoError(t, err)
	assert.Equal(t, entities.NewAmountFromCents(1500), account.Balance)
}

func TestAccountService_Recharge_RejectsNonPositive(t *testing.T) {
	t.Parallel()

	service, _, ledgerService := newAccountService(t)

	_, err := service.Recharge(context.Background(), 1, entities.NewAmountFromCents(-100), "")
	assert.Error(t, err)

	_, err = service.Recharge(context.Background(), 1, entities.NewAmountFromCents(0), "")
	assert.Error(t, err)

	ledgerService.AssertNotCalled(t, "ApplyAndRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_Withdraw(t *testing.T) {
	t.Parallel()

	service, accountRepo, ledgerService := newAccountService(t)
	amount := entities.NewAmountFromCents(300)

	ledgerService.On("ApplyAndRecord", mock.Anything, int64(1), amount.Neg(), entities.EntryKindWithdraw, "withdraw").
		Return(&entities.LedgerEntry{ID: 3}, nil)
	accountRepo.On("GetByID", mock.Anything, int64(1)).Return(testAccount(1, 700), nil)

	account, err := service.Withdraw(context.Background(), 1, amount, "")

	require.NoError(t, err)
	assert.Equal(t, entities.NewAmountFromCents(700), account.Balance)
}

func TestAccountService_Withdraw_InsufficientFunds(t *testing.T) {
	t.Parallel()

	service, accountRepo, ledgerService := newAccountService(t)

	ledgerService.On("ApplyAndRecord", mock.Anything, int64(1), mock.Anything, entities.EntryKindWithdraw, mock.Anything).
		Return(nil, entities.ErrInsufficientFunds)

	_, err := service.Withdraw(context.Background(), 1, entities.NewAmountFromCents(5000), "")

	assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	accountRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
