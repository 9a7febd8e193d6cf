package services

import (
	"context"
	"fmt"
	"strings"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// accountService implements account lifecycle and funding
type accountService struct {
	accountRepo    interfaces.AccountRepository
	ledgerService  interfaces.LedgerService
	eventPublisher interfaces.EventPublisher
}

// NewAccountService creates a new account service
func NewAccountService(
	accountRepo interfaces.AccountRepository,
	ledgerService interfaces.LedgerService,
	eventPublisher interfaces.EventPublisher,
) interfaces.AccountService {
	return &accountService{
		accountRepo:    accountRepo,
		ledgerService:  ledgerService,
		eventPublisher: eventPublisher,
	}
}

// CreateAccount creates an account at zero balance and funds any starting
// balance through a recharge entry, so the ledger explains the full balance
func (s *accountService) CreateAccount(ctx context.Context, username string, startingBalance entities.Amount) (*entities.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	if startingBalance.IsNegative() {
		return nil, fmt.Errorf("starting balance cannot be negative")
	}

	account := &entities.Account{Username: username}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if startingBalance.IsPositive() {
		if _, err := s.ledgerService.ApplyAndRecord(ctx, account.ID, startingBalance, entities.EntryKindRecharge, "initial balance"); err != nil {
			return nil, err
		}
		account.Balance = startingBalance
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(events.AccountCreatedEvent{
			AccountID:      account.ID,
			Username:       username,
			InitialBalance: startingBalance,
		}); err != nil {
			log.WithError(err).Error("Failed to publish account created event")
		}
	}

	log.WithFields(log.Fields{
		"accountID":       account.ID,
		"username":        username,
		"startingBalance": startingBalance,
	}).Info("Account created")

	return account, nil
}

// Recharge credits money onto an account
func (s *accountService) Recharge(ctx context.Context, accountID int64, amount entities.Amount, description string) (*entities.Account, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("recharge amount must be positive")
	}
	if description == "" {
		description = "recharge"
	}
	if _, err := s.ledgerService.ApplyAndRecord(ctx, accountID, amount, entities.EntryKindRecharge, description); err != nil {
		return nil, err
	}
	return s.accountRepo.GetByID(ctx, accountID)
}

// Withdraw debits money from an account
func (s *accountService) Withdraw(ctx context.Context, accountID int64, amount entities.Amount, description string) (*entities.Account, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("withdraw amount must be positive")
	}
	if description == "" {
		description = "withdraw"
	}
	if _, err := s.ledgerService.ApplyAndRecord(ctx, accountID, amount.Neg(), entities.EntryKindWithdraw, description); err != nil {
		return nil, err
	}
	return s.accountRepo.GetByID(ctx, accountID)
}
