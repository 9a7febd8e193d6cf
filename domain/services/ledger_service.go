package services

import (
	"context"
	"fmt"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// ledgerService implements atomic balance mutations paired with ledger entries
type ledgerService struct {
	accountRepo    interfaces.AccountRepository
	ledgerRepo     interfaces.LedgerEntryRepository
	eventPublisher interfaces.EventPublisher
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	accountRepo interfaces.AccountRepository,
	ledgerRepo interfaces.LedgerEntryRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.LedgerService {
	return &ledgerService{
		accountRepo:    accountRepo,
		ledgerRepo:     ledgerRepo,
		eventPublisher: eventPublisher,
	}
}

// ApplyAndRecord applies a signed delta to the account balance and records
// the matching ledger entry. The account row is locked for the rest of the
// transaction, so concurrent mutations on the same account serialize.
func (s *ledgerService) ApplyAndRecord(ctx context.Context, accountID int64, delta entities.Amount, kind entities.EntryKind, description string) (*entities.LedgerEntry, error) {
	if delta.IsZero() {
		return nil, fmt.Errorf("balance delta cannot be zero")
	}
	if kind.IsCredit() && delta.IsNegative() {
		return nil, fmt.Errorf("%s entries must credit the account", kind)
	}
	if kind.IsDebit() && delta.IsPositive() {
		return nil, fmt.Errorf("%s entries must debit the account", kind)
	}

	account, err := s.accountRepo.GetByIDForUpdate(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}

	oldBalance := account.Balance
	newBalance := oldBalance + delta
	if newBalance.IsNegative() {
		return nil, entities.ErrInsufficientFunds
	}

	account.Balance = newBalance
	switch kind {
	case entities.EntryKindPurchase:
		account.TotalSpent += delta.Abs()
	case entities.EntryKindWinning:
		account.TotalWon += delta
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account balance: %w", err)
	}

	entry := &entities.LedgerEntry{
		AccountID:   accountID,
		Kind:        kind,
		Amount:      delta.Abs(),
		Description: description,
	}
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ledger entry: %w", err)
	}
	if err := s.ledgerRepo.Record(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record ledger entry: %w", err)
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(events.BalanceChangedEvent{
			AccountID:    accountID,
			OldBalance:   oldBalance,
			NewBalance:   newBalance,
			EntryKind:    kind,
			ChangeAmount: delta,
		}); err != nil {
			log.WithError(err).Error("Failed to publish balance changed event")
		}
	}

	log.WithFields(log.Fields{
		"accountID":  accountID,
		"kind":       kind,
		"delta":      delta,
		"newBalance": newBalance,
	}).Debug("Applied balance change")

	return entry, nil
}
