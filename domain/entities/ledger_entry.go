package entities

import (
	"errors"
	"time"
)

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	EntryKindRecharge EntryKind = "recharge"
	EntryKindPurchase EntryKind = "purchase"
	EntryKindWinning  EntryKind = "winning"
	EntryKindWithdraw EntryKind = "withdraw"
)

// IsCredit reports whether the kind adds money to the account.
func (k EntryKind) IsCredit() bool {
	return k == EntryKindRecharge || k == EntryKindWinning
}

// IsDebit reports whether the kind removes money from the account.
func (k EntryKind) IsDebit() bool {
	return k == EntryKindPurchase || k == EntryKindWithdraw
}

// IsValid reports whether the kind is one of the known values.
func (k EntryKind) IsValid() bool {
	switch k {
	case EntryKindRecharge, EntryKindPurchase, EntryKindWinning, EntryKindWithdraw:
		return true
	}
	return false
}

func (k EntryKind) String() string {
	return string(k)
}

// LedgerEntry is one immutable, append-only record of a balance change.
// Amount is the magnitude of the change; direction follows from Kind.
// Every balance mutation pairs with exactly one entry created in the same
// transaction.
type LedgerEntry struct {
	ID          int64     `db:"id"`
	AccountID   int64     `db:"account_id"`
	Kind        EntryKind `db:"entry_type"`
	Amount      Amount    `db:"amount"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// Validate performs basic shape validation before recording.
func (e *LedgerEntry) Validate() error {
	if !e.Kind.IsValid() {
		return errors.New("unknown ledger entry kind")
	}
	if e.Amount.IsZero() {
		return errors.New("ledger entry amount cannot be zero")
	}
	if e.Amount.IsNegative() {
		return errors.New("ledger entry amount must be a magnitude")
	}
	return nil
}
