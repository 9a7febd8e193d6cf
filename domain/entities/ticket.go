package entities

import "time"

// Ticket is a purchased number selection against a draw. TicketNumber is
// globally unique. LedgerEntryID references the ledger entry that paid
// for the ticket.
type Ticket struct {
	ID              int64     `db:"id"`
	DrawID          int64     `db:"draw_id"`
	AccountID       int64     `db:"account_id"`
	TicketNumber    string    `db:"ticket_number"`
	SelectedNumbers []int64   `db:"selected_numbers"`
	IsAutoSelect    bool      `db:"is_auto_select"`
	PurchasedAt     time.Time `db:"purchased_at"`
	IsWinning       bool      `db:"is_winning"`
	WinningAmount   Amount    `db:"winning_amount"`
	IsClaimed       bool      `db:"is_claimed"`
	LedgerEntryID   int64     `db:"ledger_entry_id"`
}

// MarkWinning records a settled prize. Win status never reverts once set.
func (t *Ticket) MarkWinning(amount Amount) {
	t.IsWinning = true
	t.WinningAmount = amount
}

// MarkClaimed flags the prize as paid out.
func (t *Ticket) MarkClaimed() {
	t.IsClaimed = true
}

// IsClaimable reports whether the ticket holds an unclaimed prize.
func (t *Ticket) IsClaimable() bool {
	return t.IsWinning && !t.IsClaimed
}
