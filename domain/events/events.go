package events

import (
	"lotto/domain/entities"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChanged  EventType = "balance_changed"
	EventTypeAccountCreated  EventType = "account_created"
	EventTypeTicketPurchased EventType = "ticket_purchased"
	EventTypeDrawCompleted   EventType = "draw_completed"
	EventTypePrizeClaimed    EventType = "prize_claimed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangedEvent represents a balance change that occurred
type BalanceChangedEvent struct {
	AccountID    int64
	OldBalance   entities.Amount
	NewBalance   entities.Amount
	EntryKind    entities.EntryKind
	ChangeAmount entities.Amount
}

func (e BalanceChangedEvent) Type() EventType {
	return EventTypeBalanceChanged
}

// AccountCreatedEvent represents a new account creation
type AccountCreatedEvent struct {
	AccountID      int64
	Username       string
	InitialBalance entities.Amount
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// TicketPurchasedEvent represents a ticket that was sold
type TicketPurchasedEvent struct {
	TicketID     int64
	DrawID       int64
	AccountID    int64
	TicketNumber string
	Price        entities.Amount
}

func (e TicketPurchasedEvent) Type() EventType {
	return EventTypeTicketPurchased
}

// DrawCompletedEvent represents a draw whose winning numbers were fixed
type DrawCompletedEvent struct {
	DrawID         int64
	LotteryTypeID  int64
	DrawNumber     string
	WinningNumbers []int64
	TicketsSettled int
	WinnersCount   int
}

func (e DrawCompletedEvent) Type() EventType {
	return EventTypeDrawCompleted
}

// PrizeClaimedEvent represents a winning ticket that was paid out
type PrizeClaimedEvent struct {
	TicketID  int64
	DrawID    int64
	AccountID int64
	Amount    entities.Amount
}

func (e PrizeClaimedEvent) Type() EventType {
	return EventTypePrizeClaimed
}
