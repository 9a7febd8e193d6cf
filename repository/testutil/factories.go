package testutil

import (
	"time"

	"lotto/domain/entities"
)

// SixOfThirtyThree returns an unsaved standard lottery type
func SixOfThirtyThree() *entities.LotteryType {
	return &entities.LotteryType{
		Name:         "six-of-33",
		Description:  "pick 6 numbers from 1-33",
		Price:        entities.NewAmountFromCents(200),
		MaxNumber:    33,
		NumbersCount: 6,
		IsActive:     true,
	}
}

// ThreeOfTen returns an unsaved small lottery type, handy for tests that
// need frequent winners
func ThreeOfTen() *entities.LotteryType {
	return &entities.LotteryType{
		Name:         "three-of-10",
		Description:  "pick 3 numbers from 1-10",
		Price:        entities.NewAmountFromCents(200),
		MaxNumber:    10,
		NumbersCount: 3,
		IsActive:     true,
	}
}

// NewDraw returns an unsaved open draw for a lottery type
func NewDraw(lotteryTypeID int64, drawNumber string) *entities.Draw {
	return &entities.Draw{
		LotteryTypeID: lotteryTypeID,
		DrawNumber:    drawNumber,
		DrawDate:      time.Now().UTC().Add(time.Hour),
	}
}

// NewTicket returns an unsaved ticket
func NewTicket(drawID, accountID, ledgerEntryID int64, number string, selection []int64) *entities.Ticket {
	return &entities.Ticket{
		DrawID:          drawID,
		AccountID:       accountID,
		TicketNumber:    number,
		SelectedNumbers: selection,
		LedgerEntryID:   ledgerEntryID,
	}
}
