package entities

import "time"

// LotteryType describes one kind of lottery on sale: how much a ticket
// costs and what a valid number selection looks like.
type LotteryType struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	Price        Amount    `db:"price"`
	MaxNumber    int64     `db:"max_number"`    // selections draw from [1, MaxNumber]
	NumbersCount int       `db:"numbers_count"` // size of a valid selection
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
}
