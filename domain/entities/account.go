package entities

import "time"

// Account holds one user's money. Balance never goes below zero at any
// observable instant; TotalSpent and TotalWon accumulate over the
// account's lifetime.
type Account struct {
	ID         int64     `db:"id"`
	Username   string    `db:"username"`
	Balance    Amount    `db:"balance"`
	TotalSpent Amount    `db:"total_spent"`
	TotalWon   Amount    `db:"total_won"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// CanAfford reports whether the balance covers the given price.
func (a *Account) CanAfford(price Amount) bool {
	return a.Balance >= price
}
