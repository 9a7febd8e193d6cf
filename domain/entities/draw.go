package entities

import "time"

// Draw represents one scheduled winning-number determination for a
// lottery type. DrawNumber is unique within the type.
type Draw struct {
	ID             int64     `db:"id"`
	LotteryTypeID  int64     `db:"lottery_type_id"`
	DrawNumber     string    `db:"draw_number"`
	DrawDate       time.Time `db:"draw_date"`
	WinningNumbers []int64   `db:"winning_numbers"` // empty until drawn
	IsDrawn        bool      `db:"is_drawn"`        // monotonic false -> true
	CreatedAt      time.Time `db:"created_at"`
}

// IsOpen reports whether tickets can still be sold against this draw.
func (d *Draw) IsOpen() bool {
	return !d.IsDrawn
}

// IsDue reports whether the draw is past its scheduled time and still open.
func (d *Draw) IsDue(now time.Time) bool {
	return !d.IsDrawn && !now.Before(d.DrawDate)
}

// MarkDrawn records the winning numbers and closes the draw. The caller
// must have verified IsDrawn is false; the winning set never changes
// afterwards.
func (d *Draw) MarkDrawn(winningNumbers []int64) {
	d.WinningNumbers = winningNumbers
	d.IsDrawn = true
}
