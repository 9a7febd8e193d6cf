package entities

import "errors"

// Domain error taxonomy. Orchestration code wraps these with context via
// fmt.Errorf("...: %w", ...) and callers test with errors.Is.
var (
	// ErrInvalidSelection rejects a number selection of the wrong size,
	// range or with repeated values.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrInsufficientFunds rejects a balance mutation that would take the
	// account below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAlreadyDrawn rejects drawing winning numbers for a draw that has
	// already been drawn.
	ErrAlreadyDrawn = errors.New("draw already drawn")

	// ErrAlreadyClaimed rejects claiming a prize a second time.
	ErrAlreadyClaimed = errors.New("ticket already claimed")

	// ErrNotOwner rejects a claim by someone other than the ticket holder.
	ErrNotOwner = errors.New("ticket not owned by account")

	// ErrNotWinning rejects a claim on a ticket that did not win.
	ErrNotWinning = errors.New("ticket is not winning")

	// ErrNotFound reports a missing entity.
	ErrNotFound = errors.New("not found")

	// ErrGenerationExhausted reports that ticket number generation kept
	// colliding past the retry budget. Indicates an entropy anomaly.
	ErrGenerationExhausted = errors.New("ticket number generation exhausted")

	// ErrConcurrencyConflict reports that an operation lost transaction
	// conflicts past the retry budget and should be resubmitted.
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// ErrDuplicateTicketNumber is returned by the ticket repository when
	// the unique ticket_number constraint fires. Purchase regenerates and
	// retries on it.
	ErrDuplicateTicketNumber = errors.New("duplicate ticket number")

	// ErrDuplicateDrawNumber is returned by the draw repository when the
	// (lottery_type, draw_number) unique constraint fires. Open-draw
	// resolution retries on it.
	ErrDuplicateDrawNumber = errors.New("duplicate draw number")
)
