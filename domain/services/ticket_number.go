package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"lotto/domain/interfaces"
)

const ticketSuffixDigits = 6

var ticketSuffixBound = big.NewInt(1000000)

// ticketNumberGenerator produces candidate ticket numbers of the form
// T<UTC timestamp><6 random digits>. Collisions are possible and are
// resolved by the unique constraint at persistence.
type ticketNumberGenerator struct {
	now func() time.Time
}

// NewTicketNumberGenerator creates a generator using the wall clock
func NewTicketNumberGenerator() interfaces.TicketNumberGenerator {
	return &ticketNumberGenerator{now: time.Now}
}

// NewTicketNumberGeneratorAt creates a generator with an injected clock,
// for tests that need deterministic timestamp components
func NewTicketNumberGeneratorAt(now func() time.Time) interfaces.TicketNumberGenerator {
	return &ticketNumberGenerator{now: now}
}

// Generate returns one candidate ticket number
func (g *ticketNumberGenerator) Generate() (string, error) {
	suffix, err := rand.Int(rand.Reader, ticketSuffixBound)
	if err != nil {
		return "", fmt.Errorf("failed to generate ticket number suffix: %w", err)
	}
	ts := g.now().UTC().Format("20060102150405")
	return fmt.Sprintf("T%s%0*d", ts, ticketSuffixDigits, suffix.Int64()), nil
}
