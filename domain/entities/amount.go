package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a fixed-point monetary value held as a count of cents.
// Every balance, price, prize and ledger amount in the system uses this
// type; float arithmetic never touches money.
type Amount int64

// NewAmountFromCents builds an Amount from a raw cent count.
func NewAmountFromCents(cents int64) Amount {
	return Amount(cents)
}

// ParseAmount parses a decimal string such as "2.00" or "-0.50" into an
// Amount. At most two fractional digits are accepted.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	whole := s
	frac := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole = s[:idx]
		frac = s[idx+1:]
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	// Both parts must be plain digits; signs and repeated dots are rejected
	// here rather than left to ParseInt.
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two fractional digits", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	wholeCents, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	fracCents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	cents := wholeCents*100 + fracCents
	if negative {
		cents = -cents
	}
	return Amount(cents), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Cents returns the raw cent count.
func (a Amount) Cents() int64 {
	return int64(a)
}

// MulInt multiplies the amount by an integer factor.
func (a Amount) MulInt(n int64) Amount {
	return Amount(int64(a) * n)
}

// Neg returns the amount with its sign flipped.
func (a Amount) Neg() Amount {
	return -a
}

// Abs returns the magnitude of the amount.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// IsNegative reports whether the amount is below zero.
func (a Amount) IsNegative() bool {
	return a < 0
}

// IsPositive reports whether the amount is above zero.
func (a Amount) IsPositive() bool {
	return a > 0
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a == 0
}

// String renders the amount as a decimal string, e.g. "12.34" or "-0.05".
func (a Amount) String() string {
	cents := int64(a)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
