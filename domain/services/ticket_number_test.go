package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketNumberGenerator_Format(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 9, 1, 12, 30, 45, 0, time.UTC)
	gen := NewTicketNumberGeneratorAt(func() time.Time { return fixed })

	number, err := gen.Generate()

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^T20260901123045\d{6}$`), number)
	assert.Len(t, number, 21)
}

func TestTicketNumberGenerator_UsesUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+8", 8*3600)
	fixed := time.Date(2026, 9, 1, 20, 0, 0, 0, loc) // 12:00 UTC
	gen := NewTicketNumberGeneratorAt(func() time.Time { return fixed })

	number, err := gen.Generate()

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^T20260901120000\d{6}$`), number)
}

func TestTicketNumberGenerator_WallClock(t *testing.T) {
	t.Parallel()

	gen := NewTicketNumberGenerator()

	number, err := gen.Generate()

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^T\d{20}$`), number)
}
