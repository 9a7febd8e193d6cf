package services

import (
	"math/rand"
	"sort"
	"testing"

	"lotto/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(seed int64) *drawEngine {
	return NewDrawEngine(rand.New(rand.NewSource(seed)), DefaultPrizeTable).(*drawEngine)
}

func sixOfThirtyThree() *entities.LotteryType {
	return &entities.LotteryType{
		ID:           1,
		Name:         "six-of-33",
		Price:        entities.NewAmountFromCents(200),
		MaxNumber:    33,
		NumbersCount: 6,
		IsActive:     true,
	}
}

func TestDrawEngine_DrawWinningNumbers(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(1)
	lt := sixOfThirtyThree()

	for i := 0; i < 100; i++ {
		numbers := engine.DrawWinningNumbers(lt)
		require.Len(t, numbers, lt.NumbersCount)

		assert.True(t, sort.SliceIsSorted(numbers, func(i, j int) bool { return numbers[i] < numbers[j] }))

		seen := make(map[int64]struct{})
		for _, n := range numbers {
			assert.GreaterOrEqual(t, n, int64(1))
			assert.LessOrEqual(t, n, lt.MaxNumber)
			_, dup := seen[n]
			assert.False(t, dup, "duplicate number %d", n)
			seen[n] = struct{}{}
		}
	}
}

func TestDrawEngine_DrawWinningNumbers_Deterministic(t *testing.T) {
	t.Parallel()

	lt := sixOfThirtyThree()
	first := newTestEngine(42).DrawWinningNumbers(lt)
	second := newTestEngine(42).DrawWinningNumbers(lt)

	assert.Equal(t, first, second)
}

func TestDrawEngine_ValidateSelection(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(1)
	lt := sixOfThirtyThree()

	tests := []struct {
		name      string
		selection []int64
		wantErr   error
	}{
		{
			name:      "valid selection",
			selection: []int64{1, 5, 12, 20, 28, 33},
			wantErr:   nil,
		},
		{
			name:      "too few numbers",
			selection: []int64{1, 2, 3},
			wantErr:   entities.ErrInvalidSelection,
		},
		{
			name:      "too many numbers",
			selection: []int64{1, 2, 3, 4, 5, 6, 7},
			wantErr:   entities.ErrInvalidSelection,
		},
		{
			name:      "number below range",
			selection: []int64{0, 2, 3, 4, 5, 6},
			wantErr:   entities.ErrInvalidSelection,
		},
		{
			name:      "number above range",
			selection: []int64{1, 2, 3, 4, 5, 34},
			wantErr:   entities.ErrInvalidSelection,
		},
		{
			name:      "duplicate number",
			selection: []int64{1, 2, 3, 4, 5, 5},
			wantErr:   entities.ErrInvalidSelection,
		},
		{
			name:      "empty selection",
			selection: nil,
			wantErr:   entities.ErrInvalidSelection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.ValidateSelection(lt, tt.selection)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDrawEngine_MatchCount(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(1)
	winning := []int64{3, 7, 12, 19, 25, 31}

	tests := []struct {
		name     string
		selected []int64
		want     int
	}{
		{"no matches", []int64{1, 2, 4, 5, 6, 8}, 0},
		{"three matches", []int64{3, 7, 12, 20, 28, 33}, 3},
		{"all match", []int64{3, 7, 12, 19, 25, 31}, 6},
		{"empty selection", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.MatchCount(tt.selected, winning))
		})
	}
}

func TestDrawEngine_PrizeFor(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(1)
	lt := sixOfThirtyThree() // price 2.00

	tests := []struct {
		matches int
		want    entities.Amount
	}{
		{0, entities.NewAmountFromCents(0)},
		{1, entities.NewAmountFromCents(0)},
		{2, entities.NewAmountFromCents(0)},
		{3, entities.NewAmountFromCents(2000)},
		{4, entities.NewAmountFromCents(10000)},
		{5, entities.NewAmountFromCents(40000)},
		{6, entities.NewAmountFromCents(200000)},
		{7, entities.NewAmountFromCents(200000)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.PrizeFor(lt, tt.matches), "matches=%d", tt.matches)
	}
}

func TestDrawEngine_RandomSelection_ValidatesClean(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(7)
	lt := sixOfThirtyThree()

	for i := 0; i < 50; i++ {
		selection := engine.RandomSelection(lt)
		assert.NoError(t, engine.ValidateSelection(lt, selection))
	}
}
