package services

import (
	"math/rand"
	"sort"
	"sync"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
)

// PrizeTable maps match counts to prize multipliers of the ticket price.
// Counts above six pay the six-or-more tier; below three pay nothing.
type PrizeTable struct {
	Three   int64
	Four    int64
	Five    int64
	SixPlus int64
}

// DefaultPrizeTable is the standard payout schedule
var DefaultPrizeTable = PrizeTable{
	Three:   10,
	Four:    50,
	Five:    200,
	SixPlus: 1000,
}

// MultiplierFor returns the price multiplier for a match count
func (p PrizeTable) MultiplierFor(matches int) int64 {
	switch {
	case matches >= 6:
		return p.SixPlus
	case matches == 5:
		return p.Five
	case matches == 4:
		return p.Four
	case matches == 3:
		return p.Three
	default:
		return 0
	}
}

// drawEngine implements the pure number mechanics shared by draws and
// auto-selected tickets
type drawEngine struct {
	mu     sync.Mutex
	rng    *rand.Rand
	prizes PrizeTable
}

// NewDrawEngine creates a draw engine around the given random source.
// Tests pass a fixed seed to make drawn numbers reproducible.
func NewDrawEngine(rng *rand.Rand, prizes PrizeTable) interfaces.DrawEngine {
	return &drawEngine{
		rng:    rng,
		prizes: prizes,
	}
}

// DrawWinningNumbers produces a sorted winning set for the lottery type
func (e *drawEngine) DrawWinningNumbers(lt *entities.LotteryType) []int64 {
	return e.sample(lt.MaxNumber, lt.NumbersCount)
}

// RandomSelection produces a sorted random player selection
func (e *drawEngine) RandomSelection(lt *entities.LotteryType) []int64 {
	return e.sample(lt.MaxNumber, lt.NumbersCount)
}

// sample picks count distinct numbers from [1, max] via a partial
// Fisher-Yates shuffle and returns them sorted ascending
func (e *drawEngine) sample(max int64, count int) []int64 {
	pool := make([]int64, max)
	for i := range pool {
		pool[i] = int64(i) + 1
	}

	e.mu.Lock()
	for i := 0; i < count; i++ {
		j := i + e.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	e.mu.Unlock()

	picked := pool[:count]
	sort.Slice(picked, func(i, j int) bool { return picked[i] < picked[j] })
	return picked
}

// ValidateSelection checks count, range and uniqueness of a manual selection
func (e *drawEngine) ValidateSelection(lt *entities.LotteryType, selection []int64) error {
	if len(selection) != lt.NumbersCount {
		return entities.ErrInvalidSelection
	}
	seen := make(map[int64]struct{}, len(selection))
	for _, n := range selection {
		if n < 1 || n > lt.MaxNumber {
			return entities.ErrInvalidSelection
		}
		if _, dup := seen[n]; dup {
			return entities.ErrInvalidSelection
		}
		seen[n] = struct{}{}
	}
	return nil
}

// MatchCount returns how many selected numbers appear in the winning set
func (e *drawEngine) MatchCount(selected, winning []int64) int {
	winningSet := make(map[int64]struct{}, len(winning))
	for _, n := range winning {
		winningSet[n] = struct{}{}
	}
	matches := 0
	for _, n := range selected {
		if _, ok := winningSet[n]; ok {
			matches++
		}
	}
	return matches
}

// PrizeFor returns the prize for a match count at the type's ticket price
func (e *drawEngine) PrizeFor(lt *entities.LotteryType, matches int) entities.Amount {
	return lt.Price.MulInt(e.prizes.MultiplierFor(matches))
}
