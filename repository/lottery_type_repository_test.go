package repository

import (
	"context"
	"testing"

	"lotto/domain/entities"
	"lotto/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotteryTypeRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewLotteryTypeRepository(testDB.DB).(*LotteryTypeRepository)

	lt := createLotteryType(t, repo, testutil.SixOfThirtyThree())
	assert.NotZero(t, lt.ID)

	got, err := repo.GetByName(ctx, "six-of-33")
	require.NoError(t, err)
	assert.Equal(t, lt.ID, got.ID)
	assert.Equal(t, entities.NewAmountFromCents(200), got.Price)
	assert.Equal(t, int64(33), got.MaxNumber)
	assert.Equal(t, 6, got.NumbersCount)

	_, err = repo.GetByName(ctx, "missing")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestLotteryTypeRepository_ListActive(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewLotteryTypeRepository(testDB.DB).(*LotteryTypeRepository)

	active := createLotteryType(t, repo, testutil.SixOfThirtyThree())
	retired := testutil.ThreeOfTen()
	retired.IsActive = false
	createLotteryType(t, repo, retired)

	types, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, active.ID, types[0].ID)
}

func TestLotteryTypeRepository_Update(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	repo := NewLotteryTypeRepository(testDB.DB).(*LotteryTypeRepository)
	lt := createLotteryType(t, repo, testutil.SixOfThirtyThree())

	lt.Price = entities.NewAmountFromCents(300)
	lt.IsActive = false
	require.NoError(t, repo.Update(ctx, lt))

	got, err := repo.GetByID(ctx, lt.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.NewAmountFromCents(300), got.Price)
	assert.False(t, got.IsActive)
}
