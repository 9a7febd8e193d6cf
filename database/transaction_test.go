package database_test

import (
	"context"
	"testing"

	"lotto/domain/entities"
	"lotto/repository"
	"lotto/repository/testutil"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTransaction_CommitsOnSuccess(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	err := testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
		return repository.NewLotteryTypeRepository(tx).Create(ctx, testutil.SixOfThirtyThree())
	})
	require.NoError(t, err)

	lt, err := repository.NewLotteryTypeRepository(testDB.DB).GetByName(ctx, "six-of-33")
	require.NoError(t, err)
	assert.True(t, lt.IsActive)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	err := testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := repository.NewLotteryTypeRepository(tx).Create(ctx, testutil.SixOfThirtyThree()); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = repository.NewLotteryTypeRepository(testDB.DB).GetByName(ctx, "six-of-33")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}
