package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"lotto/application"
	"lotto/config"
	"lotto/database"
	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/services"
	"lotto/repository"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// Seed loads the standard lottery types and demo accounts. Re-running is
// safe; existing rows are left alone.
func Seed(ctx context.Context) error {
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	uowFactory := repository.NewUnitOfWorkFactory(db, events.NewBus())
	drawEngine := services.NewDrawEngine(rand.New(rand.NewSource(time.Now().UnixNano())), services.DefaultPrizeTable)
	app := application.NewApp(uowFactory, drawEngine, services.NewTicketNumberGenerator())

	types := []*entities.LotteryType{
		{
			Name:         "six-of-33",
			Description:  "pick 6 numbers from 1-33",
			Price:        entities.NewAmountFromCents(200),
			MaxNumber:    33,
			NumbersCount: 6,
			IsActive:     true,
		},
		{
			Name:         "five-of-35",
			Description:  "pick 5 numbers from 1-35",
			Price:        entities.NewAmountFromCents(200),
			MaxNumber:    35,
			NumbersCount: 5,
			IsActive:     true,
		},
		{
			Name:         "three-of-10",
			Description:  "pick 3 numbers from 1-10",
			Price:        entities.NewAmountFromCents(200),
			MaxNumber:    10,
			NumbersCount: 3,
			IsActive:     true,
		},
	}

	err = db.WithTransaction(ctx, func(tx pgx.Tx) error {
		typeRepo := repository.NewLotteryTypeRepository(tx)
		for _, lt := range types {
			_, err := typeRepo.GetByName(ctx, lt.Name)
			if err == nil {
				continue
			}
			if !errors.Is(err, entities.ErrNotFound) {
				return fmt.Errorf("failed to check lottery type %q: %w", lt.Name, err)
			}
			if err := typeRepo.Create(ctx, lt); err != nil {
				return fmt.Errorf("failed to seed lottery type %q: %w", lt.Name, err)
			}
			log.WithField("name", lt.Name).Info("Seeded lottery type")
		}
		return nil
	})
	if err != nil {
		return err
	}

	accounts := []struct {
		username string
		balance  entities.Amount
	}{
		{"admin", entities.NewAmountFromCents(1000000)},
		{"player", entities.NewAmountFromCents(50000)},
	}

	for _, a := range accounts {
		if _, err := app.GetAccountByUsername(ctx, a.username); err == nil {
			continue
		} else if !errors.Is(err, entities.ErrNotFound) {
			return fmt.Errorf("failed to check account %q: %w", a.username, err)
		}
		if _, err := app.CreateAccount(ctx, a.username, a.balance); err != nil {
			return fmt.Errorf("failed to seed account %q: %w", a.username, err)
		}
		log.WithFields(log.Fields{
			"username": a.username,
			"balance":  a.balance,
		}).Info("Seeded account")
	}

	return nil
}
