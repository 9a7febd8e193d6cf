package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"lotto/application"
	"lotto/config"
	"lotto/database"
	"lotto/domain/events"
	"lotto/domain/services"
	"lotto/repository"

	log "github.com/sirupsen/logrus"
)

// CreateAccount provisions an account with the configured starting balance
func CreateAccount(ctx context.Context, username string) error {
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	uowFactory := repository.NewUnitOfWorkFactory(db, events.NewBus())
	drawEngine := services.NewDrawEngine(rand.New(rand.NewSource(time.Now().UnixNano())), services.DefaultPrizeTable)
	app := application.NewApp(uowFactory, drawEngine, services.NewTicketNumberGenerator())

	account, err := app.CreateAccount(ctx, username, cfg.StartingBalance)
	if err != nil {
		return fmt.Errorf("failed to create account %q: %w", username, err)
	}

	log.WithFields(log.Fields{
		"accountID": account.ID,
		"username":  account.Username,
		"balance":   account.Balance,
	}).Info("Account created")
	return nil
}
