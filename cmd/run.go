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

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	eventBus := events.NewBus()
	registerEventLogging(eventBus)

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	drawEngine := services.NewDrawEngine(rand.New(rand.NewSource(time.Now().UnixNano())), services.DefaultPrizeTable)
	app := application.NewApp(uowFactory, drawEngine, services.NewTicketNumberGenerator())

	scheduler := application.NewDrawScheduler(app, cfg.DrawSchedule)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	log.WithField("environment", cfg.Environment).Info("Lottery service is running")
	<-ctx.Done()

	log.Info("Shutting down...")
	return nil
}

// registerEventLogging subscribes audit log handlers to domain events
func registerEventLogging(bus *events.Bus) {
	bus.Subscribe(events.EventTypeTicketPurchased, func(ctx context.Context, event events.Event) {
		e := event.(events.TicketPurchasedEvent)
		log.WithFields(log.Fields{
			"accountID":    e.AccountID,
			"ticketNumber": e.TicketNumber,
			"price":        e.Price,
		}).Info("Ticket sold")
	})

	bus.Subscribe(events.EventTypeDrawCompleted, func(ctx context.Context, event events.Event) {
		e := event.(events.DrawCompletedEvent)
		log.WithFields(log.Fields{
			"drawNumber":     e.DrawNumber,
			"winningNumbers": e.WinningNumbers,
			"winners":        e.WinnersCount,
		}).Info("Draw completed")
	})

	bus.Subscribe(events.EventTypePrizeClaimed, func(ctx context.Context, event events.Event) {
		e := event.(events.PrizeClaimedEvent)
		log.WithFields(log.Fields{
			"accountID": e.AccountID,
			"ticketID":  e.TicketID,
			"amount":    e.Amount,
		}).Info("Prize claimed")
	})
}
