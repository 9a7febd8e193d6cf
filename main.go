package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lotto/cmd"
	"lotto/config"
	"lotto/database"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Optional .env for local development; environment variables win
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded configuration from .env")
	}

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.Fatal("Migration error: ", err)
		}
		return
	}

	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := cmd.Seed(context.Background()); err != nil {
			log.Fatal("Seed error: ", err)
		}
		return
	}

	if len(os.Args) > 1 && os.Args[1] == "create-account" {
		if len(os.Args) < 3 {
			log.Fatal("usage: lotto create-account <username>")
		}
		if err := cmd.CreateAccount(context.Background(), os.Args[2]); err != nil {
			log.Fatal("Account creation error: ", err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error: ", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: lotto migrate [up|down|status] [args...]")
	}

	databaseURL := config.Get().GetDatabaseURL()

	switch os.Args[2] {
	case "up":
		return database.MigrateUp(databaseURL)
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(databaseURL, steps)
	case "status":
		return database.MigrateStatus(databaseURL)
	default:
		return fmt.Errorf("unknown migration command: %s", os.Args[2])
	}
}
