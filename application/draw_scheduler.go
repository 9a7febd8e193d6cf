package application

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// DrawScheduler executes due draws on a cron schedule. Multiple instances
// may run against the same database; the draw row lock makes one winner
// per draw and the rest back off.
type DrawScheduler struct {
	app      *App
	schedule string
	cron     *cron.Cron
}

// NewDrawScheduler creates a scheduler with a standard 5-field cron spec
func NewDrawScheduler(app *App, schedule string) *DrawScheduler {
	return &DrawScheduler{
		app:      app,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start registers the cron job and begins scheduling
func (s *DrawScheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		executed, err := s.app.ExecuteDueDraws(ctx)
		if err != nil {
			log.WithError(err).Error("Scheduled draw execution failed")
			return
		}
		if executed > 0 {
			log.WithField("executed", executed).Info("Executed due draws")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid draw schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	log.WithField("schedule", s.schedule).Info("Draw scheduler started")
	return nil
}

// Stop stops scheduling and waits for a running job to finish
func (s *DrawScheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	log.Info("Draw scheduler stopped")
}
