package services

import (
	"context"
	"fmt"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// drawService executes draws: it fixes winning numbers exactly once per
// draw and settles the sold tickets in the same transaction
type drawService struct {
	drawRepo          interfaces.DrawRepository
	lotteryTypeRepo   interfaces.LotteryTypeRepository
	drawEngine        interfaces.DrawEngine
	settlementService interfaces.SettlementService
	eventPublisher    interfaces.EventPublisher
}

// NewDrawService creates a new draw service
func NewDrawService(
	drawRepo interfaces.DrawRepository,
	lotteryTypeRepo interfaces.LotteryTypeRepository,
	drawEngine interfaces.DrawEngine,
	settlementService interfaces.SettlementService,
	eventPublisher interfaces.EventPublisher,
) interfaces.DrawService {
	return &drawService{
		drawRepo:          drawRepo,
		lotteryTypeRepo:   lotteryTypeRepo,
		drawEngine:        drawEngine,
		settlementService: settlementService,
		eventPublisher:    eventPublisher,
	}
}

// ExecuteDraw draws winning numbers for an open draw. The draw row is
// locked first, so a concurrent executor observes is_drawn and backs off
// with entities.ErrAlreadyDrawn.
func (s *drawService) ExecuteDraw(ctx context.Context, drawID int64) (*interfaces.DrawResult, error) {
	draw, err := s.drawRepo.GetByIDForUpdate(ctx, drawID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock draw: %w", err)
	}
	if draw.IsDrawn {
		return nil, entities.ErrAlreadyDrawn
	}

	lt, err := s.lotteryTypeRepo.GetByID(ctx, draw.LotteryTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery type: %w", err)
	}

	draw.MarkDrawn(s.drawEngine.DrawWinningNumbers(lt))
	if err := s.drawRepo.Update(ctx, draw); err != nil {
		return nil, fmt.Errorf("failed to persist drawn numbers: %w", err)
	}

	settlement, err := s.settlementService.SettleDraw(ctx, draw)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(events.DrawCompletedEvent{
			DrawID:         draw.ID,
			LotteryTypeID:  draw.LotteryTypeID,
			DrawNumber:     draw.DrawNumber,
			WinningNumbers: draw.WinningNumbers,
			TicketsSettled: settlement.TicketsSettled,
			WinnersCount:   settlement.Winners,
		}); err != nil {
			log.WithError(err).Error("Failed to publish draw completed event")
		}
	}

	log.WithFields(log.Fields{
		"drawNumber":     draw.DrawNumber,
		"winningNumbers": draw.WinningNumbers,
		"ticketsSettled": settlement.TicketsSettled,
	}).Info("Draw executed")

	return &interfaces.DrawResult{Draw: draw, Settlement: settlement}, nil
}
