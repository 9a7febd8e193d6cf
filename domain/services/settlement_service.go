package services

import (
	"context"
	"fmt"

	"lotto/domain/entities"
	"lotto/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// settlementService resolves tickets against completed draws. Settling is
// pure bookkeeping; prizes are only paid out when claimed.
type settlementService struct {
	drawRepo        interfaces.DrawRepository
	ticketRepo      interfaces.TicketRepository
	lotteryTypeRepo interfaces.LotteryTypeRepository
	drawEngine      interfaces.DrawEngine
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	drawRepo interfaces.DrawRepository,
	ticketRepo interfaces.TicketRepository,
	lotteryTypeRepo interfaces.LotteryTypeRepository,
	drawEngine interfaces.DrawEngine,
) interfaces.SettlementService {
	return &settlementService{
		drawRepo:        drawRepo,
		ticketRepo:      ticketRepo,
		lotteryTypeRepo: lotteryTypeRepo,
		drawEngine:      drawEngine,
	}
}

// SettleTicket settles one ticket against its draw. A ticket whose draw is
// still open is left untouched, and settling an already settled ticket
// recomputes the same outcome, so repeats are safe.
func (s *settlementService) SettleTicket(ctx context.Context, ticketID int64) (*interfaces.SettlementResult, error) {
	ticket, err := s.ticketRepo.GetByIDForUpdate(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock ticket: %w", err)
	}

	draw, err := s.drawRepo.GetByID(ctx, ticket.DrawID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draw: %w", err)
	}
	if !draw.IsDrawn {
		return &interfaces.SettlementResult{TicketID: ticket.ID}, nil
	}

	return s.settle(ctx, ticket, draw)
}

// SettleDraw settles every ticket of a completed draw
func (s *settlementService) SettleDraw(ctx context.Context, draw *entities.Draw) (*interfaces.DrawSettlement, error) {
	if !draw.IsDrawn {
		return nil, fmt.Errorf("draw %s has not completed", draw.DrawNumber)
	}

	tickets, err := s.ticketRepo.ListByDraw(ctx, draw.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list draw tickets: %w", err)
	}

	settlement := &interfaces.DrawSettlement{DrawID: draw.ID}
	for _, ticket := range tickets {
		result, err := s.settle(ctx, ticket, draw)
		if err != nil {
			return nil, fmt.Errorf("failed to settle ticket %s: %w", ticket.TicketNumber, err)
		}
		settlement.TicketsSettled++
		if result.IsWinning {
			settlement.Winners++
			settlement.TotalPrizes += result.WinningAmount
		}
	}

	log.WithFields(log.Fields{
		"drawNumber":     draw.DrawNumber,
		"ticketsSettled": settlement.TicketsSettled,
		"winners":        settlement.Winners,
		"totalPrizes":    settlement.TotalPrizes,
	}).Info("Draw settled")

	return settlement, nil
}

// SettleAccount settles all of an account's tickets whose draws completed
func (s *settlementService) SettleAccount(ctx context.Context, accountID int64) ([]*interfaces.SettlementResult, error) {
	tickets, err := s.ticketRepo.ListSettleableByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settleable tickets: %w", err)
	}

	results := make([]*interfaces.SettlementResult, 0, len(tickets))
	for _, ticket := range tickets {
		draw, err := s.drawRepo.GetByID(ctx, ticket.DrawID)
		if err != nil {
			return nil, fmt.Errorf("failed to get draw: %w", err)
		}
		result, err := s.settle(ctx, ticket, draw)
		if err != nil {
			return nil, fmt.Errorf("failed to settle ticket %s: %w", ticket.TicketNumber, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// settle computes the outcome for one ticket and persists it when the
// ticket turns out to be a newly discovered winner
func (s *settlementService) settle(ctx context.Context, ticket *entities.Ticket, draw *entities.Draw) (*interfaces.SettlementResult, error) {
	matches := s.drawEngine.MatchCount(ticket.SelectedNumbers, draw.WinningNumbers)
	result := &interfaces.SettlementResult{
		TicketID: ticket.ID,
		Matches:  matches,
	}

	if ticket.IsWinning {
		// Already settled as a winner; the recorded amount stands.
		result.IsWinning = true
		result.WinningAmount = ticket.WinningAmount
		return result, nil
	}

	lt, err := s.lotteryTypeRepo.GetByID(ctx, draw.LotteryTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery type: %w", err)
	}

	prize := s.drawEngine.PrizeFor(lt, matches)
	if prize.IsZero() {
		return result, nil
	}

	ticket.MarkWinning(prize)
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to mark ticket winning: %w", err)
	}

	result.IsWinning = true
	result.WinningAmount = prize
	return result, nil
}
