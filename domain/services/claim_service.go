package services

import (
	"context"
	"fmt"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// claimService pays out winning tickets
type claimService struct {
	ticketRepo     interfaces.TicketRepository
	drawRepo       interfaces.DrawRepository
	ledgerService  interfaces.LedgerService
	eventPublisher interfaces.EventPublisher
}

// NewClaimService creates a new claim service
func NewClaimService(
	ticketRepo interfaces.TicketRepository,
	drawRepo interfaces.DrawRepository,
	ledgerService interfaces.LedgerService,
	eventPublisher interfaces.EventPublisher,
) interfaces.ClaimService {
	return &claimService{
		ticketRepo:     ticketRepo,
		drawRepo:       drawRepo,
		ledgerService:  ledgerService,
		eventPublisher: eventPublisher,
	}
}

// ClaimPrize credits a winning ticket's prize to its owner. The ticket row
// is locked first, so concurrent claims of the same ticket serialize and
// the loser sees is_claimed already set.
func (s *claimService) ClaimPrize(ctx context.Context, accountID, ticketID int64) (*entities.Ticket, error) {
	ticket, err := s.ticketRepo.GetByIDForUpdate(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock ticket: %w", err)
	}

	if ticket.AccountID != accountID {
		return nil, entities.ErrNotOwner
	}
	if !ticket.IsWinning {
		return nil, entities.ErrNotWinning
	}
	if ticket.IsClaimed {
		return nil, entities.ErrAlreadyClaimed
	}

	draw, err := s.drawRepo.GetByID(ctx, ticket.DrawID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draw: %w", err)
	}

	if _, err := s.ledgerService.ApplyAndRecord(ctx, accountID, ticket.WinningAmount, entities.EntryKindWinning,
		fmt.Sprintf("prize for ticket %s, draw %s", ticket.TicketNumber, draw.DrawNumber)); err != nil {
		return nil, err
	}

	ticket.MarkClaimed()
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to mark ticket claimed: %w", err)
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(events.PrizeClaimedEvent{
			TicketID:  ticket.ID,
			DrawID:    ticket.DrawID,
			AccountID: accountID,
			Amount:    ticket.WinningAmount,
		}); err != nil {
			log.WithError(err).Error("Failed to publish prize claimed event")
		}
	}

	log.WithFields(log.Fields{
		"accountID":    accountID,
		"ticketNumber": ticket.TicketNumber,
		"amount":       ticket.WinningAmount,
	}).Info("Prize claimed")

	return ticket, nil
}
