package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const (
	// maxTicketNumberAttempts bounds retries when a generated ticket
	// number collides with an existing one
	maxTicketNumberAttempts = 5

	// maxDrawResolveAttempts bounds retries when two purchases race to
	// create the same draw
	maxDrawResolveAttempts = 3

	// drawLeadTime is how far in the future a freshly opened draw is
	// scheduled
	drawLeadTime = time.Hour
)

// purchaseService implements ticket sales
type purchaseService struct {
	lotteryTypeRepo interfaces.LotteryTypeRepository
	drawRepo        interfaces.DrawRepository
	ticketRepo      interfaces.TicketRepository
	ledgerService   interfaces.LedgerService
	numberGen       interfaces.TicketNumberGenerator
	drawEngine      interfaces.DrawEngine
	eventPublisher  interfaces.EventPublisher
	now             func() time.Time
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	lotteryTypeRepo interfaces.LotteryTypeRepository,
	drawRepo interfaces.DrawRepository,
	ticketRepo interfaces.TicketRepository,
	ledgerService interfaces.LedgerService,
	numberGen interfaces.TicketNumberGenerator,
	drawEngine interfaces.DrawEngine,
	eventPublisher interfaces.EventPublisher,
) interfaces.PurchaseService {
	return &purchaseService{
		lotteryTypeRepo: lotteryTypeRepo,
		drawRepo:        drawRepo,
		ticketRepo:      ticketRepo,
		ledgerService:   ledgerService,
		numberGen:       numberGen,
		drawEngine:      drawEngine,
		eventPublisher:  eventPublisher,
		now:             time.Now,
	}
}

// PurchaseTicket sells one ticket. The price is debited before the ticket
// row exists, so an insufficient balance leaves no trace in the transaction.
func (s *purchaseService) PurchaseTicket(ctx context.Context, accountID, lotteryTypeID int64, selection []int64, autoSelect bool) (*entities.Ticket, error) {
	lt, err := s.lotteryTypeRepo.GetByID(ctx, lotteryTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery type: %w", err)
	}
	if !lt.IsActive {
		return nil, fmt.Errorf("lottery type %q is not on sale", lt.Name)
	}

	if autoSelect {
		selection = s.drawEngine.RandomSelection(lt)
	} else if err := s.drawEngine.ValidateSelection(lt, selection); err != nil {
		return nil, err
	}

	// The draw row is not locked here. A ticket can land in a draw whose
	// execution commits concurrently; on-demand settlement picks it up.
	draw, err := s.resolveOpenDraw(ctx, lt)
	if err != nil {
		return nil, err
	}
	if !draw.IsOpen() {
		return nil, entities.ErrAlreadyDrawn
	}

	entry, err := s.ledgerService.ApplyAndRecord(ctx, accountID, lt.Price.Neg(), entities.EntryKindPurchase,
		fmt.Sprintf("ticket for %s draw %s", lt.Name, draw.DrawNumber))
	if err != nil {
		return nil, err
	}

	ticket, err := s.createTicket(ctx, draw, accountID, selection, autoSelect, entry.ID)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(events.TicketPurchasedEvent{
			TicketID:     ticket.ID,
			DrawID:       draw.ID,
			AccountID:    accountID,
			TicketNumber: ticket.TicketNumber,
			Price:        lt.Price,
		}); err != nil {
			log.WithError(err).Error("Failed to publish ticket purchased event")
		}
	}

	log.WithFields(log.Fields{
		"accountID":    accountID,
		"drawNumber":   draw.DrawNumber,
		"ticketNumber": ticket.TicketNumber,
		"autoSelect":   autoSelect,
	}).Info("Ticket purchased")

	return ticket, nil
}

// resolveOpenDraw returns the open draw for the type, creating one when
// none exists. Racing creators are reconciled through the unique draw
// number constraint.
func (s *purchaseService) resolveOpenDraw(ctx context.Context, lt *entities.LotteryType) (*entities.Draw, error) {
	for attempt := 0; attempt < maxDrawResolveAttempts; attempt++ {
		draw, err := s.drawRepo.GetOpenByType(ctx, lt.ID)
		if err == nil {
			return draw, nil
		}
		if !errors.Is(err, entities.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up open draw: %w", err)
		}

		now := s.now().UTC()
		prefix := now.Format("20060102") + "-"
		seq, err := s.drawRepo.CountByNumberPrefix(ctx, lt.ID, prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to count draws: %w", err)
		}

		draw = &entities.Draw{
			LotteryTypeID: lt.ID,
			DrawNumber:    fmt.Sprintf("%s%03d", prefix, seq+1),
			DrawDate:      now.Add(drawLeadTime),
		}
		err = s.drawRepo.Create(ctx, draw)
		if err == nil {
			log.WithFields(log.Fields{
				"lotteryType": lt.Name,
				"drawNumber":  draw.DrawNumber,
				"drawDate":    draw.DrawDate,
			}).Info("Opened new draw")
			return draw, nil
		}
		if !errors.Is(err, entities.ErrDuplicateDrawNumber) {
			return nil, fmt.Errorf("failed to create draw: %w", err)
		}
		// Lost the race; loop around and pick up the winner's draw.
	}
	return nil, fmt.Errorf("failed to resolve open draw for %q after %d attempts", lt.Name, maxDrawResolveAttempts)
}

// createTicket inserts the ticket, regenerating the ticket number on
// collision up to maxTicketNumberAttempts times
func (s *purchaseService) createTicket(ctx context.Context, draw *entities.Draw, accountID int64, selection []int64, autoSelect bool, ledgerEntryID int64) (*entities.Ticket, error) {
	for attempt := 0; attempt < maxTicketNumberAttempts; attempt++ {
		number, err := s.numberGen.Generate()
		if err != nil {
			return nil, err
		}
		ticket := &entities.Ticket{
			DrawID:          draw.ID,
			AccountID:       accountID,
			TicketNumber:    number,
			SelectedNumbers: selection,
			IsAutoSelect:    autoSelect,
			LedgerEntryID:   ledgerEntryID,
		}
		err = s.ticketRepo.Create(ctx, ticket)
		if err == nil {
			return ticket, nil
		}
		if !errors.Is(err, entities.ErrDuplicateTicketNumber) {
			return nil, fmt.Errorf("failed to create ticket: %w", err)
		}
		log.WithField("ticketNumber", number).Warn("Ticket number collision, regenerating")
	}
	return nil, entities.ErrGenerationExhausted
}
