package testhelpers

import (
	"context"

	"lotto/domain/entities"
	"lotto/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) ApplyAndRecord(ctx context.Context, accountID int64, delta entities.Amount, kind entities.EntryKind, description string) (*entities.LedgerEntry, error) {
	args := m.Called(ctx, accountID, delta, kind, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LedgerEntry), args.Error(1)
}

// MockTicketNumberGenerator is a mock implementation of TicketNumberGenerator
type MockTicketNumberGenerator struct {
	mock.Mock
}

func (m *MockTicketNumberGenerator) Generate() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// MockSettlementService is a mock implementation of SettlementService
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) SettleTicket(ctx context.Context, ticketID int64) (*interfaces.SettlementResult, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.SettlementResult), args.Error(1)
}

func (m *MockSettlementService) SettleDraw(ctx context.Context, draw *entities.Draw) (*interfaces.DrawSettlement, error) {
	args := m.Called(ctx, draw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.DrawSettlement), args.Error(1)
}

func (m *MockSettlementService) SettleAccount(ctx context.Context, accountID int64) ([]*interfaces.SettlementResult, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*interfaces.SettlementResult), args.Error(1)
}
