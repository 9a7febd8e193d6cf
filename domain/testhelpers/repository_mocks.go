package testhelpers

import (
	"context"
	"time"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entities.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*entities.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*entities.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *entities.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// MockLedgerEntryRepository is a mock implementation of LedgerEntryRepository
type MockLedgerEntryRepository struct {
	mock.Mock
}

func (m *MockLedgerEntryRepository) Record(ctx context.Context, entry *entities.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerEntryRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.LedgerEntry, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) SumByKind(ctx context.Context, accountID int64, kind entities.EntryKind) (entities.Amount, error) {
	args := m.Called(ctx, accountID, kind)
	return args.Get(0).(entities.Amount), args.Error(1)
}

func (m *MockLedgerEntryRepository) TotalsByKind(ctx context.Context, from, to time.Time) (map[entities.EntryKind]entities.Amount, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.EntryKind]entities.Amount), args.Error(1)
}

func (m *MockLedgerEntryRepository) DailyTotals(ctx context.Context, kind entities.EntryKind, days int) ([]interfaces.DailyTotal, error) {
	args := m.Called(ctx, kind, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.DailyTotal), args.Error(1)
}

// MockLotteryTypeRepository is a mock implementation of LotteryTypeRepository
type MockLotteryTypeRepository struct {
	mock.Mock
}

func (m *MockLotteryTypeRepository) Create(ctx context.Context, lt *entities.LotteryType) error {
	args := m.Called(ctx, lt)
	return args.Error(0)
}

func (m *MockLotteryTypeRepository) GetByID(ctx context.Context, id int64) (*entities.LotteryType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LotteryType), args.Error(1)
}

func (m *MockLotteryTypeRepository) GetByName(ctx context.Context, name string) (*entities.LotteryType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LotteryType), args.Error(1)
}

func (m *MockLotteryTypeRepository) ListActive(ctx context.Context) ([]*entities.LotteryType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LotteryType), args.Error(1)
}

func (m *MockLotteryTypeRepository) Update(ctx context.Context, lt *entities.LotteryType) error {
	args := m.Called(ctx, lt)
	return args.Error(0)
}

// MockDrawRepository is a mock implementation of DrawRepository
type MockDrawRepository struct {
	mock.Mock
}

func (m *MockDrawRepository) Create(ctx context.Context, draw *entities.Draw) error {
	args := m.Called(ctx, draw)
	return args.Error(0)
}

func (m *MockDrawRepository) GetByID(ctx context.Context, id int64) (*entities.Draw, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Draw), args.Error(1)
}

func (m *MockDrawRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Draw, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Draw), args.Error(1)
}

func (m *MockDrawRepository) GetOpenByType(ctx context.Context, lotteryTypeID int64) (*entities.Draw, error) {
	args := m.Called(ctx, lotteryTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Draw), args.Error(1)
}

func (m *MockDrawRepository) CountByNumberPrefix(ctx context.Context, lotteryTypeID int64, prefix string) (int, error) {
	args := m.Called(ctx, lotteryTypeID, prefix)
	return args.Int(0), args.Error(1)
}

func (m *MockDrawRepository) Update(ctx context.Context, draw *entities.Draw) error {
	args := m.Called(ctx, draw)
	return args.Error(0)
}

func (m *MockDrawRepository) ListPending(ctx context.Context, now time.Time) ([]*entities.Draw, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Draw), args.Error(1)
}

func (m *MockDrawRepository) ListDrawn(ctx context.Context, lotteryTypeID int64, limit int) ([]*entities.Draw, error) {
	args := m.Called(ctx, lotteryTypeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Draw), args.Error(1)
}

// MockTicketRepository is a mock implementation of TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *entities.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id int64) (*entities.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.Ticket, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Ticket), args.Error(1)
}

func (m *MockTicketRepository) ListByDraw(ctx context.Context, drawID int64) ([]*entities.Ticket, error) {
	args := m.Called(ctx, drawID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Ticket), args.Error(1)
}

func (m *MockTicketRepository) ListSettleableByAccount(ctx context.Context, accountID int64) ([]*entities.Ticket, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Update(ctx context.Context, ticket *entities.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) CountByDraw(ctx context.Context, drawID int64) (int, error) {
	args := m.Called(ctx, drawID)
	return args.Int(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
