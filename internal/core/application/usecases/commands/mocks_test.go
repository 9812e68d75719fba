package commands_test

import (
	"context"
	"testing"
	"time"

	"hawker/internal/core/application/access"
	"hawker/internal/core/application/usecases/commands"
	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/domain/model/order"
	"hawker/internal/core/domain/services"
	"hawker/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAwaitingCreatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]kernel.UUID, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockOrderUoW) Commit(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockOrderUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockOwnershipGuard struct{ mock.Mock }

func (m *MockOwnershipGuard) ResolveOperator(ctx context.Context, identity access.Identity) (access.Operator, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(access.Operator), args.Error(1)
}

func (m *MockOwnershipGuard) AuthorizeOrder(operator access.Operator, o *order.Order) error {
	return m.Called(operator, o).Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, events ...order.Event) error {
	return m.Called(ctx, events).Error(0)
}

type MockObserver struct{ mock.Mock }

func (m *MockObserver) ObserveTransition(operation string, err error) {
	m.Called(operation, err)
}

// fixture wires a transitioner around fresh mocks.
type fixture struct {
	repo      *MockOrderRepository
	uow       *MockOrderUoW
	factory   *MockOrderUoWFactory
	guard     *MockOwnershipGuard
	publisher *MockEventPublisher
	machine   services.FulfillmentMachine
	identity  access.Identity
	operator  access.Operator
}

func newFixture(stallID kernel.UUID) *fixture {
	f := &fixture{
		repo:      new(MockOrderRepository),
		uow:       new(MockOrderUoW),
		factory:   new(MockOrderUoWFactory),
		guard:     new(MockOwnershipGuard),
		publisher: new(MockEventPublisher),
		machine:   services.NewFulfillmentMachine(services.NewEstimateCalculator(), services.NewPickupTokenService()),
		identity:  access.Identity{Email: "ah.seng@example.com"},
	}
	f.operator = access.Operator{ID: kernel.NewUUID(), Email: f.identity.Email, StallIDs: []kernel.UUID{stallID}}
	f.factory.On("Create").Return(f.uow)
	f.uow.On("OrderRepository").Return(f.repo)
	return f
}

func (f *fixture) transitioner() commands.OrderTransitioner {
	return commands.NewOrderTransitioner(f.factory, f.guard, f.publisher, nil, nil).
		WithClock(func() time.Time { return fixedNow })
}

// expectLocked sets up the happy path up to and including the domain call.
func (f *fixture) expectLocked(o *order.Order) {
	f.guard.On("ResolveOperator", mock.Anything, f.identity).Return(f.operator, nil).Once()
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.repo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	f.guard.On("AuthorizeOrder", f.operator, o).Return(nil).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil).Once()
}

func (f *fixture) expectSaved(o *order.Order) {
	f.repo.On("Update", mock.Anything, o).Return(nil).Once()
	f.uow.On("Commit", mock.Anything).Return(nil).Once()
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.repo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.guard.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

// awaitingOrder is O1 from the kitchen scenario: (prep 8, qty 1) and (prep 4, qty 3).
func awaitingOrder(t *testing.T, stallID kernel.UUID, payment order.PaymentStatus) *order.Order {
	t.Helper()
	a, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, 8, "")
	require.NoError(t, err)
	b, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 3, 4, "less chilli")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), stallID, payment, []*order.Item{a, b}, fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	return o
}

func readyOrder(t *testing.T, stallID kernel.UUID) (*order.Order, string) {
	t.Helper()
	m := services.NewFulfillmentMachine(services.NewEstimateCalculator(), services.NewPickupTokenService())
	o := awaitingOrder(t, stallID, order.PaymentPaid)
	token, err := m.Accept(o, nil, fixedNow.Add(-30*time.Minute))
	require.NoError(t, err)
	for _, item := range o.Items() {
		require.NoError(t, m.SetItemPrepared(o, item.ID(), true))
	}
	require.NoError(t, m.MarkReady(o, fixedNow.Add(-5*time.Minute)))
	o.ClearDomainEvents()
	return o, token
}

func eventTypes(events []order.Event) []order.EventType {
	out := make([]order.EventType, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}
