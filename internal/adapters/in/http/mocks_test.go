package http

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hawker/internal/core/application/usecases/commands"
	"hawker/internal/core/application/usecases/queries"
	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow  = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	jwtConfig = JWTConfig{Secret: "test-secret", Issuer: "hawker-identity"}
)

type MockLister struct{ mock.Mock }

func (m *MockLister) Handle(ctx context.Context, query queries.ListStallOrdersQuery) (queries.StallOrders, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.StallOrders), args.Error(1)
}

type MockAcceptor struct{ mock.Mock }

func (m *MockAcceptor) Handle(ctx context.Context, command commands.AcceptOrderCommand) (commands.AcceptOrderResult, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.AcceptOrderResult), args.Error(1)
}

// MockTransition serves the handlers that return the order after a transition.
type MockTransition[C any] struct{ mock.Mock }

func (m *MockTransition[C]) Handle(ctx context.Context, command C) (*order.Order, error) {
	args := m.Called(ctx, command)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type apiFixture struct {
	lister    *MockLister
	acceptor  *MockAcceptor
	preparer  *MockTransition[commands.SetItemPreparedCommand]
	readier   *MockTransition[commands.MarkOrderReadyCommand]
	collector *MockTransition[commands.CollectOrderCommand]
	canceller *MockTransition[commands.CancelOrderCommand]
	router    *echo.Echo
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	f := &apiFixture{
		lister:    &MockLister{},
		acceptor:  &MockAcceptor{},
		preparer:  &MockTransition[commands.SetItemPreparedCommand]{},
		readier:   &MockTransition[commands.MarkOrderReadyCommand]{},
		collector: &MockTransition[commands.CollectOrderCommand]{},
		canceller: &MockTransition[commands.CancelOrderCommand]{},
	}
	server := NewServer(Handlers{
		ListStallOrders: f.lister,
		AcceptOrder:     f.acceptor,
		SetItemPrepared: f.preparer,
		MarkOrderReady:  f.readier,
		CollectOrder:    f.collector,
		CancelOrder:     f.canceller,
	}, nil)
	f.router = NewRouter(server, RouterConfig{JWT: jwtConfig}, nil)
	return f
}

func (f *apiFixture) assertExpectations(t *testing.T) {
	mock.AssertExpectationsForObjects(t,
		&f.lister.Mock, &f.acceptor.Mock, &f.preparer.Mock, &f.readier.Mock,
		&f.collector.Mock, &f.canceller.Mock,
	)
}

// do sends a request as the operator ah.seng@example.com unless token is overridden.
func (f *apiFixture) do(t *testing.T, method, path, body string, token ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	bearer := operatorToken(t)
	if len(token) > 0 {
		bearer = token[0]
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func operatorToken(t *testing.T) string {
	t.Helper()
	token, err := MintAccessToken(jwtConfig, "user-1", "ah.seng@example.com", time.Now(), time.Hour)
	require.NoError(t, err)
	return token
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 2, 5, "less spicy")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.PaymentPaid, []*order.Item{item}, fixedNow)
	require.NoError(t, err)
	return o
}
