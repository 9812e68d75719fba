package http

import (
	"context"
	"net/http"

	"hawker/internal/core/application/usecases/commands"
	"hawker/internal/core/application/usecases/queries"
	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/domain/model/order"
	"hawker/internal/generated/servers"
	"hawker/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	StallOrdersLister interface {
		Handle(ctx context.Context, query queries.ListStallOrdersQuery) (queries.StallOrders, error)
	}
	OrderAcceptor interface {
		Handle(ctx context.Context, command commands.AcceptOrderCommand) (commands.AcceptOrderResult, error)
	}
	ItemPreparer interface {
		Handle(ctx context.Context, command commands.SetItemPreparedCommand) (*order.Order, error)
	}
	ReadyMarker interface {
		Handle(ctx context.Context, command commands.MarkOrderReadyCommand) (*order.Order, error)
	}
	OrderCollector interface {
		Handle(ctx context.Context, command commands.CollectOrderCommand) (*order.Order, error)
	}
	OrderCanceller interface {
		Handle(ctx context.Context, command commands.CancelOrderCommand) (*order.Order, error)
	}
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	ListStallOrders StallOrdersLister
	AcceptOrder     OrderAcceptor
	SetItemPrepared ItemPreparer
	MarkOrderReady  ReadyMarker
	CollectOrder    OrderCollector
	CancelOrder     OrderCanceller
}

// Server implements servers.ServerInterface on top of the fulfillment use cases.
type Server struct {
	handlers Handlers
	log      *logger.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{handlers: handlers, log: log.Component("http")}
}

// ListStallOrders handles GET /api/v1/stall/orders.
func (s *Server) ListStallOrders(c echo.Context, params servers.ListStallOrdersParams) error {
	raw := ""
	if params.View != nil {
		raw = string(*params.View)
	}
	view, err := queries.ParseOrderView(raw)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewListStallOrdersQuery(identityFrom(c), view)
	if err != nil {
		return s.fail(c, err)
	}

	board, err := s.handlers.ListStallOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toStallOrdersResponse(board))
}

// AcceptOrder handles PATCH /api/v1/stall/orders/{orderId}/accept. The body is
// optional; an unusable estimate is ignored rather than rejected.
//
// Returns:
//   - 200 with the PREPARING order and the pickup token, shown to the caller only here
//   - 409 when the order is not AWAITING or not paid
//   - 403 / 404 when the caller does not operate the order's stall or it does not exist
//
// Example:
//
//	PATCH /api/v1/stall/orders/6f1c.../accept
//	{"estimatedMinutes": 15}
func (s *Server) AcceptOrder(c echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromGoogle(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	var body servers.AcceptOrderJSONRequestBody
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	var override *int
	if body.EstimatedMinutes != nil {
		override = parseEstimateOverride(*body.EstimatedMinutes)
	}

	cmd, err := commands.NewAcceptOrderCommand(identityFrom(c), id, override)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.handlers.AcceptOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, servers.AcceptedOrder{
		Order:       toOrderState(result.Order),
		PickupToken: result.PickupToken,
	})
}

type setItemPreparedRequest struct {
	IsPrepared *bool `json:"isPrepared" validate:"required"`
}

// SetItemPrepared handles PATCH /api/v1/stall/orders/{orderId}/items/{itemId}/prepared.
// The response is the whole order so the board can redraw it; the updated line is in
// its items.
//
// Returns:
//   - 200 with the order state
//   - 400 when isPrepared is missing or not a boolean
//   - 404 for an unknown item, 409 unless the order is PREPARING
func (s *Server) SetItemPrepared(c echo.Context, orderID servers.OrderId, itemID openapi_types.UUID) error {
	oid, err := kernel.UUIDFromGoogle(orderID)
	if err != nil {
		return s.fail(c, err)
	}
	iid, err := kernel.UUIDFromGoogle(itemID)
	if err != nil {
		return s.fail(c, err)
	}

	var body setItemPreparedRequest
	if err = s.bindAndValidate(c, &body); err != nil {
		return badRequest(c, "isPrepared must be a boolean")
	}

	cmd, err := commands.NewSetItemPreparedCommand(identityFrom(c), oid, iid, *body.IsPrepared)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.handlers.SetItemPrepared.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderState(o))
}

// MarkOrderReady handles PATCH /api/v1/stall/orders/{orderId}/ready.
func (s *Server) MarkOrderReady(c echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromGoogle(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewMarkOrderReadyCommand(identityFrom(c), id)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.handlers.MarkOrderReady.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderState(o))
}

type collectOrderRequest struct {
	Token *string `json:"token" validate:"required"`
}

// CollectOrder handles POST /api/v1/stall/orders/{orderId}/collect. Any token string,
// whatever its length, goes to verification; only a missing token is a bad request.
//
// Returns:
//   - 200 with the COLLECTED order
//   - 422 InvalidPickupCode for a wrong or already used token
//   - 429 when the order's attempt window is used up
//   - 409 unless the order is READY
//
// Example:
//
//	POST /api/v1/stall/orders/6f1c.../collect
//	{"token": "9f2c4e7a1b3d5f60"}
func (s *Server) CollectOrder(c echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromGoogle(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	var body collectOrderRequest
	if err = s.bindAndValidate(c, &body); err != nil {
		return badRequest(c, "token is required")
	}

	cmd, err := commands.NewCollectOrderCommand(identityFrom(c), id, *body.Token)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.handlers.CollectOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderState(o))
}

// CancelOrder handles PATCH /api/v1/stall/orders/{orderId}/cancel.
func (s *Server) CancelOrder(c echo.Context, orderID servers.OrderId) error {
	id, err := kernel.UUIDFromGoogle(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCancelOrderCommand(identityFrom(c), id)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.handlers.CancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderState(o))
}

func (s *Server) bindAndValidate(c echo.Context, body any) error {
	if err := c.Bind(body); err != nil {
		return err
	}
	return c.Validate(body)
}
