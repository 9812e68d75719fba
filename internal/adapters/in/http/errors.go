package http

import (
	"errors"
	"net/http"

	"hawker/internal/core/application/access"
	"hawker/internal/core/domain/model/order"
	"hawker/internal/core/domain/services"
	"hawker/internal/core/ports"
	"hawker/internal/generated/servers"
	"hawker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// InvalidPickupCode is the only thing a caller learns about a rejected token.
const InvalidPickupCode = "invalid pickup code"

// statusOf maps core errors to HTTP status codes and public messages.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, access.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, access.ErrForbidden):
		return http.StatusForbidden, "you do not operate this stall"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ports.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "too many pickup code attempts, try again shortly"
	case errors.Is(err, services.ErrTokenAlreadyUsed), errors.Is(err, services.ErrTokenMismatch):
		return http.StatusUnprocessableEntity, InvalidPickupCode
	case errors.Is(err, services.ErrTokenMissing),
		errors.Is(err, order.ErrNotPaid),
		errors.Is(err, order.ErrItemsIncomplete):
		return http.StatusConflict, err.Error()
	case errors.Is(err, order.ErrInvalidState):
		var stateErr *order.InvalidStateError
		if errors.As(err, &stateErr) {
			return http.StatusConflict, stateErr.Error()
		}
		return http.StatusConflict, order.ErrInvalidState.Error()
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	code, message := statusOf(err)
	ctx := c.Request().Context()
	if code >= http.StatusInternalServerError {
		s.log.Error(ctx, "request failed", err)
	} else {
		s.log.Debug(s.log.WithField(ctx, "error", err.Error()), "request rejected")
	}
	return c.JSON(code, servers.Error{Code: code, Message: message})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: message})
}
