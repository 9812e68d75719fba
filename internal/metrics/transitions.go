// Package metrics exposes Prometheus collectors for order transitions and the
// background jobs.
package metrics

import (
	"errors"
	"net/http"

	"hawker/internal/core/application/access"
	"hawker/internal/core/domain/model/order"
	"hawker/internal/core/domain/services"
	"hawker/internal/core/ports"
	"hawker/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels, ordered by how they are matched.
const (
	OutcomeOK              = "ok"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeForbidden       = "forbidden"
	OutcomeNotFound        = "not_found"
	OutcomeNotPaid         = "not_paid"
	OutcomeItemsIncomplete = "items_incomplete"
	OutcomeTokenMissing    = "token_missing"
	OutcomeTokenRejected   = "token_rejected"
	OutcomeRateLimited     = "rate_limited"
	OutcomeInvalidState    = "invalid_state"
	OutcomeError           = "error"
)

// TransitionMetrics counts order transition attempts by operation and outcome.
type TransitionMetrics struct {
	attempts *prometheus.CounterVec
	expired  prometheus.Counter
}

func NewTransitionMetrics(reg prometheus.Registerer) *TransitionMetrics {
	if reg == nil {
		return &TransitionMetrics{}
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hawker",
		Name:      "order_transitions_total",
		Help:      "Order transition attempts by operation and outcome.",
	}, []string{"operation", "outcome"})
	expired := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hawker",
		Name:      "orders_expired_total",
		Help:      "Orders cancelled because nobody accepted them in time.",
	})
	reg.MustRegister(attempts, expired)
	return &TransitionMetrics{attempts: attempts, expired: expired}
}

// ObserveTransition satisfies commands.TransitionObserver.
func (m *TransitionMetrics) ObserveTransition(operation string, err error) {
	if m == nil || m.attempts == nil {
		return
	}
	m.attempts.WithLabelValues(normalizeLabel(operation), Outcome(err)).Inc()
}

func (m *TransitionMetrics) AddExpired(n int) {
	if m == nil || m.expired == nil || n <= 0 {
		return
	}
	m.expired.Add(float64(n))
}

// Outcome maps a transition error to a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, access.ErrUnauthenticated):
		return OutcomeUnauthenticated
	case errors.Is(err, access.ErrForbidden):
		return OutcomeForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return OutcomeNotFound
	case errors.Is(err, order.ErrNotPaid):
		return OutcomeNotPaid
	case errors.Is(err, order.ErrItemsIncomplete):
		return OutcomeItemsIncomplete
	case errors.Is(err, services.ErrTokenMissing):
		return OutcomeTokenMissing
	case errors.Is(err, services.ErrTokenMismatch), errors.Is(err, services.ErrTokenAlreadyUsed):
		return OutcomeTokenRejected
	case errors.Is(err, ports.ErrTooManyAttempts):
		return OutcomeRateLimited
	case errors.Is(err, order.ErrInvalidState):
		return OutcomeInvalidState
	default:
		return OutcomeError
	}
}

// Handler serves the given gatherer in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
