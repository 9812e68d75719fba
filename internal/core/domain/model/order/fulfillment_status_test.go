package order_test

import (
	"testing"

	"hawker/internal/core/domain/model/order"
	"hawker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []order.FulfillmentStatus{
	order.Awaiting, order.Preparing, order.Ready, order.Collected, order.Cancelled,
}

func TestFulfillmentStatus_TransitionTo(t *testing.T) {
	legal := map[order.FulfillmentStatus][]order.FulfillmentStatus{
		order.Awaiting:  {order.Preparing, order.Cancelled},
		order.Preparing: {order.Ready, order.Cancelled},
		order.Ready:     {order.Collected, order.Cancelled},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			allowed := false
			for _, next := range legal[from] {
				if next == to {
					allowed = true
				}
			}

			t.Run(from.String()+"_to_"+to.String(), func(t *testing.T) {
				got, err := from.TransitionTo(to)
				if allowed {
					require.NoError(t, err)
					assert.Equal(t, to, got)
					return
				}
				require.ErrorIs(t, err, order.ErrInvalidState)
				assert.Equal(t, from, got)
			})
		}
	}
}

func TestFulfillmentStatus_Terminal(t *testing.T) {
	for _, s := range allStatuses {
		terminal := s == order.Collected || s == order.Cancelled
		assert.Equal(t, terminal, s.IsTerminal(), s.String())
	}
}

func TestParseFulfillmentStatus(t *testing.T) {
	for _, s := range allStatuses {
		parsed, err := order.ParseFulfillmentStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.ParseFulfillmentStatus("awaiting")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "UNKNOWN", order.FulfillmentStatus(42).String())
}

func TestParsePaymentStatus(t *testing.T) {
	for _, code := range []string{"PENDING", "PAID", "COMPLETED", "CANCELLED"} {
		s, err := order.ParsePaymentStatus(code)
		require.NoError(t, err)
		assert.Equal(t, code, s.String())
	}

	_, err := order.ParsePaymentStatus("REFUNDED")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
