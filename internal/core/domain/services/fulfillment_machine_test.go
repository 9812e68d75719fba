package services_test

import (
	"testing"
	"time"

	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/domain/model/order"
	"hawker/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachine() services.FulfillmentMachine {
	return services.NewFulfillmentMachine(services.NewEstimateCalculator(), services.NewPickupTokenService())
}

func awaitingOrder(t *testing.T, payment order.PaymentStatus, lines ...[2]int) *order.Order {
	t.Helper()
	items := make([]*order.Item, 0, len(lines))
	for _, l := range lines {
		item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), l[1], l[0], "")
		require.NoError(t, err)
		items = append(items, item)
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), payment, items, now)
	require.NoError(t, err)
	return o
}

func TestFulfillmentMachine_Lifecycle(t *testing.T) {
	// Given O1: PAID/AWAITING, (prep 8, qty 1) and (prep 4, qty 3)
	m := newMachine()
	o := awaitingOrder(t, order.PaymentPaid, [2]int{8, 1}, [2]int{4, 3})

	// When accepted
	token, err := m.Accept(o, nil, now)

	// Then
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, order.Preparing, o.Status())
	assert.Equal(t, 23, *o.EstimatedMinutes())
	assert.Equal(t, now.Add(23*time.Minute), *o.EstimatedReadyTime())
	digest := o.PickupToken().Digest()

	// When every item is prepared and the order marked ready
	for _, item := range o.Items() {
		require.NoError(t, m.SetItemPrepared(o, item.ID(), true))
	}
	require.NoError(t, m.MarkReady(o, now.Add(20*time.Minute)))

	// Then the token is unchanged
	assert.Equal(t, order.Ready, o.Status())
	assert.Equal(t, digest, o.PickupToken().Digest())

	// When collected with the token
	collectedAt := now.Add(25 * time.Minute)
	require.NoError(t, m.Collect(o, token, collectedAt))

	// Then
	assert.Equal(t, order.Collected, o.Status())
	assert.Equal(t, order.PaymentCompleted, o.PaymentStatus())
	assert.Equal(t, collectedAt, *o.CollectedAt())

	// And a second collect with the same token is refused as already used
	require.ErrorIs(t, m.Collect(o, token, collectedAt.Add(time.Minute)), services.ErrTokenAlreadyUsed)
	assert.Equal(t, collectedAt, *o.CollectedAt())
}

func TestFulfillmentMachine_Accept(t *testing.T) {
	m := newMachine()

	t.Run("override_wins", func(t *testing.T) {
		o := awaitingOrder(t, order.PaymentPaid, [2]int{8, 1})
		override := 15

		_, err := m.Accept(o, &override, now)

		require.NoError(t, err)
		assert.Equal(t, 15, *o.EstimatedMinutes())
	})

	t.Run("not_paid", func(t *testing.T) {
		o := awaitingOrder(t, order.PaymentPending, [2]int{8, 1})

		token, err := m.Accept(o, nil, now)

		require.ErrorIs(t, err, order.ErrNotPaid)
		assert.Empty(t, token)
		assert.False(t, o.PickupToken().IsIssued())
	})

	t.Run("twice_is_invalid_state", func(t *testing.T) {
		o := awaitingOrder(t, order.PaymentPaid, [2]int{8, 1})
		_, err := m.Accept(o, nil, now)
		require.NoError(t, err)

		_, err = m.Accept(o, nil, now)
		require.ErrorIs(t, err, order.ErrInvalidState)
	})
}

func TestFulfillmentMachine_Collect(t *testing.T) {
	m := newMachine()

	ready := func(t *testing.T) (*order.Order, string) {
		t.Helper()
		o := awaitingOrder(t, order.PaymentPaid, [2]int{2, 1})
		token, err := m.Accept(o, nil, now)
		require.NoError(t, err)
		require.NoError(t, m.SetItemPrepared(o, o.Items()[0].ID(), true))
		require.NoError(t, m.MarkReady(o, now))
		return o, token
	}

	t.Run("state_is_checked_before_token", func(t *testing.T) {
		o := awaitingOrder(t, order.PaymentPaid, [2]int{2, 1})
		token, err := m.Accept(o, nil, now)
		require.NoError(t, err)

		require.ErrorIs(t, m.Collect(o, token, now), order.ErrInvalidState)
		assert.False(t, o.PickupToken().IsUsed())
	})

	t.Run("wrong_token_leaves_order_ready", func(t *testing.T) {
		o, _ := ready(t)

		require.ErrorIs(t, m.Collect(o, "", now), services.ErrTokenMismatch)
		assert.Equal(t, order.Ready, o.Status())
		assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	})

	t.Run("cancelled_order_cannot_be_collected", func(t *testing.T) {
		o, token := ready(t)
		require.NoError(t, m.Cancel(o, now))

		require.ErrorIs(t, m.Collect(o, token, now), order.ErrInvalidState)
	})
}

func TestFulfillmentMachine_DefaultEstimate(t *testing.T) {
	o := awaitingOrder(t, order.PaymentPaid, [2]int{10, 2}, [2]int{5, 1})
	assert.Equal(t, 28, newMachine().DefaultEstimate(o))
}

func TestFulfillmentMachine_AcceptOrderWithoutLines(t *testing.T) {
	// Given a paid order with no lines
	m := newMachine()
	o := awaitingOrder(t, order.PaymentPaid)

	// When
	token, err := m.Accept(o, nil, now)

	// Then the one-minute floor applies and the order can go straight to ready
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 1, m.DefaultEstimate(o))
	assert.Equal(t, 1, *o.EstimatedMinutes())
	assert.Equal(t, now.Add(time.Minute), *o.EstimatedReadyTime())
	require.NoError(t, m.MarkReady(o, now.Add(time.Minute)))
	require.NoError(t, m.Collect(o, token, now.Add(2*time.Minute)))
	assert.Equal(t, order.Collected, o.Status())
}
