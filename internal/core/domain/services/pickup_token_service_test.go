package services_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/domain/model/order"
	"hawker/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func preparingOrder(t *testing.T, items ...*order.Item) *order.Order {
	t.Helper()
	if len(items) == 0 {
		item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, 5, "")
		require.NoError(t, err)
		items = append(items, item)
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.PaymentPaid, items, now)
	require.NoError(t, err)
	require.NoError(t, o.Accept(10, now))
	return o
}

func TestDigestPickupToken(t *testing.T) {
	// sha256("abc")
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		services.DigestPickupToken("abc"))
}

func TestPickupTokenService_Issue(t *testing.T) {
	t.Run("attaches_digest_and_returns_hex_plaintext", func(t *testing.T) {
		seed := bytes.Repeat([]byte{0xab}, 16)
		svc := services.NewPickupTokenServiceWithRandom(bytes.NewReader(seed))
		o := preparingOrder(t)

		plaintext, err := svc.Issue(o)

		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("ab", 16), plaintext)
		assert.Equal(t, services.DigestPickupToken(plaintext), o.PickupToken().Digest())
		assert.Equal(t, plaintext, o.PickupToken().Plaintext())
		assert.False(t, o.PickupToken().IsUsed())
	})

	t.Run("tokens_are_unique", func(t *testing.T) {
		svc := services.NewPickupTokenService()
		seen := map[string]bool{}
		for range 64 {
			plaintext, err := svc.Issue(preparingOrder(t))
			require.NoError(t, err)
			assert.Len(t, plaintext, 32)
			assert.False(t, seen[plaintext])
			seen[plaintext] = true
		}
	})

	t.Run("reissue_invalidates_previous_token", func(t *testing.T) {
		svc := services.NewPickupTokenService()
		o := preparingOrder(t)
		first, err := svc.Issue(o)
		require.NoError(t, err)
		second, err := svc.Issue(o)
		require.NoError(t, err)

		require.ErrorIs(t, svc.Verify(o, first, now), services.ErrTokenMismatch)
		require.NoError(t, svc.Verify(o, second, now))
	})

	t.Run("random_failure_is_reported", func(t *testing.T) {
		svc := services.NewPickupTokenServiceWithRandom(bytes.NewReader([]byte{1, 2}))
		_, err := svc.Issue(preparingOrder(t))
		require.Error(t, err)
	})

	t.Run("awaiting_order_is_refused", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, 5, "")
		require.NoError(t, err)
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.PaymentPaid, []*order.Item{item}, now)
		require.NoError(t, err)

		_, err = services.NewPickupTokenService().Issue(o)
		require.ErrorIs(t, err, order.ErrInvalidState)
	})
}

func TestPickupTokenService_Verify(t *testing.T) {
	svc := services.NewPickupTokenService()

	t.Run("missing_token", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, 5, "")
		require.NoError(t, err)
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.PaymentPaid, []*order.Item{item}, now)
		require.NoError(t, err)

		require.ErrorIs(t, svc.Verify(o, "anything", now), services.ErrTokenMissing)
	})

	t.Run("mismatch_for_any_other_string", func(t *testing.T) {
		o := preparingOrder(t)
		plaintext, err := svc.Issue(o)
		require.NoError(t, err)

		for _, presented := range []string{"", " ", strings.ToUpper(plaintext), plaintext + "0", plaintext[:31], strings.Repeat("x", 4096)} {
			require.ErrorIs(t, svc.Verify(o, presented, now), services.ErrTokenMismatch, "presented %q", presented)
		}
		assert.False(t, o.PickupToken().IsUsed())
	})

	t.Run("match_consumes_once", func(t *testing.T) {
		o := preparingOrder(t)
		plaintext, err := svc.Issue(o)
		require.NoError(t, err)

		require.NoError(t, svc.Verify(o, plaintext, now))
		assert.True(t, o.PickupToken().IsUsed())
		assert.Empty(t, o.PickupToken().Plaintext())

		err = svc.Verify(o, plaintext, now)
		require.ErrorIs(t, err, services.ErrTokenAlreadyUsed)
		assert.False(t, errors.Is(err, services.ErrTokenMismatch))
	})
}
