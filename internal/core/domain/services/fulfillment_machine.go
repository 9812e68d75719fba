package services

import (
	"time"

	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/core/domain/model/order"
)

// FulfillmentMachine runs one order transition at a time. It does not persist
// anything; callers hold the row lock and save the order afterwards.
type FulfillmentMachine struct {
	estimates EstimateCalculator
	tokens    PickupTokenService
}

func NewFulfillmentMachine(estimates EstimateCalculator, tokens PickupTokenService) FulfillmentMachine {
	return FulfillmentMachine{estimates: estimates, tokens: tokens}
}

// Accept starts preparation and returns the pickup token plaintext. This is the only
// time the plaintext leaves the service.
func (m FulfillmentMachine) Accept(o *order.Order, minutesOverride *int, now time.Time) (string, error) {
	minutes := m.estimates.Estimate(PrepLinesOf(o.Items()), minutesOverride)
	if err := o.Accept(minutes, now); err != nil {
		return "", err
	}
	return m.tokens.Issue(o)
}

func (m FulfillmentMachine) SetItemPrepared(o *order.Order, itemID kernel.UUID, prepared bool) error {
	return o.SetItemPrepared(itemID, prepared)
}

func (m FulfillmentMachine) MarkReady(o *order.Order, now time.Time) error {
	return o.MarkReady(now)
}

// Collect checks the state first so a wrong-state order never reveals whether a
// token matched. A COLLECTED order still goes through Verify and answers
// ErrTokenAlreadyUsed, which is what a repeated scan at the counter should see.
func (m FulfillmentMachine) Collect(o *order.Order, presented string, now time.Time) error {
	if o.Status() != order.Ready && o.Status() != order.Collected {
		return &order.InvalidStateError{Operation: "collect", Status: o.Status()}
	}
	if err := m.tokens.Verify(o, presented, now); err != nil {
		return err
	}
	return o.Collect(now)
}

func (m FulfillmentMachine) Cancel(o *order.Order, now time.Time) error {
	return o.Cancel(now)
}

// DefaultEstimate is the estimate Accept would use without an override.
func (m FulfillmentMachine) DefaultEstimate(o *order.Order) int {
	return m.estimates.Default(PrepLinesOf(o.Items()))
}
