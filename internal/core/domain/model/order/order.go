package order

import (
	"errors"
	"fmt"
	"time"

	"hawker/internal/core/domain/model/kernel"
	"hawker/internal/pkg/errs"
	"hawker/internal/pkg/guard"
)

// Order is the aggregate root of stall-side fulfillment.
//
// Invariants held after every method:
//   - the fulfillment status only moves along the edges of FulfillmentStatus.TransitionTo
//   - READY and COLLECTED orders have every item prepared
//   - the pickup token is used if and only if the order is COLLECTED
//   - a token digest exists in PREPARING, READY and COLLECTED and never in AWAITING or CANCELLED
type Order struct {
	id            kernel.UUID
	stallID       kernel.UUID
	paymentStatus PaymentStatus
	status        FulfillmentStatus
	items         []*Item

	createdAt          time.Time
	acceptedAt         *time.Time
	estimatedMinutes   *int
	estimatedReadyTime *time.Time
	readyAt            *time.Time
	collectedAt        *time.Time
	completedAt        *time.Time
	cancelledAt        *time.Time

	pickup  PickupToken
	version int
	events  []Event

	guard guard.ConstructorGuard
}

// Snapshot is the persisted shape of an Order. The pickup token plaintext is not
// part of it.
type Snapshot struct {
	ID                 kernel.UUID
	StallID            kernel.UUID
	PaymentStatus      PaymentStatus
	Status             FulfillmentStatus
	Items              []ItemSnapshot
	CreatedAt          time.Time
	AcceptedAt         *time.Time
	EstimatedMinutes   *int
	EstimatedReadyTime *time.Time
	ReadyAt            *time.Time
	CollectedAt        *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	PickupTokenDigest  string
	PickupTokenUsedAt  *time.Time
	Version            int
}

// NewOrder creates an order waiting for the stall to accept it. Orders are placed by
// the checkout flow; fulfillment code only needs this for seeding and tests.
func NewOrder(id, stallID kernel.UUID, paymentStatus PaymentStatus, items []*Item, createdAt time.Time) (*Order, error) {
	snapshots := make([]ItemSnapshot, 0, len(items))
	for _, item := range items {
		if item == nil {
			return nil, errs.NewValueIsRequiredError("item")
		}
		s := item.snapshot()
		s.IsPrepared = false
		snapshots = append(snapshots, s)
	}

	return Restore(Snapshot{
		ID:            id,
		StallID:       stallID,
		PaymentStatus: paymentStatus,
		Status:        Awaiting,
		Items:         snapshots,
		CreatedAt:     createdAt,
		Version:       1,
	})
}

// Restore rebuilds an order from storage and rejects rows that break an invariant.
// An order without lines is valid: it estimates one minute and counts as fully
// prepared, so it can be marked ready straight after acceptance.
func Restore(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.StallID.Validate(),
		s.PaymentStatus.Validate(),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	items := make([]*Item, 0, len(s.Items))
	for _, is := range s.Items {
		item, err := RestoreItem(is)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	o := &Order{
		id:                 s.ID,
		stallID:            s.StallID,
		paymentStatus:      s.PaymentStatus,
		status:             s.Status,
		items:              items,
		createdAt:          s.CreatedAt,
		acceptedAt:         copyTime(s.AcceptedAt),
		estimatedMinutes:   copyInt(s.EstimatedMinutes),
		estimatedReadyTime: copyTime(s.EstimatedReadyTime),
		readyAt:            copyTime(s.ReadyAt),
		collectedAt:        copyTime(s.CollectedAt),
		completedAt:        copyTime(s.CompletedAt),
		cancelledAt:        copyTime(s.CancelledAt),
		pickup:             RestorePickupToken(s.PickupTokenDigest, s.PickupTokenUsedAt),
		version:            s.Version,
		guard:              guard.NewConstructorGuard(),
	}

	if err := o.checkInvariants(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("order", err)
	}
	return o, nil
}

func (o *Order) checkInvariants() error {
	var problems []error

	if o.pickup.IsUsed() != (o.status == Collected) {
		problems = append(problems, fmt.Errorf("pickup token used flag does not match status %s", o.status))
	}

	switch o.status {
	case Awaiting, Cancelled:
		if o.pickup.IsIssued() {
			problems = append(problems, fmt.Errorf("status %s must not carry a pickup token", o.status))
		}
	case Preparing, Ready, Collected:
		if !o.pickup.IsIssued() {
			problems = append(problems, fmt.Errorf("status %s requires a pickup token", o.status))
		}
	case Unknown:
	}

	if (o.status == Ready || o.status == Collected) && !o.allItemsPrepared() {
		problems = append(problems, fmt.Errorf("status %s requires every item prepared", o.status))
	}

	return errors.Join(problems...)
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) StallID() kernel.UUID { return o.stallID }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) Status() FulfillmentStatus { return o.status }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) AcceptedAt() *time.Time { return copyTime(o.acceptedAt) }
func (o *Order) EstimatedMinutes() *int { return copyInt(o.estimatedMinutes) }
func (o *Order) EstimatedReadyTime() *time.Time { return copyTime(o.estimatedReadyTime) }
func (o *Order) ReadyAt() *time.Time { return copyTime(o.readyAt) }
func (o *Order) CollectedAt() *time.Time { return copyTime(o.collectedAt) }
func (o *Order) CompletedAt() *time.Time { return copyTime(o.completedAt) }
func (o *Order) CancelledAt() *time.Time { return copyTime(o.cancelledAt) }
func (o *Order) PickupToken() PickupToken { return o.pickup }
func (o *Order) Version() int { return o.version }

// Items returns the order lines. The slice is a copy; the items themselves are read-only.
func (o *Order) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) Snapshot() Snapshot {
	items := make([]ItemSnapshot, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, item.snapshot())
	}

	return Snapshot{
		ID:                 o.id,
		StallID:            o.stallID,
		PaymentStatus:      o.paymentStatus,
		Status:             o.status,
		Items:              items,
		CreatedAt:          o.createdAt,
		AcceptedAt:         copyTime(o.acceptedAt),
		EstimatedMinutes:   copyInt(o.estimatedMinutes),
		EstimatedReadyTime: copyTime(o.estimatedReadyTime),
		ReadyAt:            copyTime(o.readyAt),
		CollectedAt:        copyTime(o.collectedAt),
		CompletedAt:        copyTime(o.completedAt),
		CancelledAt:        copyTime(o.cancelledAt),
		PickupTokenDigest:  o.pickup.Digest(),
		PickupTokenUsedAt:  o.pickup.UsedAt(),
		Version:            o.version,
	}
}

// Accept moves a paid AWAITING order to PREPARING. It records acceptedAt, the
// estimate and the estimated ready time, and clears every item's prepared flag.
// The caller issues the pickup token right after; until then the order is not
// persistable.
//
// Parameters:
//   - estimatedMinutes: preparation estimate, at least 1
//   - now: acceptance time
//
// Returns:
//   - error: *InvalidStateError unless the order is AWAITING, ErrNotPaid unless the
//     payment is PAID, an out-of-range error when estimatedMinutes < 1
//
// Example:
//
//	if err := o.Accept(12, time.Now()); err != nil {
//	    return err
//	}
//	// o.Status() == Preparing, *o.EstimatedMinutes() == 12
func (o *Order) Accept(estimatedMinutes int, now time.Time) error {
	next, err := o.status.TransitionTo(Preparing)
	if err != nil {
		return &InvalidStateError{Operation: "accept", Status: o.status}
	}
	if o.paymentStatus != PaymentPaid {
		return fmt.Errorf("%w: payment status is %s", ErrNotPaid, o.paymentStatus)
	}
	if estimatedMinutes < 1 {
		return errs.NewValueIsOutOfRangeError("estimatedMinutes", estimatedMinutes, 1, "unbounded")
	}

	readyBy := now.Add(time.Duration(estimatedMinutes) * time.Minute)
	o.status = next
	o.acceptedAt = &now
	o.estimatedMinutes = &estimatedMinutes
	o.estimatedReadyTime = &readyBy
	o.pickup = PickupToken{}
	for _, item := range o.items {
		item.isPrepared = false
	}

	o.record(EventAccepted, now)
	return nil
}

// IssuePickupToken attaches a fresh token, replacing any previous one.
func (o *Order) IssuePickupToken(token PickupToken) error {
	if o.status != Preparing && o.status != Ready {
		return &InvalidStateError{Operation: "issue a pickup token", Status: o.status}
	}
	if !token.IsIssued() {
		return errs.NewValueIsRequiredError("pickupTokenDigest")
	}

	o.pickup = PickupToken{digest: token.digest, plaintext: token.plaintext}
	return nil
}

// SetItemPrepared flags one line as prepared or not. The operation is idempotent.
func (o *Order) SetItemPrepared(itemID kernel.UUID, prepared bool) error {
	if o.status != Preparing {
		return &InvalidStateError{Operation: "change item preparation", Status: o.status}
	}

	for _, item := range o.items {
		if item.id.IsEqual(itemID) {
			item.isPrepared = prepared
			return nil
		}
	}
	return errs.NewObjectNotFoundError("orderItem", itemID.String())
}

func (o *Order) MarkReady(now time.Time) error {
	next, err := o.status.TransitionTo(Ready)
	if err != nil {
		return &InvalidStateError{Operation: "mark ready", Status: o.status}
	}
	if !o.allItemsPrepared() {
		return ErrItemsIncomplete
	}

	o.status = next
	o.readyAt = &now
	o.record(EventReady, now)
	return nil
}

// ConsumePickupToken stamps the token as used and forgets its plaintext. Digest
// comparison happens before this call.
func (o *Order) ConsumePickupToken(now time.Time) error {
	if !o.pickup.IsIssued() {
		return errs.NewValueIsRequiredError("pickupTokenDigest")
	}
	if o.pickup.IsUsed() {
		return errs.NewValueIsInvalidErrorWithCause("pickupToken", errors.New("already used"))
	}

	o.pickup = o.pickup.consume(now)
	return nil
}

// Collect closes a READY order whose token was consumed in the same transaction. It
// stamps collectedAt and completedAt and moves the payment to COMPLETED.
//
// Returns:
//   - error: *InvalidStateError unless the order is READY, ErrPickupNotVerified when
//     the pickup token has not been consumed
//
// Example:
//
//	if err := o.ConsumePickupToken(now); err != nil {
//	    return err
//	}
//	if err := o.Collect(now); err != nil {
//	    return err
//	}
//	// o.Status() == Collected, o.PaymentStatus() == PaymentCompleted
func (o *Order) Collect(now time.Time) error {
	next, err := o.status.TransitionTo(Collected)
	if err != nil {
		return &InvalidStateError{Operation: "collect", Status: o.status}
	}
	if !o.pickup.IsUsed() {
		return ErrPickupNotVerified
	}

	o.status = next
	o.collectedAt = &now
	o.completedAt = &now
	o.paymentStatus = PaymentCompleted
	o.record(EventCollected, now)
	return nil
}

// Cancel abandons a non-terminal order and revokes its pickup token. Payment status
// is left for the refund flow.
func (o *Order) Cancel(now time.Time) error {
	next, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return &InvalidStateError{Operation: "cancel", Status: o.status}
	}

	o.status = next
	o.cancelledAt = &now
	o.pickup = PickupToken{}
	o.record(EventCancelled, now)
	return nil
}

// DomainEvents returns the events recorded since the order was loaded.
func (o *Order) DomainEvents() []Event {
	out := make([]Event, len(o.events))
	copy(out, o.events)
	return out
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

// AdvanceVersion is called by the repository after a write at Version() succeeded.
func (o *Order) AdvanceVersion() {
	o.version++
}

func (o *Order) record(eventType EventType, now time.Time) {
	o.events = append(o.events, Event{
		Type:               eventType,
		OrderID:            o.id,
		StallID:            o.stallID,
		Status:             o.status,
		EstimatedReadyTime: copyTime(o.estimatedReadyTime),
		OccurredAt:         now,
	})
}

func (o *Order) allItemsPrepared() bool {
	for _, item := range o.items {
		if !item.isPrepared {
			return false
		}
	}
	return true
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
