// Package order models a customer order as seen by the stall that fulfils it.
//
// Order is the aggregate root. It owns its items and its pickup token and only changes
// through the transition methods (Accept, SetItemPrepared, MarkReady, Collect, Cancel).
// The fulfillment lifecycle is:
//
//	AWAITING ──> PREPARING ──> READY ──> COLLECTED
//	    │            │           │
//	    └────────────┴───────────┴──────> CANCELLED
//
// FulfillmentStatus.TransitionTo is the single place the edges are defined. Payment
// status is tracked alongside and only read here, except that a collected order becomes
// PaymentCompleted.
package order
