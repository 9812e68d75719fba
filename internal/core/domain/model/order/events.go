package order

import (
	"time"

	"hawker/internal/core/domain/model/kernel"
)

type EventType string

const (
	EventAccepted  EventType = "order.accepted"
	EventReady     EventType = "order.ready"
	EventCollected EventType = "order.collected"
	EventCancelled EventType = "order.cancelled"
)

// Event is recorded by a transition and published once the transaction commits.
// It never carries the pickup token.
type Event struct {
	Type               EventType
	OrderID            kernel.UUID
	StallID            kernel.UUID
	Status             FulfillmentStatus
	EstimatedReadyTime *time.Time
	OccurredAt         time.Time
}
