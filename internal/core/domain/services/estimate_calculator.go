package services

import "hawker/internal/core/domain/model/order"

// EstimateBufferMinutes is added to the summed preparation time of every order.
const EstimateBufferMinutes = 3

// PrepLine is one line's contribution to the estimate.
type PrepLine struct {
	PrepTimeMinutes int
	Quantity        int
}

type EstimateCalculator struct{}

func NewEstimateCalculator() EstimateCalculator {
	return EstimateCalculator{}
}

// Default returns max(1, sum(prep*qty) + buffer). An order with no lines has nothing
// to prepare or pack and gets the 1 minute floor without the buffer.
func (EstimateCalculator) Default(lines []PrepLine) int {
	if len(lines) == 0 {
		return 1
	}

	total := EstimateBufferMinutes
	for _, line := range lines {
		total += line.PrepTimeMinutes * line.Quantity
	}
	return max(1, total)
}

// Estimate prefers a positive override and falls back to Default.
func (c EstimateCalculator) Estimate(lines []PrepLine, override *int) int {
	if override != nil && *override > 0 {
		return *override
	}
	return c.Default(lines)
}

// PrepLinesOf projects an order's items onto estimate lines.
func PrepLinesOf(items []*order.Item) []PrepLine {
	lines := make([]PrepLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, PrepLine{PrepTimeMinutes: item.PrepTimeMinutes(), Quantity: item.Quantity()})
	}
	return lines
}
