package http

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// maxOverrideMinutes keeps an override inside int32 so the column never overflows.
const maxOverrideMinutes = math.MaxInt32

// parseEstimateOverride accepts a JSON number or a numeric string. Fractions round up.
// Everything else, including non-positive values, means "no override".
func parseEstimateOverride(raw any) *int {
	var minutes float64
	switch v := raw.(type) {
	case float64:
		minutes = v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil
		}
		minutes = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		minutes = f
	default:
		return nil
	}

	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return nil
	}
	rounded := math.Ceil(minutes)
	if rounded < 1 || rounded > maxOverrideMinutes {
		return nil
	}
	n := int(rounded)
	return &n
}
