// Package rating derives a title's aggregated rating from its review scores.
// The value is recomputed on every read and never persisted.
package rating

import (
	"math"
)

// Aggregate returns the arithmetic mean of the given scores rounded with
// round-half-to-even (so 7.5 rounds to 8 but 4.5 rounds to 4), or nil when no
// scores are present.
func Aggregate(scores []int) *int {
	if len(scores) == 0 {
		return nil
	}

	sum := 0
	for _, score := range scores {
		sum += score
	}

	mean := float64(sum) / float64(len(scores))
	rounded := int(math.RoundToEven(mean))
	return &rounded
}
