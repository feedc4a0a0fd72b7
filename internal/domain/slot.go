package domain

import (
	"sort"
	"time"
)

// CandidateSlot is a bookable slot of fixed service duration whose start
// lies on the quantization grid of a free gap
type CandidateSlot struct {
	Start time.Time
	End   time.Time
}

// Interval returns the slot as a TimeInterval
func (s CandidateSlot) Interval() TimeInterval {
	return TimeInterval{Start: s.Start, End: s.End}
}

// Quantize walks every gap from its start in step increments and emits a
// candidate for each position where a slot of the given duration still fits
// inside the gap. Candidates within one gap overlap each other by design:
// a 90-minute gap with a 30-minute service and 15-minute steps offers five
// starting times. Double booking is prevented on the write path, not here.
//
// Duplicate start times (possible when overlapping working-hour rules
// produce overlapping gaps) are emitted once. Output is sorted by start.
func Quantize(gaps []TimeInterval, duration, step time.Duration) []CandidateSlot {
	slots := make([]CandidateSlot, 0)
	if duration <= 0 || step <= 0 {
		return slots
	}

	seen := make(map[int64]struct{})

	for _, gap := range gaps {
		for start := gap.Start; !start.Add(duration).After(gap.End); start = start.Add(step) {
			key := start.UnixNano()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			slots = append(slots, CandidateSlot{Start: start, End: start.Add(duration)})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})

	return slots
}
