package domain

import "time"

// TimeInterval represents a half-open time interval [Start, End)
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true if the interval has positive length
func (i TimeInterval) IsValid() bool {
	return i.End.After(i.Start)
}

// Duration returns the length of the interval
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps returns true if the two half-open intervals share any time.
// Intervals that merely touch at a boundary do not overlap:
// [10:00, 10:30) and [10:30, 11:00) are disjoint.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains returns true if other lies fully inside i
func (i TimeInterval) Contains(other TimeInterval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Subtract removes block from every interval in intervals and returns the
// remaining pieces. An interval overlapped in the middle splits in two, an
// interval fully covered by block disappears. Pieces of zero or negative
// length are dropped. Relative order of the input is preserved.
func Subtract(intervals []TimeInterval, block TimeInterval) []TimeInterval {
	// Вырожденный блок (end <= start) ничего не занимает
	if !block.IsValid() {
		return intervals
	}

	result := make([]TimeInterval, 0, len(intervals))

	for _, it := range intervals {
		if !it.Overlaps(block) {
			result = append(result, it)
			continue
		}

		// Левый остаток: до начала блока
		if block.Start.After(it.Start) {
			left := TimeInterval{Start: it.Start, End: minTime(block.Start, it.End)}
			if left.IsValid() {
				result = append(result, left)
			}
		}

		// Правый остаток: после конца блока
		if block.End.Before(it.End) {
			right := TimeInterval{Start: maxTime(block.End, it.Start), End: it.End}
			if right.IsValid() {
				result = append(result, right)
			}
		}
	}

	return result
}

// SubtractAll removes every block from intervals, short-circuiting once
// nothing is left
func SubtractAll(intervals []TimeInterval, blocks []TimeInterval) []TimeInterval {
	free := intervals
	for _, block := range blocks {
		if len(free) == 0 {
			break
		}
		free = Subtract(free, block)
	}
	return free
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
