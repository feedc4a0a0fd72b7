package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// WorkingHoursRule describes one recurring open interval of a staff member's
// week. A staff member may have several rules, including several on the same
// weekday (morning and afternoon shifts). Rules are independent and are never
// merged: two overlapping rules on one weekday produce two open segments.
type WorkingHoursRule struct {
	ID      int64
	StaffID int64

	// Weekdays uses ISO-8601 numbering: 1 = Monday ... 7 = Sunday
	Weekdays  []int
	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ISOWeekday maps time.Weekday (Sunday = 0) to ISO-8601 numbering
// (Monday = 1 ... Sunday = 7). This is the single place where the two
// conventions meet; everything else in the service speaks ISO.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// AppliesOn returns true if the rule is in effect on the given calendar day
func (r *WorkingHoursRule) AppliesOn(day time.Time) bool {
	iso := ISOWeekday(day)
	for _, wd := range r.Weekdays {
		if wd == iso {
			return true
		}
	}
	return false
}

// Validate проверяет корректность правила рабочих часов
func (r *WorkingHoursRule) Validate() error {
	if len(r.Weekdays) == 0 {
		return ErrNoWeekdays
	}
	for _, wd := range r.Weekdays {
		if wd < 1 || wd > 7 {
			return ErrInvalidWeekday
		}
	}
	if err := r.StartTime.Validate(); err != nil {
		return err
	}
	if err := r.EndTime.Validate(); err != nil {
		return err
	}
	if !r.StartTime.IsBefore(r.EndTime) {
		return ErrInvalidRuleTimes
	}
	return nil
}

// SegmentsForDay returns the open segments of the given calendar day,
// clipped to [rangeStart, rangeEnd). day is expected to be midnight in the
// salon's timezone. Overlapping rules yield overlapping segments; callers
// that must not double-count free time deduplicate downstream (see Quantize).
func SegmentsForDay(rules []*WorkingHoursRule, day time.Time, rangeStart, rangeEnd time.Time, loc *time.Location) []TimeInterval {
	segments := make([]TimeInterval, 0, len(rules))

	for _, rule := range rules {
		if !rule.AppliesOn(day) {
			continue
		}

		segStart, err := rule.StartTime.At(day, loc)
		if err != nil {
			continue
		}
		segEnd, err := rule.EndTime.At(day, loc)
		if err != nil {
			continue
		}

		// Клиппинг к границам запрошенного диапазона
		if segStart.Before(rangeStart) {
			segStart = rangeStart
		}
		if segEnd.After(rangeEnd) {
			segEnd = rangeEnd
		}

		if segStart.Before(segEnd) {
			segments = append(segments, TimeInterval{Start: segStart, End: segEnd})
		}
	}

	return segments
}
