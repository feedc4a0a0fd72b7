package domain

import "time"

// FreeSlots computes every free gap within working hours across all calendar
// days touching [rangeStart, rangeEnd), after removing the busy intervals
// (appointments and absences).
//
// Days are enumerated by calendar date in loc rather than by adding fixed
// 24-hour steps, so day boundaries stay correct across DST transitions.
// Gaps from adjacent days are never merged: a gap ending at one day's close
// and another starting at the next day's open stay separate.
//
// Degenerate input (no rules, rangeStart >= rangeEnd) yields an empty list.
func FreeSlots(rules []*WorkingHoursRule, busy []TimeInterval, rangeStart, rangeEnd time.Time, loc *time.Location) []TimeInterval {
	gaps := make([]TimeInterval, 0)
	if len(rules) == 0 || !rangeEnd.After(rangeStart) {
		return gaps
	}

	day := StartOfDay(rangeStart, loc)
	for day.Before(rangeEnd) {
		segments := SegmentsForDay(rules, day, rangeStart, rangeEnd, loc)
		gaps = append(gaps, SubtractAll(segments, busy)...)
		day = day.AddDate(0, 0, 1)
	}

	return gaps
}

// FreeSlotsForDay is the single-day variant used by the booking form: the
// same subtraction, scoped to the calendar day of rangeStart. The caller
// pre-filters busy to one staff member. Cheap enough to run on every input
// change.
func FreeSlotsForDay(rules []*WorkingHoursRule, busy []TimeInterval, rangeStart, rangeEnd time.Time, loc *time.Location) []TimeInterval {
	if len(rules) == 0 || !rangeEnd.After(rangeStart) {
		return []TimeInterval{}
	}

	day := StartOfDay(rangeStart, loc)
	dayEnd := day.AddDate(0, 0, 1)
	if rangeEnd.After(dayEnd) {
		rangeEnd = dayEnd
	}

	segments := SegmentsForDay(rules, day, rangeStart, rangeEnd, loc)
	return SubtractAll(segments, busy)
}

// StartOfDay returns midnight of t's calendar day in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
