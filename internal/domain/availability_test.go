package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Неделя с понедельника 2026-01-05
var (
	monday  = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
)

func weekdayRules(start, end string, weekdays ...int) []*WorkingHoursRule {
	return []*WorkingHoursRule{
		{
			StaffID:   1,
			Weekdays:  weekdays,
			StartTime: types.TimeString(start),
			EndTime:   types.TimeString(end),
		},
	}
}

// Правила пн-пт: утренняя смена 08:00-14:00 и вечерняя 15:00-19:00
func splitShiftRules() []*WorkingHoursRule {
	return []*WorkingHoursRule{
		{StaffID: 1, Weekdays: []int{1, 2, 3, 4, 5}, StartTime: "08:00", EndTime: "14:00"},
		{StaffID: 1, Weekdays: []int{1, 2, 3, 4, 5}, StartTime: "15:00", EndTime: "19:00"},
	}
}

func TestISOWeekday(t *testing.T) {
	assert.Equal(t, 1, ISOWeekday(monday))
	assert.Equal(t, 5, ISOWeekday(monday.AddDate(0, 0, 4)))
	assert.Equal(t, 6, ISOWeekday(monday.AddDate(0, 0, 5)))
	// time.Weekday считает воскресенье нулём, у нас оно седьмое
	assert.Equal(t, 7, ISOWeekday(monday.AddDate(0, 0, 6)))
}

func TestSegmentsForDay_ClipsToRange(t *testing.T) {
	rules := weekdayRules("08:00", "14:00", 1)

	segments := SegmentsForDay(rules, monday, at(10, 0), at(12, 0), time.UTC)
	require.Len(t, segments, 1)
	assert.Equal(t, iv(10, 0, 12, 0), segments[0])
}

func TestSegmentsForDay_WrongWeekday(t *testing.T) {
	rules := weekdayRules("08:00", "14:00", 2) // только вторник

	segments := SegmentsForDay(rules, monday, monday, tuesday, time.UTC)
	assert.Empty(t, segments)
}

func TestSegmentsForDay_OverlappingRulesNotMerged(t *testing.T) {
	rules := []*WorkingHoursRule{
		{StaffID: 1, Weekdays: []int{1}, StartTime: "08:00", EndTime: "12:00"},
		{StaffID: 1, Weekdays: []int{1}, StartTime: "10:00", EndTime: "14:00"},
	}

	segments := SegmentsForDay(rules, monday, monday, tuesday, time.UTC)
	require.Len(t, segments, 2)
	assert.Equal(t, iv(8, 0, 12, 0), segments[0])
	assert.Equal(t, iv(10, 0, 14, 0), segments[1])
}

func TestFreeSlots_NoBusyEvents_OneGapPerDay(t *testing.T) {
	rules := weekdayRules("09:00", "17:00", 1, 2, 3, 4, 5, 6, 7)

	// Пять полных дней: ровно пять гэпов, по одному на день
	gaps := FreeSlots(rules, nil, monday, monday.AddDate(0, 0, 5), time.UTC)
	require.Len(t, gaps, 5)

	for i, gap := range gaps {
		day := monday.AddDate(0, 0, i)
		assert.Equal(t, day.Add(9*time.Hour), gap.Start)
		assert.Equal(t, day.Add(17*time.Hour), gap.End)
	}
}

func TestFreeSlots_SplitShiftWithBusyEvent(t *testing.T) {
	// Запись пн 10:00-10:30, диапазон пн 00:00 - вт 00:00
	busy := []TimeInterval{iv(10, 0, 10, 30)}

	gaps := FreeSlots(splitShiftRules(), busy, monday, tuesday, time.UTC)
	require.Len(t, gaps, 3)
	assert.Equal(t, iv(8, 0, 10, 0), gaps[0])
	assert.Equal(t, iv(10, 30, 14, 0), gaps[1])
	assert.Equal(t, iv(15, 0, 19, 0), gaps[2])

	for _, gap := range gaps {
		assert.False(t, gap.Overlaps(busy[0]))
	}
}

func TestFreeSlots_BusyEventFillsWholeSegment(t *testing.T) {
	// Запись ровно на всю утреннюю смену: остаётся только вечерняя
	busy := []TimeInterval{iv(8, 0, 14, 0)}

	gaps := FreeSlots(splitShiftRules(), busy, monday, tuesday, time.UTC)
	require.Len(t, gaps, 1)
	assert.Equal(t, iv(15, 0, 19, 0), gaps[0])
}

func TestFreeSlots_FullDayBlockExhaustsSegments(t *testing.T) {
	busy := []TimeInterval{{Start: monday, End: tuesday}}

	gaps := FreeSlots(splitShiftRules(), busy, monday, tuesday, time.UTC)
	assert.Empty(t, gaps)
}

func TestFreeSlots_DegenerateInput(t *testing.T) {
	assert.Empty(t, FreeSlots(nil, nil, monday, tuesday, time.UTC))
	assert.Empty(t, FreeSlots(splitShiftRules(), nil, tuesday, monday, time.UTC))
	assert.Empty(t, FreeSlots(splitShiftRules(), nil, monday, monday, time.UTC))
}

func TestFreeSlots_GapsFromAdjacentDaysNotMerged(t *testing.T) {
	// Круглосуточные правила: гэпы соседних дней граничат в полночь,
	// но остаются отдельными интервалами
	rules := weekdayRules("00:00", "24:00", 1, 2, 3, 4, 5, 6, 7)

	gaps := FreeSlots(rules, nil, monday, monday.AddDate(0, 0, 2), time.UTC)
	require.Len(t, gaps, 2)
	assert.Equal(t, gaps[0].End, gaps[1].Start)
}

func TestFreeSlots_DayEnumerationAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// Ночь перевода часов весной 2026 (29 марта) - сутки длятся 23 часа.
	// Перечисление по календарным датам даёт по одному гэпу на день.
	rules := weekdayRules("09:00", "17:00", 1, 2, 3, 4, 5, 6, 7)
	from := time.Date(2026, time.March, 28, 0, 0, 0, 0, loc)
	to := time.Date(2026, time.March, 31, 0, 0, 0, 0, loc)

	gaps := FreeSlots(rules, nil, from, to, loc)
	require.Len(t, gaps, 3)
	for i, gap := range gaps {
		assert.Equal(t, 28+i, gap.Start.Day())
		assert.Equal(t, 9, gap.Start.Hour())
		assert.Equal(t, 17, gap.End.Hour())
	}
}

func TestFreeSlotsForDay_ScopedToSingleDay(t *testing.T) {
	busy := []TimeInterval{iv(9, 0, 9, 30)}

	// Диапазон заходит на вторник, но расчёт ограничен понедельником
	gaps := FreeSlotsForDay(splitShiftRules(), busy, monday, tuesday.AddDate(0, 0, 1), time.UTC)
	require.Len(t, gaps, 3)
	assert.Equal(t, iv(8, 0, 9, 0), gaps[0])
	assert.Equal(t, iv(9, 30, 14, 0), gaps[1])
	assert.Equal(t, iv(15, 0, 19, 0), gaps[2])
}

func TestFreeSlotsForDay_MalformedBusyEventIgnored(t *testing.T) {
	// Событие с end <= start не имеет пересечений и ничего не вырезает
	busy := []TimeInterval{{Start: at(12, 0), End: at(11, 0)}}

	gaps := FreeSlotsForDay(weekdayRules("08:00", "14:00", 1), busy, monday, tuesday, time.UTC)
	require.Len(t, gaps, 1)
	assert.Equal(t, iv(8, 0, 14, 0), gaps[0])
}
