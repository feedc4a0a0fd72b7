package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantize_SlotMustFitInsideGap(t *testing.T) {
	// Гэп [09:00, 09:45), услуга 30 минут, шаг 15 минут:
	// подходят только 09:00-09:30 и 09:15-09:45
	gaps := []TimeInterval{iv(9, 0, 9, 45)}

	slots := Quantize(gaps, 30*time.Minute, 15*time.Minute)
	require.Len(t, slots, 2)
	assert.Equal(t, CandidateSlot{Start: at(9, 0), End: at(9, 30)}, slots[0])
	assert.Equal(t, CandidateSlot{Start: at(9, 15), End: at(9, 45)}, slots[1])
}

func TestQuantize_OverlappingCandidatesWithinGap(t *testing.T) {
	// 90-минутный гэп, 30-минутная услуга, шаг 15 минут: пять пересекающихся
	// кандидатов; защита от double-booking живёт на пути записи, не здесь
	gaps := []TimeInterval{iv(10, 0, 11, 30)}

	slots := Quantize(gaps, 30*time.Minute, 15*time.Minute)
	require.Len(t, slots, 5)
	assert.Equal(t, at(10, 0), slots[0].Start)
	assert.Equal(t, at(11, 0), slots[4].Start)
}

func TestQuantize_GapSmallerThanDuration(t *testing.T) {
	gaps := []TimeInterval{iv(9, 0, 9, 20)}

	assert.Empty(t, Quantize(gaps, 30*time.Minute, 15*time.Minute))
}

func TestQuantize_DuplicateStartsFromOverlappingGaps(t *testing.T) {
	// Пересекающиеся смены дают пересекающиеся гэпы: одинаковые времена
	// начала не должны предлагаться дважды
	gaps := []TimeInterval{iv(9, 0, 11, 0), iv(10, 0, 12, 0)}

	slots := Quantize(gaps, 60*time.Minute, 30*time.Minute)

	seen := make(map[time.Time]int)
	for _, s := range slots {
		seen[s.Start]++
	}
	for start, count := range seen {
		assert.Equal(t, 1, count, "start %v offered %d times", start, count)
	}

	// Отсортировано по времени начала
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start.Before(slots[i].Start))
	}
}

func TestQuantize_DegenerateInput(t *testing.T) {
	gaps := []TimeInterval{iv(9, 0, 12, 0)}

	assert.Empty(t, Quantize(nil, 30*time.Minute, 15*time.Minute))
	assert.Empty(t, Quantize(gaps, 0, 15*time.Minute))
	assert.Empty(t, Quantize(gaps, 30*time.Minute, 0))
}
