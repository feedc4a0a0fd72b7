package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// at возвращает момент времени в фиксированный день (2026-01-05, понедельник)
func at(hour, minute int) time.Time {
	return time.Date(2026, time.January, 5, hour, minute, 0, 0, time.UTC)
}

func iv(startHour, startMin, endHour, endMin int) TimeInterval {
	return TimeInterval{Start: at(startHour, startMin), End: at(endHour, endMin)}
}

func TestTimeInterval_Overlaps(t *testing.T) {
	cases := []struct {
		name string
		a    TimeInterval
		b    TimeInterval
		want bool
	}{
		{"disjoint", iv(8, 0, 9, 0), iv(10, 0, 11, 0), false},
		{"touching boundaries do not overlap", iv(8, 0, 10, 0), iv(10, 0, 11, 0), false},
		{"partial overlap", iv(8, 0, 10, 0), iv(9, 0, 11, 0), true},
		{"contained", iv(8, 0, 12, 0), iv(9, 0, 10, 0), true},
		{"identical", iv(8, 0, 10, 0), iv(8, 0, 10, 0), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.a.Overlaps(c.b))
			assert.Equal(t, c.want, c.b.Overlaps(c.a))
		})
	}
}

func TestSubtract(t *testing.T) {
	cases := []struct {
		name      string
		intervals []TimeInterval
		block     TimeInterval
		want      []TimeInterval
	}{
		{
			name:      "non-intersecting block leaves intervals unchanged",
			intervals: []TimeInterval{iv(8, 0, 10, 0), iv(11, 0, 12, 0)},
			block:     iv(13, 0, 14, 0),
			want:      []TimeInterval{iv(8, 0, 10, 0), iv(11, 0, 12, 0)},
		},
		{
			name:      "block inside interval splits it in two",
			intervals: []TimeInterval{iv(8, 0, 14, 0)},
			block:     iv(10, 0, 10, 30),
			want:      []TimeInterval{iv(8, 0, 10, 0), iv(10, 30, 14, 0)},
		},
		{
			name:      "block covering interval removes it entirely",
			intervals: []TimeInterval{iv(9, 0, 10, 0)},
			block:     iv(8, 0, 11, 0),
			want:      []TimeInterval{},
		},
		{
			name:      "block equal to interval removes it",
			intervals: []TimeInterval{iv(8, 0, 14, 0)},
			block:     iv(8, 0, 14, 0),
			want:      []TimeInterval{},
		},
		{
			name:      "block clips the left edge",
			intervals: []TimeInterval{iv(8, 0, 14, 0)},
			block:     iv(7, 0, 9, 0),
			want:      []TimeInterval{iv(9, 0, 14, 0)},
		},
		{
			name:      "block clips the right edge",
			intervals: []TimeInterval{iv(8, 0, 14, 0)},
			block:     iv(13, 0, 15, 0),
			want:      []TimeInterval{iv(8, 0, 13, 0)},
		},
		{
			name:      "block touching at the boundary changes nothing",
			intervals: []TimeInterval{iv(8, 0, 10, 0)},
			block:     iv(10, 0, 11, 0),
			want:      []TimeInterval{iv(8, 0, 10, 0)},
		},
		{
			name:      "block spans two intervals",
			intervals: []TimeInterval{iv(8, 0, 10, 0), iv(11, 0, 13, 0)},
			block:     iv(9, 0, 12, 0),
			want:      []TimeInterval{iv(8, 0, 9, 0), iv(12, 0, 13, 0)},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Subtract(c.intervals, c.block)
			assert.Equal(t, c.want, got)
		})
	}
}

// Проверка полноты: остатки плюс пересечение с блоком восстанавливают
// исходный интервал без потерь и дублей
func TestSubtract_PiecesReconstructInterval(t *testing.T) {
	it := iv(8, 0, 14, 0)
	block := iv(10, 0, 11, 30)

	pieces := Subtract([]TimeInterval{it}, block)
	require.Len(t, pieces, 2)

	var covered time.Duration
	for _, p := range pieces {
		assert.True(t, p.IsValid())
		assert.False(t, p.Overlaps(block))
		covered += p.Duration()
	}

	assert.Equal(t, it.Duration()-block.Duration(), covered)
	assert.Equal(t, it.Start, pieces[0].Start)
	assert.Equal(t, it.End, pieces[1].End)
}

func TestSubtract_NoNegativeLengthOutputs(t *testing.T) {
	intervals := []TimeInterval{iv(8, 0, 9, 0), iv(9, 0, 9, 0), iv(10, 0, 12, 0)}
	blocks := []TimeInterval{iv(8, 30, 9, 0), iv(10, 0, 12, 0), iv(7, 0, 8, 15)}

	free := SubtractAll(intervals, blocks)
	for _, g := range free {
		assert.True(t, g.IsValid(), "interval %v has non-positive length", g)
	}
}

func TestSubtractAll_ShortCircuitsWhenNothingLeft(t *testing.T) {
	intervals := []TimeInterval{iv(9, 0, 10, 0)}
	blocks := []TimeInterval{iv(8, 0, 11, 0), iv(12, 0, 13, 0)}

	assert.Empty(t, SubtractAll(intervals, blocks))
}
