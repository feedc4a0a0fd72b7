package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	valid := []TimeString{"00:00", "09:30", "23:59", "24:00"}
	for _, ts := range valid {
		assert.NoError(t, ts.Validate(), "expected %q to be valid", ts)
	}

	invalid := []TimeString{"", "9:30", "09:60", "25:00", "09-30", "0930", "24:01"}
	for _, ts := range invalid {
		assert.ErrorIs(t, ts.Validate(), ErrInvalidTimeString, "expected %q to be invalid", ts)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	cases := []struct {
		ts   TimeString
		want int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"23:59", 1439},
		// "24:00" обозначает конец суток
		{"24:00", 1440},
	}

	for _, c := range cases {
		got, err := c.ts.Minutes()
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "minutes of %q", c.ts)
	}

	_, err := TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	// Ровно до конца суток - допустимо
	got, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	// За пределы суток - ошибка
	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = TimeString("00:30").AddMinutes(-45)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("09:00").IsBefore("24:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:00").IsAfter("09:00"))
}

func TestTimeString_At(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 3, 2, 15, 47, 12, 0, loc)

	got, err := TimeString("09:30").At(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, loc), got)

	// "24:00" даёт полночь следующего дня
	got, err = TimeString("24:00").At(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, loc), got)
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("18:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("18:00"), ts)

	_, err = NewTimeStringFromString("18:60")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 3, 2, 7, 5, 0, 0, time.UTC))
	assert.Equal(t, TimeString("07:05"), ts)
}
