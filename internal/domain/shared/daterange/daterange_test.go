package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrate/internal/domain/shared/clock"
)

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, clock.Zone())
}

func TestNewRejectsEmptyAndReversedRanges(t *testing.T) {
	_, err := New(time.Time{}, at(2025, 12, 27, 12, 0))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(at(2025, 12, 27, 14, 0), at(2025, 12, 23, 12, 0))
	assert.ErrorIs(t, err, ErrInvalidRange)

	// same calendar day: zero nights
	_, err = New(at(2025, 12, 23, 9, 0), at(2025, 12, 23, 22, 0))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNightsUsesCalendarDays(t *testing.T) {
	dr, err := New(at(2025, 12, 23, 23, 59), at(2025, 12, 24, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, dr.Nights())

	dr, err = New(at(2025, 12, 23, 14, 0), at(2025, 12, 27, 12, 0))
	require.NoError(t, err)
	assert.Equal(t, 4, dr.Nights())
	days := dr.Days()
	require.Len(t, days, 4)
	assert.Equal(t, "2025-12-23", clock.DateKey(days[0]))
	assert.Equal(t, "2025-12-26", clock.DateKey(days[3]))
}

func TestContainsDateIsNightBased(t *testing.T) {
	first, _ := New(at(2025, 7, 1, 14, 0), at(2025, 7, 4, 12, 0))

	assert.True(t, first.ContainsDate(at(2025, 7, 1, 0, 30)))
	assert.True(t, first.ContainsDate(at(2025, 7, 3, 23, 0)))
	assert.False(t, first.ContainsDate(at(2025, 7, 4, 1, 0)))
}

func TestWindowIsInclusive(t *testing.T) {
	w, err := NewWindow(at(2025, 7, 10, 0, 0), at(2025, 7, 12, 0, 0))
	require.NoError(t, err)
	assert.True(t, w.Covers(at(2025, 7, 12, 23, 59)))
	assert.False(t, w.Covers(at(2025, 7, 13, 0, 0)))
	assert.False(t, w.Covers(at(2025, 7, 9, 23, 59)))

	other, _ := NewWindow(at(2025, 7, 12, 0, 0), at(2025, 7, 20, 0, 0))
	assert.True(t, w.Overlaps(other))

	_, err = NewWindow(at(2025, 7, 12, 0, 0), at(2025, 7, 10, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidWindow)
}
