package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	checkIn := time.Date(2025, 12, 23, 23, 59, 0, 0, Zone())
	checkOut := time.Date(2025, 12, 24, 0, 1, 0, 0, Zone())
	assert.Equal(t, 1, DaysBetween(checkIn, checkOut))

	sameDay := time.Date(2025, 12, 23, 1, 0, 0, 0, Zone())
	assert.Equal(t, 0, DaysBetween(sameDay, checkIn))
	assert.Equal(t, -1, DaysBetween(checkOut, checkIn))
}

func TestDaysBetweenBeyondDurationRange(t *testing.T) {
	from := Date(2026, time.October, 20)
	to := Date(2526, time.October, 20)
	assert.Equal(t, 182621, DaysBetween(from, to))
	assert.Equal(t, -182621, DaysBetween(to, from))
	assert.Equal(t, to, AddDays(from, 182621))
}

func TestStartOfDayConvertsToBusinessZone(t *testing.T) {
	// 2025-12-23 20:00 UTC is already 2025-12-24 03:00 in Jakarta.
	utc := time.Date(2025, 12, 23, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-12-24", DateKey(StartOfDay(utc)))
	assert.Equal(t, 0, StartOfDay(utc).Hour())
}

func TestToday(t *testing.T) {
	c := Fixed{At: time.Date(2025, 7, 11, 9, 30, 0, 0, Zone())}
	assert.Equal(t, Date(2025, time.July, 11), Today(c))
}

func TestParseDateKeyRoundTrip(t *testing.T) {
	day, err := ParseDateKey("2025-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", DateKey(AddDays(day, 1)))

	_, err = ParseDateKey("28/02/2025")
	assert.Error(t, err)
}

func TestMonth(t *testing.T) {
	m, err := ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Len(t, m.Days(), 29)
	assert.Equal(t, "2024-03", m.Next().String())

	_, err = ParseMonth("2024-13")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestMonthsSpanning(t *testing.T) {
	months := MonthsSpanning(Date(2025, time.December, 30), Date(2026, time.January, 2))
	require.Len(t, months, 2)
	assert.Equal(t, "2025-12", months[0].String())
	assert.Equal(t, "2026-01", months[1].String())

	// check-out on the 1st does not touch the next month
	months = MonthsSpanning(Date(2025, time.December, 30), Date(2026, time.January, 1))
	assert.Len(t, months, 1)

	assert.Empty(t, MonthsSpanning(Date(2025, time.December, 30), Date(2025, time.December, 30)))
}
