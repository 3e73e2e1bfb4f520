package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"roomrate/internal/domain/pricing"
	"roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
	"roomrate/internal/domain/stay"
)

func testRoom() *rooms.Room {
	return &rooms.Room{
		ID:            "room-1",
		BasePrice:     500_000,
		GuestCapacity: 2,
		Stock:         1,
		PeakSeasonRates: []rooms.PeakSeasonRate{{
			ID: "xmas", StartDate: clock.Date(2025, 12, 24), EndDate: clock.Date(2025, 12, 26), Price: 1_200_000,
		}},
		NonAvailability: []rooms.NonAvailability{{ID: "b", StartDate: clock.Date(2025, 12, 30), EndDate: clock.Date(2025, 12, 31)}},
	}
}

func TestQuoteStandardizesBeforePricing(t *testing.T) {
	e := New(clock.Fixed{At: time.Date(2025, 12, 20, 10, 0, 0, 0, clock.Zone())})
	room := testRoom()

	// a check-in in the past is clamped to today
	got := e.Quote(room, clock.Date(2025, 12, 18), clock.Date(2025, 12, 22), nil)
	assert.Equal(t, 2, got.Nights)
	assert.Equal(t, int64(1_000_000), got.TotalPrice)
	assert.Equal(t, 14, got.CheckIn.Hour())
	assert.Equal(t, 12, got.CheckOut.Hour())

	got = e.Quote(room, clock.Date(2025, 12, 23), clock.Date(2025, 12, 27), nil)
	assert.Equal(t, int64(4_100_000), got.TotalPrice)

	assert.True(t, e.Quote(room, time.Time{}, clock.Date(2025, 12, 27), nil).IsZero())
}

func TestEngineDelegates(t *testing.T) {
	e := New(clock.Fixed{At: time.Date(2025, 12, 20, 10, 0, 0, 0, clock.Zone())})
	room := testRoom()
	index := pricing.NewCalendarIndex(room.ID, clock.MonthOf(clock.Date(2025, 12, 1)), room.BasePrice, []pricing.CalendarDayEntry{
		{Date: clock.Date(2025, 12, 28), Price: 800_000, IsAvailable: false},
	})

	assert.Equal(t, pricing.SourcePeakSeason, e.ResolveNightlyRate(room, clock.Date(2025, 12, 25), index).Source)
	assert.Equal(t, int64(800_000), e.ResolveNightlyRate(room, clock.Date(2025, 12, 28), index).Price)
	assert.False(t, e.IsDateSelectable(clock.Date(2025, 12, 28), room, room.NonAvailability, index))
	assert.False(t, e.IsDateSelectable(clock.Date(2025, 12, 30), room, room.NonAvailability, index))
	assert.True(t, e.IsDateSelectable(clock.Date(2025, 12, 29), room, room.NonAvailability, index))
	assert.False(t, e.IsDateSelectable(clock.Date(2025, 12, 19), room, nil, nil))
	assert.False(t, e.IsStaySelectable(room, clock.Date(2025, 12, 27), clock.Date(2025, 12, 29), index))

	flags := e.SelectableMonth(room, clock.MonthOf(clock.Date(2025, 12, 1)), index)
	assert.Len(t, flags, 31)
}

func TestCheckStayLength(t *testing.T) {
	e := New(clock.Fixed{At: time.Date(2026, 10, 18, 10, 0, 0, 0, clock.Zone())})
	in := clock.Date(2026, 10, 20)

	assert.NoError(t, e.CheckStayLength(in, clock.AddDays(in, 365)))
	assert.ErrorIs(t, e.CheckStayLength(in, clock.AddDays(in, 366)), stay.ErrStayTooLong)
	assert.ErrorIs(t, e.CheckStayLength(in, clock.Date(2526, 10, 20)), stay.ErrStayTooLong)

	e.MaxStayNights = 0
	assert.NoError(t, e.CheckStayLength(in, clock.Date(2526, 10, 20)))
}
