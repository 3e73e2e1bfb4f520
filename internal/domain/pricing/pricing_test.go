package pricing

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

var createdAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time { return clock.Date(y, m, d) }

func christmasRoom() *rooms.Room {
	return &rooms.Room{
		ID:            "room-1",
		PropertyID:    "prop-1",
		BasePrice:     500_000,
		GuestCapacity: 2,
		Stock:         1,
		PeakSeasonRates: []rooms.PeakSeasonRate{{
			ID:        "xmas",
			RoomID:    "room-1",
			StartDate: day(2025, 12, 24),
			EndDate:   day(2025, 12, 26),
			Price:     1_200_000,
			CreatedAt: createdAt,
		}},
	}
}

func TestAggregateChristmasScenario(t *testing.T) {
	room := christmasRoom()
	checkIn := time.Date(2025, 12, 23, 14, 0, 0, 0, clock.Zone())
	checkOut := time.Date(2025, 12, 27, 12, 0, 0, 0, clock.Zone())

	got := Aggregator{}.Aggregate(room, checkIn, checkOut)

	assert.Equal(t, 4, got.Nights)
	assert.Equal(t, int64(4_100_000), got.TotalPrice)
	assert.Equal(t, 3, got.PeakSeasonDays)
	assert.Equal(t, int64(1_200_000), got.PeakSeasonRatePerNight)
	assert.Equal(t, int64(1_025_000), got.AverageNightlyRate())
	want := map[string]int64{
		"2025-12-23": 500_000,
		"2025-12-24": 1_200_000,
		"2025-12-25": 1_200_000,
		"2025-12-26": 1_200_000,
	}
	if diff := cmp.Diff(want, got.NightlyPrices); diff != "" {
		t.Fatalf("nightly prices mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, got.Lines, 4)
	assert.Equal(t, SourceBase, got.Lines[0].Source)
	assert.Equal(t, SourcePeakSeason, got.Lines[1].Source)
}

func TestAggregateNoBreakdown(t *testing.T) {
	room := christmasRoom()
	d := time.Date(2025, 12, 23, 14, 0, 0, 0, clock.Zone())
	cases := map[string]struct {
		room    *rooms.Room
		in, out time.Time
	}{
		"no room":      {room: nil, in: d, out: d.AddDate(0, 0, 2)},
		"no check-in":  {room: room, out: d},
		"no check-out": {room: room, in: d},
		"same day":     {room: room, in: d, out: d.Add(5 * time.Hour)},
		"reversed":     {room: room, in: d, out: d.AddDate(0, 0, -3)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := Aggregator{}.Aggregate(tc.room, tc.in, tc.out)
			assert.True(t, got.IsZero())
			assert.Zero(t, got.TotalPrice)
			assert.Nil(t, got.NightlyPrices)
			assert.Zero(t, got.AverageNightlyRate())
		})
	}
}

func TestNightCountIgnoresTimeOfDay(t *testing.T) {
	room := christmasRoom()
	late := time.Date(2025, 12, 23, 23, 59, 0, 0, clock.Zone())
	early := time.Date(2025, 12, 24, 0, 1, 0, 0, clock.Zone())
	got := Aggregator{}.Aggregate(room, late, early)
	assert.Equal(t, 1, got.Nights)
	assert.Equal(t, map[string]int64{"2025-12-23": 500_000}, got.NightlyPrices)

	// UTC inputs are read in the business zone: 2025-12-22 18:00 UTC is 12-23 01:00 WIB
	utcIn := time.Date(2025, 12, 22, 18, 0, 0, 0, time.UTC)
	utcOut := time.Date(2025, 12, 24, 16, 30, 0, 0, time.UTC)
	got = Aggregator{}.Aggregate(room, utcIn, utcOut)
	assert.Equal(t, clock.DaysBetween(utcIn, utcOut), got.Nights)
	assert.Equal(t, 1, got.Nights)
}

func TestTotalEqualsSumOfResolvedNights(t *testing.T) {
	room := christmasRoom()
	index := NewCalendarIndex(room.ID, clock.MonthOf(day(2025, 12, 1)), room.BasePrice, []CalendarDayEntry{
		{Date: day(2025, 12, 20), Price: 650_000, IsAvailable: true, AvailableStock: 1},
		{Date: day(2025, 12, 25), Price: 1_400_000, IsAvailable: true, AvailableStock: 1, IsPeakSeason: true},
	})
	resolver := Resolver{Index: index}
	agg := Aggregator{Resolver: resolver}

	start := day(2025, 12, 15)
	for n := 1; n <= 20; n++ {
		checkIn := start.Add(14 * time.Hour)
		checkOut := clock.AddDays(start, n).Add(12 * time.Hour)
		got := agg.Aggregate(room, checkIn, checkOut)

		var sum int64
		for i := 0; i < n; i++ {
			sum += resolver.Resolve(room, clock.AddDays(start, i)).Price
		}
		assert.Equal(t, sum, got.TotalPrice, "nights=%d", n)
		assert.Len(t, got.NightlyPrices, n)
		assert.Equal(t, n, got.Nights)
	}
}

func TestResolverPrecedence(t *testing.T) {
	room := christmasRoom()
	index := NewCalendarIndex(room.ID, clock.MonthOf(day(2025, 12, 1)), room.BasePrice, []CalendarDayEntry{
		{Date: day(2025, 12, 24), Price: 1_350_000, IsAvailable: true, AvailableStock: 1, IsPeakSeason: true},
		{Date: day(2025, 12, 10), Price: 450_000, IsAvailable: true, AvailableStock: 1},
	})
	r := Resolver{Index: index}

	got := r.Resolve(room, time.Date(2025, 12, 24, 21, 0, 0, 0, clock.Zone()))
	assert.Equal(t, NightlyRate{Date: day(2025, 12, 24), Price: 1_350_000, IsPeakSeason: true, Source: SourceCalendar}, got)

	// gap in the feed falls back to the local peak window
	got = r.Resolve(room, day(2025, 12, 25))
	assert.Equal(t, int64(1_200_000), got.Price)
	assert.Equal(t, SourcePeakSeason, got.Source)

	got = r.Resolve(room, day(2025, 12, 10))
	assert.Equal(t, int64(450_000), got.Price)

	got = r.Resolve(room, day(2025, 11, 30))
	assert.Equal(t, NightlyRate{Date: day(2025, 11, 30), Price: 500_000, Source: SourceBase}, got)

	// an index built for another room is ignored
	other := Resolver{Index: NewCalendarIndex("room-2", clock.Month{}, 1, []CalendarDayEntry{{Date: day(2025, 12, 10), Price: 1}})}
	assert.Equal(t, int64(500_000), other.Resolve(room, day(2025, 12, 10)).Price)
}

func TestPeakWindowNeverYieldsBasePrice(t *testing.T) {
	room := christmasRoom()
	indexes := []*CalendarIndex{
		nil,
		NewCalendarIndex(room.ID, clock.Month{}, room.BasePrice, nil),
		BuildMonthIndex(room, clock.MonthOf(day(2025, 12, 1)), nil),
	}
	for _, idx := range indexes {
		for d := 24; d <= 26; d++ {
			got := Resolver{Index: idx}.Resolve(room, day(2025, 12, d))
			assert.NotEqual(t, room.BasePrice, got.Price)
			assert.True(t, got.IsPeakSeason)
		}
	}
}

func TestCalendarIndexLookup(t *testing.T) {
	var nilIndex *CalendarIndex
	_, ok := nilIndex.Lookup("2025-12-01")
	assert.False(t, ok)
	assert.Zero(t, nilIndex.Len())
	assert.Nil(t, nilIndex.Entries())

	idx := NewCalendarIndex("room-1", clock.MonthOf(day(2025, 12, 1)), 500_000, []CalendarDayEntry{
		{Date: time.Date(2025, 12, 2, 18, 0, 0, 0, time.UTC), Price: 1}, // 12-03 01:00 WIB
		{Date: day(2025, 12, 1), Price: 2},
		{Date: day(2025, 12, 1), Price: 3},
	})
	assert.Equal(t, 2, idx.Len())
	entry, ok := idx.Lookup("2025-12-03")
	require.True(t, ok)
	assert.Equal(t, int64(1), entry.Price)
	entry, _ = idx.Lookup("2025-12-01")
	assert.Equal(t, int64(3), entry.Price, "later duplicate wins")
	_, ok = idx.Lookup("2025-12-02")
	assert.False(t, ok)

	entries := idx.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "2025-12-01", entries[0].DateKey())
}

func TestCombine(t *testing.T) {
	dec := NewCalendarIndex("room-1", clock.MonthOf(day(2025, 12, 1)), 10, []CalendarDayEntry{{Date: day(2025, 12, 31), Price: 7}})
	jan := NewCalendarIndex("room-1", clock.MonthOf(day(2026, 1, 1)), 10, []CalendarDayEntry{{Date: day(2026, 1, 1), Price: 8}})
	foreign := NewCalendarIndex("room-9", clock.MonthOf(day(2026, 1, 1)), 10, []CalendarDayEntry{{Date: day(2026, 1, 2), Price: 9}})

	all := Combine(nil, dec, jan, foreign)
	assert.Equal(t, rooms.RoomID("room-1"), all.RoomID())
	assert.Equal(t, 2, all.Len())
	assert.Len(t, all.Months(), 2)
	_, ok := all.Lookup("2026-01-02")
	assert.False(t, ok)
	assert.Equal(t, 1, dec.Len(), "inputs are not mutated")
	assert.Nil(t, Combine())
}

func TestBuildMonthFeed(t *testing.T) {
	room := christmasRoom()
	room.Stock = 2
	room.NonAvailability = []rooms.NonAvailability{{ID: "b", RoomID: room.ID, StartDate: day(2025, 12, 5), EndDate: day(2025, 12, 6)}}
	booked := func(d time.Time) int {
		switch clock.DateKey(d) {
		case "2025-12-10":
			return 1
		case "2025-12-11":
			return 2
		}
		return 0
	}
	feed := BuildMonthFeed(room, clock.MonthOf(day(2025, 12, 1)), booked)
	require.Len(t, feed, 31)

	byKey := map[string]CalendarDayEntry{}
	for _, e := range feed {
		byKey[e.DateKey()] = e
	}
	assert.Equal(t, CalendarDayEntry{Date: day(2025, 12, 1), Price: 500_000, IsAvailable: true, AvailableStock: 2}, byKey["2025-12-01"])
	assert.False(t, byKey["2025-12-05"].IsAvailable)
	assert.Zero(t, byKey["2025-12-06"].AvailableStock)
	assert.Equal(t, 1, byKey["2025-12-10"].AvailableStock)
	assert.True(t, byKey["2025-12-10"].IsAvailable)
	assert.False(t, byKey["2025-12-11"].IsAvailable)
	assert.True(t, byKey["2025-12-25"].IsPeakSeason)
	assert.Equal(t, int64(1_200_000), byKey["2025-12-25"].Price)

	assert.Nil(t, BuildMonthFeed(nil, clock.MonthOf(day(2025, 12, 1)), nil))
}

func TestBuildReports(t *testing.T) {
	month := clock.MonthOf(day(2025, 12, 1))
	a := christmasRoom()
	b := &rooms.Room{ID: "room-2", PropertyID: "prop-1", BasePrice: 300_000, GuestCapacity: 4, Stock: 3,
		NonAvailability: []rooms.NonAvailability{{ID: "x", StartDate: day(2025, 12, 1), EndDate: day(2025, 12, 1)}}}

	idxA := BuildMonthIndex(a, month, nil)
	sparse := NewCalendarIndex(b.ID, month, b.BasePrice, BuildMonthFeed(b, month, nil)[:10])

	roomReport := BuildMonthReport(idxA, month)
	assert.Len(t, roomReport.Cells, 31)
	assert.Equal(t, 3, roomReport.PeakSeasonDays)
	assert.Equal(t, int64(500_000), roomReport.MinPrice)
	assert.Equal(t, int64(1_200_000), roomReport.MaxPrice)
	assert.Equal(t, int64((28*500_000+3*1_200_000+15)/31), roomReport.AveragePrice)
	assert.Equal(t, 31, roomReport.AvailableNights)

	sparseReport := BuildMonthReport(sparse, month)
	assert.Equal(t, 21, sparseReport.UnknownDays)
	assert.Equal(t, 1, sparseReport.UnavailableDays)

	prop := BuildPropertyReport("prop-1", month, []*CalendarIndex{idxA, sparse, nil})
	require.Len(t, prop.Cells, 31)
	assert.Len(t, prop.Rooms, 2)

	first := prop.Cells[0]
	assert.Equal(t, 2, first.RoomsKnown)
	assert.Equal(t, 1, first.RoomsAvailable)
	assert.Equal(t, int64(500_000), first.LowestPrice)
	assert.Equal(t, 1, first.AvailableStock)

	second := prop.Cells[1]
	assert.Equal(t, int64(300_000), second.LowestPrice)
	assert.Equal(t, 4, second.AvailableStock)

	xmas := prop.Cells[24]
	assert.Equal(t, "2025-12-25", clock.DateKey(xmas.Date))
	assert.True(t, xmas.AnyPeakSeason)
	assert.Equal(t, 1, xmas.RoomsKnown)
}
