package rooms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrate/internal/domain/shared/clock"
	"roomrate/internal/domain/shared/daterange"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	r, err := NewRoom(CreateParams{
		ID:            "room-1",
		PropertyID:    "prop-1",
		Name:          "Deluxe Garden",
		BasePrice:     500_000,
		GuestCapacity: 2,
		Now:           now,
	})
	require.NoError(t, err)
	return r
}

func TestNewRoomValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateParams)
		errIs  error
	}{
		{name: "missing id", mutate: func(p *CreateParams) { p.ID = " " }, errIs: ErrRoomIDRequired},
		{name: "missing property", mutate: func(p *CreateParams) { p.PropertyID = "" }, errIs: ErrPropertyRequired},
		{name: "missing name", mutate: func(p *CreateParams) { p.Name = "" }, errIs: ErrNameRequired},
		{name: "negative price", mutate: func(p *CreateParams) { p.BasePrice = -1 }, errIs: ErrBasePrice},
		{name: "zero capacity", mutate: func(p *CreateParams) { p.GuestCapacity = 0 }, errIs: ErrGuestCapacity},
		{name: "negative stock", mutate: func(p *CreateParams) { p.Stock = -2 }, errIs: ErrStock},
		{name: "valid", mutate: func(p *CreateParams) {}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := CreateParams{ID: "r", PropertyID: "p", Name: "Suite", BasePrice: 1, GuestCapacity: 1, Now: now}
			tc.mutate(&params)
			r, err := NewRoom(params)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, r.Stock)
			require.Len(t, r.PendingEvents(), 1)
			assert.Equal(t, "room.created", r.PendingEvents()[0].EventName())
		})
	}
}

func TestAddPeakSeasonRateRejectsOverlap(t *testing.T) {
	r := newTestRoom(t)
	_, err := r.AddPeakSeasonRate(PeakSeasonParams{
		ID: "p1", StartDate: clock.Date(2025, 12, 24), EndDate: clock.Date(2025, 12, 26), Price: 1_200_000, Now: now,
	})
	require.NoError(t, err)

	_, err = r.AddPeakSeasonRate(PeakSeasonParams{
		ID: "p2", StartDate: clock.Date(2025, 12, 26), EndDate: clock.Date(2025, 12, 31), Price: 900_000, Now: now,
	})
	assert.ErrorIs(t, err, ErrPeakSeasonOverlap)

	_, err = r.AddPeakSeasonRate(PeakSeasonParams{
		ID: "p3", StartDate: clock.Date(2025, 12, 31), EndDate: clock.Date(2025, 12, 27), Price: 900_000, Now: now,
	})
	assert.ErrorIs(t, err, daterange.ErrInvalidWindow)

	_, err = r.AddPeakSeasonRate(PeakSeasonParams{
		ID: "p4", StartDate: clock.Date(2025, 12, 27), EndDate: clock.Date(2025, 12, 31), Price: -5, Now: now,
	})
	assert.ErrorIs(t, err, ErrPeakSeasonPrice)

	assert.Len(t, r.PeakSeasonRates, 1)
}

func TestPeakSeasonRateOnIsDeterministicForOverlaps(t *testing.T) {
	older := PeakSeasonRate{ID: "a", StartDate: clock.Date(2025, 12, 20), EndDate: clock.Date(2025, 12, 31), Price: 800_000, CreatedAt: now}
	newer := PeakSeasonRate{ID: "b", StartDate: clock.Date(2025, 12, 24), EndDate: clock.Date(2025, 12, 26), Price: 1_200_000, CreatedAt: now.Add(time.Hour)}
	sameTimeLaterStart := PeakSeasonRate{ID: "c", StartDate: clock.Date(2025, 12, 25), EndDate: clock.Date(2025, 12, 25), Price: 1_500_000, CreatedAt: now.Add(time.Hour)}

	for _, order := range [][]PeakSeasonRate{
		{older, newer, sameTimeLaterStart},
		{sameTimeLaterStart, newer, older},
		{newer, older, sameTimeLaterStart},
	} {
		r := &Room{PeakSeasonRates: order}

		got, ok := r.PeakSeasonRateOn(clock.Date(2025, 12, 24))
		require.True(t, ok)
		assert.Equal(t, "b", got.ID)

		got, ok = r.PeakSeasonRateOn(clock.Date(2025, 12, 25).Add(20 * time.Hour))
		require.True(t, ok)
		assert.Equal(t, "c", got.ID)

		got, ok = r.PeakSeasonRateOn(clock.Date(2025, 12, 30))
		require.True(t, ok)
		assert.Equal(t, "a", got.ID)

		_, ok = r.PeakSeasonRateOn(clock.Date(2026, 1, 1))
		assert.False(t, ok)
	}
}

func TestRemoveWindows(t *testing.T) {
	r := newTestRoom(t)
	_, err := r.AddPeakSeasonRate(PeakSeasonParams{ID: "p1", StartDate: clock.Date(2025, 8, 1), EndDate: clock.Date(2025, 8, 3), Price: 700_000, Now: now})
	require.NoError(t, err)
	_, err = r.AddNonAvailability(BlockParams{ID: "b1", StartDate: clock.Date(2025, 7, 10), EndDate: clock.Date(2025, 7, 12), Reason: " maintenance ", Now: now})
	require.NoError(t, err)
	assert.Equal(t, "maintenance", r.NonAvailability[0].Reason)
	assert.True(t, r.Blocked(clock.Date(2025, 7, 11)))

	assert.ErrorIs(t, r.RemovePeakSeasonRate("missing", now), ErrPeakSeasonNotFound)
	assert.ErrorIs(t, r.RemoveNonAvailability("missing", now), ErrBlockNotFound)
	require.NoError(t, r.RemovePeakSeasonRate("p1", now))
	require.NoError(t, r.RemoveNonAvailability("b1", now))
	assert.Empty(t, r.PeakSeasonRates)
	assert.False(t, r.Blocked(clock.Date(2025, 7, 11)))

	names := make([]string, 0)
	for _, ev := range r.Drain() {
		names = append(names, ev.EventName())
	}
	assert.Equal(t, []string{"room.created", "room.peak_rate_added", "room.blocked", "room.peak_rate_removed", "room.unblocked"}, names)
	assert.Empty(t, r.PendingEvents())
}

func TestSnapshotIsIndependent(t *testing.T) {
	r := newTestRoom(t)
	_, err := r.AddPeakSeasonRate(PeakSeasonParams{ID: "p1", StartDate: clock.Date(2025, 8, 1), EndDate: clock.Date(2025, 8, 3), Price: 700_000, Now: now})
	require.NoError(t, err)
	snap := r.Snapshot()
	snap.PeakSeasonRates[0].Price = 1
	assert.Equal(t, int64(700_000), r.PeakSeasonRates[0].Price)
}
