package mongo

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainavailability "roomrate/internal/domain/availability"
	domainbooking "roomrate/internal/domain/booking"
	domainpricing "roomrate/internal/domain/pricing"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
	"roomrate/internal/domain/shared/daterange"
)

func christmasRoom(t *testing.T) *domainrooms.Room {
	t.Helper()
	now := time.Date(2025, 7, 1, 10, 0, 0, 0, clock.Zone())
	room, err := domainrooms.NewRoom(domainrooms.CreateParams{
		ID: "room-1", PropertyID: "prop-1", Name: "Deluxe", BasePrice: 500_000, GuestCapacity: 2, Stock: 2, Now: now,
	})
	require.NoError(t, err)
	_, err = room.AddPeakSeasonRate(domainrooms.PeakSeasonParams{
		ID: "peak-1", StartDate: clock.Date(2025, 12, 24), EndDate: clock.Date(2025, 12, 26), Price: 1_200_000, Now: now,
	})
	require.NoError(t, err)
	_, err = room.AddNonAvailability(domainrooms.BlockParams{
		ID: "block-1", StartDate: clock.Date(2025, 7, 10), EndDate: clock.Date(2025, 7, 12), Reason: "renovation", Now: now,
	})
	require.NoError(t, err)
	room.Version = 3
	return room
}

func TestRoomDocumentRestoresWindows(t *testing.T) {
	room := christmasRoom(t)
	got := newRoomDocument(room).toAggregate()

	assert.Equal(t, room.ID, got.ID)
	assert.Equal(t, room.PropertyID, got.PropertyID)
	assert.Equal(t, int64(500_000), got.BasePrice)
	assert.Equal(t, 2, got.Stock)
	assert.Equal(t, int64(3), got.Version)
	if diff := cmp.Diff(room.PeakSeasonRates, got.PeakSeasonRates); diff != "" {
		t.Fatalf("peak rates mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(room.NonAvailability, got.NonAvailability); diff != "" {
		t.Fatalf("blackouts mismatch (-want +got):\n%s", diff)
	}

	rate, ok := got.PeakSeasonRateOn(clock.Date(2025, 12, 25))
	require.True(t, ok)
	assert.Equal(t, "peak-1", rate.ID)
	assert.True(t, got.Blocked(clock.Date(2025, 7, 11)))
	assert.Equal(t, clock.Zone(), got.PeakSeasonRates[0].StartDate.Location())
}

func TestOccupancyDocumentKeepsReservations(t *testing.T) {
	occ := domainavailability.NewOccupancy("room-1", 1)
	stay, err := daterange.New(clock.Date(2025, 12, 23), clock.Date(2025, 12, 27))
	require.NoError(t, err)
	require.NoError(t, occ.Reserve(stay, "booking-1", time.Now()))

	got := newOccupancyDocument(occ).toAggregate()
	assert.Equal(t, 1, got.BookedOn(clock.Date(2025, 12, 26)))
	assert.Equal(t, 0, got.BookedOn(clock.Date(2025, 12, 27)))
	assert.False(t, got.CanReserve(stay))
	require.NoError(t, got.Release("booking-1", time.Now()))
	assert.True(t, got.CanReserve(stay))
}

func TestBookingDocumentRebuildsNightlyPrices(t *testing.T) {
	room := christmasRoom(t)
	checkIn, checkOut := clock.Date(2025, 12, 23), clock.Date(2025, 12, 27)
	price := domainpricing.Aggregator{}.Aggregate(room, checkIn, checkOut)
	stay, err := daterange.New(checkIn, checkOut)
	require.NoError(t, err)
	booking, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID: "booking-1", Room: room, GuestID: "guest-1", Range: stay, Guests: 2, Price: price, CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	got := newBookingDocument(booking).toAggregate()
	assert.Equal(t, int64(4_100_000), got.Price.TotalPrice)
	assert.Equal(t, 3, got.Price.PeakSeasonDays)
	assert.Equal(t, price.NightlyPrices, got.Price.NightlyPrices)
	require.Len(t, got.Price.Lines, 4)
	assert.Equal(t, domainpricing.SourcePeakSeason, got.Price.Lines[1].Source)
	assert.True(t, got.Range.CheckIn.Equal(stay.CheckIn))
	assert.Equal(t, booking.State, got.State)
}

func TestTimestampHelpersKeepZero(t *testing.T) {
	assert.Zero(t, timeToTimestamp(time.Time{}))
	assert.True(t, timestampToTime(0).IsZero())
	at := time.Date(2025, 7, 1, 14, 0, 0, 0, clock.Zone())
	assert.True(t, at.Equal(timestampToTime(timeToTimestamp(at))))
}
