package stay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrate/internal/domain/shared/clock"
)

var frozen = clock.Fixed{At: time.Date(2025, 7, 1, 9, 15, 0, 0, clock.Zone())}

func TestStandardizePinsWallClock(t *testing.T) {
	s := Standardizer{Clock: frozen}
	raw := time.Date(2025, 12, 23, 3, 41, 12, 0, clock.Zone())

	checkIn := s.Standardize(raw, RoleCheckIn)
	assert.Equal(t, time.Date(2025, 12, 23, 14, 0, 0, 0, clock.Zone()), checkIn)

	checkOut := s.Standardize(raw, RoleCheckOut)
	assert.Equal(t, time.Date(2025, 12, 23, 12, 0, 0, 0, clock.Zone()), checkOut)
	assert.Equal(t, 3, raw.Hour(), "input must not be modified")
}

func TestStandardizeConvertsForeignZones(t *testing.T) {
	s := Standardizer{Clock: frozen}
	// 2025-12-23 22:00 in New York is 2025-12-24 10:00 in Jakarta
	ny := time.FixedZone("EST", -5*60*60)
	got := s.Standardize(time.Date(2025, 12, 23, 22, 0, 0, 0, ny), RoleCheckIn)
	assert.Equal(t, "2025-12-24", clock.DateKey(got))
	assert.Equal(t, 14, got.Hour())
}

func TestStandardizeClampsPastDates(t *testing.T) {
	s := Standardizer{Clock: frozen}
	got := s.Standardize(time.Date(2025, 6, 2, 18, 0, 0, 0, clock.Zone()), RoleCheckIn)
	assert.Equal(t, time.Date(2025, 7, 1, 14, 0, 0, 0, clock.Zone()), got)

	// today at an early hour is not in the past
	got = s.Standardize(time.Date(2025, 7, 1, 0, 5, 0, 0, clock.Zone()), RoleCheckOut)
	assert.Equal(t, time.Date(2025, 7, 1, 12, 0, 0, 0, clock.Zone()), got)
}

func TestStandardizeIsIdempotent(t *testing.T) {
	s := Standardizer{Clock: frozen}
	inputs := []time.Time{
		time.Date(2025, 6, 30, 23, 59, 0, 0, clock.Zone()),
		time.Date(2025, 7, 1, 0, 0, 0, 0, clock.Zone()),
		time.Date(2025, 12, 31, 13, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 28, 11, 59, 59, 0, clock.Zone()),
	}
	for _, in := range inputs {
		for _, role := range []Role{RoleCheckIn, RoleCheckOut} {
			once := s.Standardize(in, role)
			assert.Equal(t, once, s.Standardize(once, role), "%s %s", in, role)
		}
	}
}

func TestSelectionFlow(t *testing.T) {
	day := func(d int) time.Time { return clock.Date(2025, 12, d) }
	sel := Selection{RoomID: "room-1"}

	sel = sel.PickCheckOut(day(23))
	assert.Equal(t, day(23), sel.CheckIn, "check-out before check-in becomes check-in")
	assert.True(t, sel.CheckOut.IsZero())

	sel = sel.PickCheckOut(day(27))
	require.True(t, sel.Complete())
	dr, ok := sel.Range()
	require.True(t, ok)
	assert.Equal(t, 4, dr.Nights())

	sel = sel.PickCheckIn(day(27))
	assert.True(t, sel.CheckOut.IsZero(), "check-in at current check-out clears it")

	sel = sel.PickCheckOut(day(26))
	assert.True(t, sel.CheckOut.IsZero(), "check-out before check-in is cleared")
	_, ok = sel.Range()
	assert.False(t, ok)
}

func TestCheckLength(t *testing.T) {
	in := clock.Date(2026, 10, 20)
	assert.NoError(t, CheckLength(in, clock.AddDays(in, DefaultMaxNights), DefaultMaxNights))

	err := CheckLength(in, clock.Date(2526, 10, 20), DefaultMaxNights)
	require.ErrorIs(t, err, ErrStayTooLong)
	assert.Contains(t, err.Error(), "182621 requested")

	assert.NoError(t, CheckLength(in, time.Time{}, DefaultMaxNights), "incomplete stays are not measured")
}
