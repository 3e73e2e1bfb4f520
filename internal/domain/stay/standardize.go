package stay

import (
	"time"

	"roomrate/internal/domain/shared/clock"
)

// Role tells the standardizer which end of the stay a picked date is.
type Role string

const (
	RoleCheckIn  Role = "check-in"
	RoleCheckOut Role = "check-out"
)

const (
	CheckInHour  = 14
	CheckOutHour = 12
)

// Standardizer maps raw calendar-picker dates onto canonical instants in the
// business zone.
type Standardizer struct {
	Clock clock.Clock
}

// Standardize clamps dates before today forward to today and pins the
// wall-clock time for the role. Unknown roles are treated as check-in.
func (s Standardizer) Standardize(date time.Time, role Role) time.Time {
	day := clock.StartOfDay(date)
	if today := clock.Today(s.Clock); day.Before(today) {
		day = today
	}
	hour := CheckInHour
	if role == RoleCheckOut {
		hour = CheckOutHour
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, clock.Zone())
}

// Range standardizes both ends of a stay.
func (s Standardizer) Range(checkIn, checkOut time.Time) (time.Time, time.Time) {
	return s.Standardize(checkIn, RoleCheckIn), s.Standardize(checkOut, RoleCheckOut)
}
