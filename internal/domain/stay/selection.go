package stay

import (
	"time"

	"roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
	"roomrate/internal/domain/shared/daterange"
)

// Selection is the in-progress booking input. Zero times mean "not chosen".
type Selection struct {
	RoomID   rooms.RoomID
	CheckIn  time.Time
	CheckOut time.Time
}

// PickCheckIn sets check-in and drops a check-out that no longer follows it.
func (s Selection) PickCheckIn(date time.Time) Selection {
	s.CheckIn = date
	if !s.CheckOut.IsZero() && clock.DaysBetween(s.CheckIn, s.CheckOut) <= 0 {
		s.CheckOut = time.Time{}
	}
	return s
}

// PickCheckOut sets check-out. Without a check-in the date starts the stay
// instead; a date on or before check-in leaves check-out cleared.
func (s Selection) PickCheckOut(date time.Time) Selection {
	if s.CheckIn.IsZero() {
		return s.PickCheckIn(date)
	}
	if clock.DaysBetween(s.CheckIn, date) <= 0 {
		s.CheckOut = time.Time{}
		return s
	}
	s.CheckOut = date
	return s
}

// Complete reports whether a room and both dates are chosen.
func (s Selection) Complete() bool {
	return s.RoomID != "" && !s.CheckIn.IsZero() && !s.CheckOut.IsZero()
}

func (s Selection) Range() (daterange.DateRange, bool) {
	if !s.Complete() {
		return daterange.DateRange{}, false
	}
	dr, err := daterange.New(s.CheckIn, s.CheckOut)
	if err != nil {
		return daterange.DateRange{}, false
	}
	return dr, true
}
