package daterange

import (
	"errors"
	"time"

	"roomrate/internal/domain/shared/clock"
)

var (
	ErrInvalidRange  = errors.New("daterange: checkout must be after checkin")
	ErrInvalidWindow = errors.New("daterange: window end must not precede its start")
)

// DateRange represents a stay as a half-open interval of nights [checkIn, checkOut).
// The instants may carry a wall-clock time; all night arithmetic happens on
// business-zone calendar days.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: checkIn, CheckOut: checkOut}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckOut.IsZero() || dr.CheckIn.IsZero() {
		return ErrInvalidRange
	}
	if dr.Nights() < 1 {
		return ErrInvalidRange
	}
	return nil
}

// Nights counts calendar nights; the departure day is not a night.
func (dr DateRange) Nights() int {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return 0
	}
	n := clock.DaysBetween(dr.CheckIn, dr.CheckOut)
	if n < 0 {
		return 0
	}
	return n
}

// Days lists local midnights of every night in the stay.
func (dr DateRange) Days() []time.Time {
	n := dr.Nights()
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, clock.AddDays(dr.CheckIn, i))
	}
	return out
}

// ContainsDate reports whether t's calendar day is one of the stay's nights.
func (dr DateRange) ContainsDate(t time.Time) bool {
	day := clock.StartOfDay(t)
	return !day.Before(clock.StartOfDay(dr.CheckIn)) && day.Before(clock.StartOfDay(dr.CheckOut))
}

// Window is an inclusive span of calendar days [Start, End], used by peak
// season rates and blackout windows.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow truncates both ends to local midnight.
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{Start: clock.StartOfDay(start), End: clock.StartOfDay(end)}
	if start.IsZero() || end.IsZero() || w.End.Before(w.Start) {
		return Window{}, ErrInvalidWindow
	}
	return w, nil
}

// Covers compares at day granularity, ignoring time of day.
func (w Window) Covers(t time.Time) bool {
	day := clock.StartOfDay(t)
	return !day.Before(clock.StartOfDay(w.Start)) && !day.After(clock.StartOfDay(w.End))
}

func (w Window) Overlaps(other Window) bool {
	return !clock.StartOfDay(w.Start).After(clock.StartOfDay(other.End)) &&
		!clock.StartOfDay(other.Start).After(clock.StartOfDay(w.End))
}
