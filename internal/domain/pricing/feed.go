package pricing

import (
	"time"

	"roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

// OccupancyFunc reports how many units of the room are already taken on a date.
type OccupancyFunc func(date time.Time) int

// BuildMonthFeed computes the calendar feed the booking UI consumes for one
// room and month: peak or base price per date, stock left after bookings, and
// availability (blacked-out dates and sold-out dates are unavailable).
func BuildMonthFeed(room *rooms.Room, month clock.Month, booked OccupancyFunc) []CalendarDayEntry {
	if room == nil {
		return nil
	}
	local := Resolver{}
	days := month.Days()
	out := make([]CalendarDayEntry, 0, len(days))
	for _, day := range days {
		taken := 0
		if booked != nil {
			taken = booked(day)
		}
		stock := room.Stock - taken
		if stock < 0 {
			stock = 0
		}
		blocked := room.Blocked(day)
		if blocked {
			stock = 0
		}
		rate := local.Resolve(room, day)
		out = append(out, CalendarDayEntry{
			Date:           day,
			Price:          rate.Price,
			IsAvailable:    !blocked && stock > 0,
			AvailableStock: stock,
			IsPeakSeason:   rate.IsPeakSeason,
		})
	}
	return out
}

// BuildMonthIndex is BuildMonthFeed wrapped into an index.
func BuildMonthIndex(room *rooms.Room, month clock.Month, booked OccupancyFunc) *CalendarIndex {
	if room == nil {
		return nil
	}
	return NewCalendarIndex(room.ID, month, room.BasePrice, BuildMonthFeed(room, month, booked))
}
