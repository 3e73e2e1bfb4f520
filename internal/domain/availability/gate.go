package availability

import (
	"time"

	"roomrate/internal/domain/pricing"
	"roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

// Gate decides whether a date may be picked in the stay calendar. It never
// mutates its inputs.
type Gate struct {
	Clock clock.Clock
	Index *pricing.CalendarIndex
}

// IsSelectable applies the rules in order, first match wins:
//  1. dates before today are not selectable,
//  2. dates inside a non-availability window of the room are not selectable,
//  3. dates the calendar index marks unavailable are not selectable,
//  4. everything else is selectable, including dates the index does not know.
//
// Windows belonging to another room are ignored; a window without a room id
// is taken to belong to the room being checked.
func (g Gate) IsSelectable(date time.Time, room *rooms.Room, windows []rooms.NonAvailability) bool {
	return g.Evaluate(date, room, windows) == VerdictSelectable
}

// Verdict names the rule that decided selectability.
type Verdict string

const (
	VerdictSelectable  Verdict = "selectable"
	VerdictPast        Verdict = "past"
	VerdictBlackout    Verdict = "blackout"
	VerdictUnavailable Verdict = "unavailable"
)

func (g Gate) Evaluate(date time.Time, room *rooms.Room, windows []rooms.NonAvailability) Verdict {
	day := clock.StartOfDay(date)
	if day.Before(clock.Today(g.Clock)) {
		return VerdictPast
	}
	var roomID rooms.RoomID
	if room != nil {
		roomID = room.ID
	}
	for _, w := range windows {
		if w.RoomID != "" && w.RoomID != roomID {
			continue
		}
		if w.Covers(day) {
			return VerdictBlackout
		}
	}
	if room != nil && g.Index.For(room.ID) {
		if entry, ok := g.Index.LookupDate(day); ok && !entry.IsAvailable {
			return VerdictUnavailable
		}
	}
	return VerdictSelectable
}

// DayFlag is one cell of a month's selectability map.
type DayFlag struct {
	Date       time.Time
	Selectable bool
	Verdict    Verdict
}

// Month evaluates every day of month against the room's own windows.
func (g Gate) Month(room *rooms.Room, month clock.Month) []DayFlag {
	var windows []rooms.NonAvailability
	if room != nil {
		windows = room.NonAvailability
	}
	days := month.Days()
	out := make([]DayFlag, 0, len(days))
	for _, day := range days {
		verdict := g.Evaluate(day, room, windows)
		out = append(out, DayFlag{Date: day, Selectable: verdict == VerdictSelectable, Verdict: verdict})
	}
	return out
}

// StaySelectable reports whether every night of the stay can be picked. The
// departure day is not a night and is not checked.
func (g Gate) StaySelectable(room *rooms.Room, checkIn, checkOut time.Time) bool {
	nights := clock.DaysBetween(checkIn, checkOut)
	if room == nil || nights <= 0 {
		return false
	}
	for i := 0; i < nights; i++ {
		if !g.IsSelectable(clock.AddDays(checkIn, i), room, room.NonAvailability) {
			return false
		}
	}
	return true
}
