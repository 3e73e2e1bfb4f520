package pricing

import (
	"sort"
	"time"

	"roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

// CalendarDayEntry is the resolved price and availability of one room on one date.
type CalendarDayEntry struct {
	Date           time.Time
	Price          int64
	IsAvailable    bool
	AvailableStock int
	IsPeakSeason   bool
}

func (e CalendarDayEntry) DateKey() string {
	return clock.DateKey(e.Date)
}

// CalendarIndex is an immutable date-keyed view over a room's calendar feed.
// It is replaced wholesale on refetch, never patched. A nil index is empty.
type CalendarIndex struct {
	roomID    rooms.RoomID
	months    []clock.Month
	basePrice int64
	entries   map[string]CalendarDayEntry
}

// NewCalendarIndex keys entries by business-zone date. A later duplicate of the
// same date replaces the earlier one.
func NewCalendarIndex(roomID rooms.RoomID, month clock.Month, basePrice int64, entries []CalendarDayEntry) *CalendarIndex {
	idx := &CalendarIndex{
		roomID:    roomID,
		basePrice: basePrice,
		entries:   make(map[string]CalendarDayEntry, len(entries)),
	}
	if !month.IsZero() {
		idx.months = []clock.Month{month}
	}
	for _, entry := range entries {
		entry.Date = clock.StartOfDay(entry.Date)
		idx.entries[entry.DateKey()] = entry
	}
	return idx
}

// Combine merges month indexes of the same room into a new index; indexes of
// other rooms and nil indexes are skipped. Inputs are left untouched.
func Combine(indexes ...*CalendarIndex) *CalendarIndex {
	var out *CalendarIndex
	for _, idx := range indexes {
		if idx == nil {
			continue
		}
		if out == nil {
			out = &CalendarIndex{roomID: idx.roomID, basePrice: idx.basePrice, entries: make(map[string]CalendarDayEntry)}
		}
		if idx.roomID != out.roomID {
			continue
		}
		out.months = append(out.months, idx.months...)
		for key, entry := range idx.entries {
			out.entries[key] = entry
		}
	}
	return out
}

// Lookup returns the entry for a yyyy-MM-dd key; false means unknown.
func (i *CalendarIndex) Lookup(dateKey string) (CalendarDayEntry, bool) {
	if i == nil {
		return CalendarDayEntry{}, false
	}
	entry, ok := i.entries[dateKey]
	return entry, ok
}

func (i *CalendarIndex) LookupDate(date time.Time) (CalendarDayEntry, bool) {
	return i.Lookup(clock.DateKey(date))
}

// For reports whether the index describes room; callers must ignore the
// index otherwise.
func (i *CalendarIndex) For(room rooms.RoomID) bool {
	return i != nil && i.roomID == room
}

func (i *CalendarIndex) RoomID() rooms.RoomID {
	if i == nil {
		return ""
	}
	return i.roomID
}

func (i *CalendarIndex) BasePrice() int64 {
	if i == nil {
		return 0
	}
	return i.basePrice
}

func (i *CalendarIndex) Months() []clock.Month {
	if i == nil {
		return nil
	}
	return append([]clock.Month(nil), i.months...)
}

func (i *CalendarIndex) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}

// Entries returns a date-ordered copy.
func (i *CalendarIndex) Entries() []CalendarDayEntry {
	if i == nil {
		return nil
	}
	out := make([]CalendarDayEntry, 0, len(i.entries))
	for _, entry := range i.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date.Before(out[b].Date) })
	return out
}
