package clock

import (
	"errors"
	"time"
)

const monthLayout = "2006-01"

var ErrInvalidMonth = errors.New("clock: month must be formatted as yyyy-MM")

// Month identifies one calendar month in the business zone.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	y, m, _ := t.In(businessZone).Date()
	return Month{Year: y, Month: m}
}

func ParseMonth(raw string) (Month, error) {
	t, err := time.ParseInLocation(monthLayout, raw, businessZone)
	if err != nil {
		return Month{}, ErrInvalidMonth
	}
	return MonthOf(t), nil
}

func (m Month) String() string {
	return m.Start().Format(monthLayout)
}

func (m Month) IsZero() bool { return m.Year == 0 && m.Month == 0 }

// Start is local midnight of the 1st.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, businessZone)
}

// End is local midnight of the 1st of the following month (exclusive).
func (m Month) End() time.Time {
	return time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, businessZone)
}

func (m Month) Next() Month { return MonthOf(m.End()) }

// Days lists every local midnight in the month.
func (m Month) Days() []time.Time {
	n := DaysBetween(m.Start(), m.End())
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, AddDays(m.Start(), i))
	}
	return out
}

// MonthsSpanning lists the months touched by the nights in [from, to).
func MonthsSpanning(from, to time.Time) []Month {
	if DaysBetween(from, to) <= 0 {
		return nil
	}
	last := MonthOf(AddDays(to, -1))
	var out []Month
	for m := MonthOf(from); ; m = m.Next() {
		out = append(out, m)
		if m == last {
			break
		}
	}
	return out
}
