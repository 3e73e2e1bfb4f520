package clock

import (
	"time"
)

// DateKeyLayout is the calendar-day key format shared with the feed contract.
const DateKeyLayout = "2006-01-02"

// DefaultZoneName is the business timezone all day arithmetic happens in.
const DefaultZoneName = "Asia/Jakarta"

// jakartaFallback is used when the tz database is not available in the runtime image.
var jakartaFallback = time.FixedZone("WIB", 7*60*60)

// Clock reports the current instant. Tests freeze it with Fixed.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }

// LoadZone resolves a zone name, falling back to WIB (UTC+7, no DST) for the
// default business zone when tzdata is missing.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultZoneName
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		if name == DefaultZoneName {
			return jakartaFallback, nil
		}
		return nil, err
	}
	return loc, nil
}

var businessZone = mustLoad(DefaultZoneName)

func mustLoad(name string) *time.Location {
	loc, err := LoadZone(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Zone returns the business timezone.
func Zone() *time.Location { return businessZone }

// SetZone replaces the business timezone. Call once during startup, before
// any request is served.
func SetZone(loc *time.Location) {
	if loc != nil {
		businessZone = loc
	}
}

// StartOfDay truncates t to local midnight in the business zone.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(businessZone).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, businessZone)
}

// Today is local midnight of c's current instant.
func Today(c Clock) time.Time {
	if c == nil {
		c = System{}
	}
	return StartOfDay(c.Now())
}

// Date builds local midnight for a calendar date in the business zone.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, businessZone)
}

// AddDays moves a day boundary by n calendar days. Uses the calendar instead of
// 24h multiples so a DST zone would not drift off midnight.
func AddDays(t time.Time, n int) time.Time {
	day := StartOfDay(t)
	y, m, d := day.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, businessZone)
}

// DaysBetween counts calendar days from a to b after truncating both to local
// midnight. Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	from := StartOfDay(a)
	to := StartOfDay(b)
	ay, am, ad := from.Date()
	by, bm, bd := to.Date()
	fromUTC := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	toUTC := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int((toUTC.Unix() - fromUTC.Unix()) / secondsPerDay)
}

// secondsPerDay is exact for UTC midnights. Subtracting as a Duration caps
// out near 292 years.
const secondsPerDay = 24 * 60 * 60

// DateKey formats t's business-zone calendar date as yyyy-MM-dd.
func DateKey(t time.Time) string {
	return t.In(businessZone).Format(DateKeyLayout)
}

// ParseDateKey parses yyyy-MM-dd into local midnight.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, key, businessZone)
}
