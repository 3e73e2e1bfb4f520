package pricing

import (
	"time"

	"roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

// Source names where a nightly rate came from.
type Source string

const (
	SourceCalendar   Source = "calendar"
	SourcePeakSeason Source = "peak_season"
	SourceBase       Source = "base"
)

type NightlyRate struct {
	Date         time.Time
	Price        int64
	IsPeakSeason bool
	Source       Source
}

// Resolver determines the price of one night. Precedence:
//  1. the calendar feed entry for the date (the backend may already apply
//     demand adjustments),
//  2. the room's peak season window covering the date,
//  3. the room's base price.
type Resolver struct {
	Index *CalendarIndex
}

func (r Resolver) Resolve(room *rooms.Room, date time.Time) NightlyRate {
	day := clock.StartOfDay(date)
	if room == nil {
		return NightlyRate{Date: day, Source: SourceBase}
	}
	if r.Index.For(room.ID) {
		if entry, ok := r.Index.LookupDate(day); ok {
			return NightlyRate{Date: day, Price: nonNegative(entry.Price), IsPeakSeason: entry.IsPeakSeason, Source: SourceCalendar}
		}
	}
	if rate, ok := room.PeakSeasonRateOn(day); ok {
		return NightlyRate{Date: day, Price: nonNegative(rate.Price), IsPeakSeason: true, Source: SourcePeakSeason}
	}
	return NightlyRate{Date: day, Price: nonNegative(room.BasePrice), Source: SourceBase}
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
