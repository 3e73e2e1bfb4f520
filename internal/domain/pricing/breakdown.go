package pricing

import (
	"time"

	"roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
	"roomrate/internal/domain/shared/money"
)

type NightlyLine struct {
	Date         time.Time
	Price        int64
	IsPeakSeason bool
	Source       Source
}

// PriceBreakdown is the derived price of a stay. The zero value means "no
// breakdown": the selection is incomplete or invalid.
type PriceBreakdown struct {
	RoomID                 rooms.RoomID
	CheckIn                time.Time
	CheckOut               time.Time
	Nights                 int
	TotalPrice             int64
	NightlyPrices          map[string]int64
	Lines                  []NightlyLine
	PeakSeasonDays         int
	PeakSeasonRatePerNight int64
}

func (p PriceBreakdown) IsZero() bool {
	return p.Nights == 0
}

// AverageNightlyRate rounds half up to whole rupiah.
func (p PriceBreakdown) AverageNightlyRate() int64 {
	if p.Nights == 0 {
		return 0
	}
	n := int64(p.Nights)
	return (p.TotalPrice + n/2) / n
}

func (p PriceBreakdown) Total() money.Money {
	return money.Rupiah(p.TotalPrice)
}

// Aggregator sums nightly rates of a stay.
type Aggregator struct {
	Resolver Resolver
}

// Aggregate prices every night in [checkIn, checkOut). Both instants are
// truncated to business-zone midnight first so time-of-day never changes the
// night count.
func (a Aggregator) Aggregate(room *rooms.Room, checkIn, checkOut time.Time) PriceBreakdown {
	if room == nil || checkIn.IsZero() || checkOut.IsZero() {
		return PriceBreakdown{}
	}
	nights := clock.DaysBetween(checkIn, checkOut)
	if nights <= 0 {
		return PriceBreakdown{}
	}
	out := PriceBreakdown{
		RoomID:        room.ID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        nights,
		NightlyPrices: make(map[string]int64, nights),
		Lines:         make([]NightlyLine, 0, nights),
	}
	start := clock.StartOfDay(checkIn)
	for i := 0; i < nights; i++ {
		day := clock.AddDays(start, i)
		rate := a.Resolver.Resolve(room, day)
		out.NightlyPrices[clock.DateKey(day)] = rate.Price
		out.Lines = append(out.Lines, NightlyLine{Date: day, Price: rate.Price, IsPeakSeason: rate.IsPeakSeason, Source: rate.Source})
		out.TotalPrice += rate.Price
		if rate.IsPeakSeason {
			out.PeakSeasonDays++
			out.PeakSeasonRatePerNight = rate.Price
		}
	}
	return out
}
