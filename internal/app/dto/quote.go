package dto

import (
	"time"

	domainavailability "roomrate/internal/domain/availability"
	domainpricing "roomrate/internal/domain/pricing"
	"roomrate/internal/domain/shared/clock"
)

type NightlyPrice struct {
	Date         string `json:"date"`
	Price        int64  `json:"price"`
	IsPeakSeason bool   `json:"is_peak_season"`
	Source       string `json:"source"`
}

// StayQuote is the price breakdown shown next to the date picker. Available is
// false when the selection is incomplete or invalid; no amounts are sent then.
type StayQuote struct {
	RoomID                 string           `json:"room_id"`
	Available              bool             `json:"available"`
	Selectable             bool             `json:"selectable"`
	CheckIn                *time.Time       `json:"check_in,omitempty"`
	CheckOut               *time.Time       `json:"check_out,omitempty"`
	Nights                 int              `json:"nights"`
	TotalPrice             int64            `json:"total_price"`
	Total                  MoneyDTO         `json:"total"`
	AverageNightlyRate     int64            `json:"average_nightly_rate"`
	NightlyPrices          map[string]int64 `json:"nightly_prices,omitempty"`
	Nightly                []NightlyPrice   `json:"nightly,omitempty"`
	PeakSeasonDays         int              `json:"peak_season_days"`
	PeakSeasonRatePerNight int64            `json:"peak_season_rate_per_night"`
}

func MapStayQuote(roomID string, breakdown domainpricing.PriceBreakdown, selectable bool) StayQuote {
	if breakdown.IsZero() {
		return StayQuote{RoomID: roomID}
	}
	in, out := breakdown.CheckIn, breakdown.CheckOut
	quote := StayQuote{
		RoomID:                 roomID,
		Available:              true,
		Selectable:             selectable,
		CheckIn:                &in,
		CheckOut:               &out,
		Nights:                 breakdown.Nights,
		TotalPrice:             breakdown.TotalPrice,
		Total:                  MapMoney(breakdown.Total()),
		AverageNightlyRate:     breakdown.AverageNightlyRate(),
		NightlyPrices:          breakdown.NightlyPrices,
		Nightly:                make([]NightlyPrice, 0, len(breakdown.Lines)),
		PeakSeasonDays:         breakdown.PeakSeasonDays,
		PeakSeasonRatePerNight: breakdown.PeakSeasonRatePerNight,
	}
	for _, line := range breakdown.Lines {
		quote.Nightly = append(quote.Nightly, NightlyPrice{
			Date:         clock.DateKey(line.Date),
			Price:        line.Price,
			IsPeakSeason: line.IsPeakSeason,
			Source:       string(line.Source),
		})
	}
	return quote
}

type SelectableDay struct {
	Date       string `json:"date"`
	Selectable bool   `json:"selectable"`
	Reason     string `json:"reason"`
}

type SelectableMonth struct {
	RoomID string          `json:"room_id"`
	Month  string          `json:"month"`
	Days   []SelectableDay `json:"days"`
}

func MapSelectableMonth(roomID string, month clock.Month, flags []domainavailability.DayFlag) SelectableMonth {
	out := SelectableMonth{RoomID: roomID, Month: month.String(), Days: make([]SelectableDay, 0, len(flags))}
	for _, f := range flags {
		out.Days = append(out.Days, MapSelectableDay(f))
	}
	return out
}

func MapSelectableDay(flag domainavailability.DayFlag) SelectableDay {
	return SelectableDay{Date: clock.DateKey(flag.Date), Selectable: flag.Selectable, Reason: string(flag.Verdict)}
}
