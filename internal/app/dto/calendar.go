package dto

import (
	domainpricing "roomrate/internal/domain/pricing"
	"roomrate/internal/domain/shared/clock"
)

// CalendarDay and CalendarFeed are the wire shape of the month feed, served by
// this service and consumed from a remote calendar service alike.
type CalendarDay struct {
	Date           string `json:"date"`
	Price          int64  `json:"price"`
	IsAvailable    bool   `json:"is_available"`
	AvailableStock int    `json:"available_stock"`
	IsPeakSeason   bool   `json:"is_peak_season"`
}

type CalendarFeed struct {
	RoomID    string        `json:"room_id"`
	Month     string        `json:"month"`
	BasePrice int64         `json:"base_price"`
	Days      []CalendarDay `json:"days"`
}

func MapCalendarFeed(index *domainpricing.CalendarIndex, month clock.Month) CalendarFeed {
	feed := CalendarFeed{
		RoomID:    string(index.RoomID()),
		Month:     month.String(),
		BasePrice: index.BasePrice(),
		Days:      []CalendarDay{},
	}
	for _, entry := range index.Entries() {
		if clock.MonthOf(entry.Date) != month {
			continue
		}
		feed.Days = append(feed.Days, MapCalendarDay(entry))
	}
	return feed
}

func MapCalendarDay(entry domainpricing.CalendarDayEntry) CalendarDay {
	return CalendarDay{
		Date:           entry.DateKey(),
		Price:          entry.Price,
		IsAvailable:    entry.IsAvailable,
		AvailableStock: entry.AvailableStock,
		IsPeakSeason:   entry.IsPeakSeason,
	}
}
