package dto

import (
	domainpricing "roomrate/internal/domain/pricing"
	"roomrate/internal/domain/shared/clock"
)

type RoomReport struct {
	RoomID          string        `json:"room_id"`
	Month           string        `json:"month"`
	Days            []CalendarDay `json:"days"`
	UnknownDays     int           `json:"unknown_days"`
	PeakSeasonDays  int           `json:"peak_season_days"`
	UnavailableDays int           `json:"unavailable_days"`
	MinPrice        int64         `json:"min_price"`
	MaxPrice        int64         `json:"max_price"`
	AveragePrice    int64         `json:"average_price"`
	AvailableNights int           `json:"available_nights"`
}

type PropertyReportDay struct {
	Date           string `json:"date"`
	LowestPrice    int64  `json:"lowest_price"`
	AvailableStock int    `json:"available_stock"`
	RoomsAvailable int    `json:"rooms_available"`
	RoomsKnown     int    `json:"rooms_known"`
	AnyPeakSeason  bool   `json:"any_peak_season"`
}

type PropertyReport struct {
	PropertyID string              `json:"property_id"`
	Month      string              `json:"month"`
	Days       []PropertyReportDay `json:"days"`
	Rooms      []RoomReport        `json:"rooms"`
}

type ReportExport struct {
	PropertyID string `json:"property_id"`
	Month      string `json:"month"`
	Location   string `json:"location"`
}

func MapRoomReport(r domainpricing.MonthReport) RoomReport {
	out := RoomReport{
		RoomID:          string(r.RoomID),
		Month:           r.Month.String(),
		Days:            make([]CalendarDay, 0, len(r.Cells)),
		UnknownDays:     r.UnknownDays,
		PeakSeasonDays:  r.PeakSeasonDays,
		UnavailableDays: r.UnavailableDays,
		MinPrice:        r.MinPrice,
		MaxPrice:        r.MaxPrice,
		AveragePrice:    r.AveragePrice,
		AvailableNights: r.AvailableNights,
	}
	for _, cell := range r.Cells {
		out.Days = append(out.Days, MapCalendarDay(cell))
	}
	return out
}

func MapPropertyReport(r domainpricing.PropertyReport) PropertyReport {
	out := PropertyReport{
		PropertyID: string(r.PropertyID),
		Month:      r.Month.String(),
		Days:       make([]PropertyReportDay, 0, len(r.Cells)),
		Rooms:      make([]RoomReport, 0, len(r.Rooms)),
	}
	for _, cell := range r.Cells {
		out.Days = append(out.Days, PropertyReportDay{
			Date:           clock.DateKey(cell.Date),
			LowestPrice:    cell.LowestPrice,
			AvailableStock: cell.AvailableStock,
			RoomsAvailable: cell.RoomsAvailable,
			RoomsKnown:     cell.RoomsKnown,
			AnyPeakSeason:  cell.AnyPeakSeason,
		})
	}
	for _, room := range r.Rooms {
		out.Rooms = append(out.Rooms, MapRoomReport(room))
	}
	return out
}
