package pricing

import (
	"time"

	"roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

// MonthReport summarises one room's calendar month.
type MonthReport struct {
	RoomID          rooms.RoomID
	Month           clock.Month
	Cells           []CalendarDayEntry
	UnknownDays     int
	PeakSeasonDays  int
	UnavailableDays int
	MinPrice        int64
	MaxPrice        int64
	AveragePrice    int64
	AvailableNights int
}

// BuildMonthReport walks the month day by day; dates missing from the index
// are counted as unknown and left out of the cells.
func BuildMonthReport(index *CalendarIndex, month clock.Month) MonthReport {
	report := MonthReport{RoomID: index.RoomID(), Month: month}
	var sum int64
	for _, day := range month.Days() {
		entry, ok := index.LookupDate(day)
		if !ok {
			report.UnknownDays++
			continue
		}
		report.Cells = append(report.Cells, entry)
		if entry.IsPeakSeason {
			report.PeakSeasonDays++
		}
		if !entry.IsAvailable {
			report.UnavailableDays++
		}
		report.AvailableNights += entry.AvailableStock
		if len(report.Cells) == 1 || entry.Price < report.MinPrice {
			report.MinPrice = entry.Price
		}
		if entry.Price > report.MaxPrice {
			report.MaxPrice = entry.Price
		}
		sum += entry.Price
	}
	if n := int64(len(report.Cells)); n > 0 {
		report.AveragePrice = (sum + n/2) / n
	}
	return report
}

// PropertyCell merges every room of a property on one date.
type PropertyCell struct {
	Date           time.Time
	LowestPrice    int64
	AvailableStock int
	RoomsAvailable int
	RoomsKnown     int
	AnyPeakSeason  bool
}

type PropertyReport struct {
	PropertyID rooms.PropertyID
	Month      clock.Month
	Cells      []PropertyCell
	Rooms      []MonthReport
}

// BuildPropertyReport aggregates the per-room indexes of a property. The
// lowest price only considers rooms that can still be booked that day; it is
// zero when none can.
func BuildPropertyReport(propertyID rooms.PropertyID, month clock.Month, indexes []*CalendarIndex) PropertyReport {
	report := PropertyReport{PropertyID: propertyID, Month: month}
	for _, idx := range indexes {
		if idx == nil {
			continue
		}
		report.Rooms = append(report.Rooms, BuildMonthReport(idx, month))
	}
	for _, day := range month.Days() {
		cell := PropertyCell{Date: day}
		for _, idx := range indexes {
			entry, ok := idx.LookupDate(day)
			if !ok {
				continue
			}
			cell.RoomsKnown++
			cell.AnyPeakSeason = cell.AnyPeakSeason || entry.IsPeakSeason
			if !entry.IsAvailable {
				continue
			}
			cell.RoomsAvailable++
			cell.AvailableStock += entry.AvailableStock
			if cell.RoomsAvailable == 1 || entry.Price < cell.LowestPrice {
				cell.LowestPrice = entry.Price
			}
		}
		report.Cells = append(report.Cells, cell)
	}
	return report
}
