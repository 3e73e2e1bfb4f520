// Package engine exposes the pricing and availability calculations as one
// facade for transports and command handlers.
package engine

import (
	"time"

	"roomrate/internal/domain/availability"
	"roomrate/internal/domain/pricing"
	"roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
	"roomrate/internal/domain/stay"
)

// Engine is stateless; the calendar index is passed per call so a refetch
// never races with a computation in flight.
type Engine struct {
	Clock         clock.Clock
	MaxStayNights int
}

func New(c clock.Clock) Engine {
	if c == nil {
		c = clock.System{}
	}
	return Engine{Clock: c, MaxStayNights: stay.DefaultMaxNights}
}

func (e Engine) Now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

func (e Engine) ResolveNightlyRate(room *rooms.Room, date time.Time, index *pricing.CalendarIndex) pricing.NightlyRate {
	return pricing.Resolver{Index: index}.Resolve(room, date)
}

func (e Engine) AggregateStayPrice(room *rooms.Room, checkIn, checkOut time.Time, index *pricing.CalendarIndex) pricing.PriceBreakdown {
	return pricing.Aggregator{Resolver: pricing.Resolver{Index: index}}.Aggregate(room, checkIn, checkOut)
}

func (e Engine) IsDateSelectable(date time.Time, room *rooms.Room, windows []rooms.NonAvailability, index *pricing.CalendarIndex) bool {
	return e.gate(index).IsSelectable(date, room, windows)
}

func (e Engine) SelectableMonth(room *rooms.Room, month clock.Month, index *pricing.CalendarIndex) []availability.DayFlag {
	return e.gate(index).Month(room, month)
}

func (e Engine) IsStaySelectable(room *rooms.Room, checkIn, checkOut time.Time, index *pricing.CalendarIndex) bool {
	return e.gate(index).StaySelectable(room, checkIn, checkOut)
}

// StandardizeCheckInOut clamps both dates to today or later and pins them to
// 14:00 and 12:00 business time.
func (e Engine) StandardizeCheckInOut(checkIn, checkOut time.Time) (time.Time, time.Time) {
	return stay.Standardizer{Clock: e.Clock}.Range(checkIn, checkOut)
}

// CheckStayLength fails with stay.ErrStayTooLong before any calendar month
// is fetched for an oversized range.
func (e Engine) CheckStayLength(checkIn, checkOut time.Time) error {
	return stay.CheckLength(checkIn, checkOut, e.MaxStayNights)
}

// Quote standardizes the raw dates and prices the resulting stay.
func (e Engine) Quote(room *rooms.Room, checkIn, checkOut time.Time, index *pricing.CalendarIndex) pricing.PriceBreakdown {
	if checkIn.IsZero() || checkOut.IsZero() {
		return pricing.PriceBreakdown{}
	}
	in, out := e.StandardizeCheckInOut(checkIn, checkOut)
	return e.AggregateStayPrice(room, in, out, index)
}

func (e Engine) gate(index *pricing.CalendarIndex) availability.Gate {
	return availability.Gate{Clock: e.Clock, Index: index}
}
