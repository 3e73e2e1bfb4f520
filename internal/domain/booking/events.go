package booking

import (
	"time"

	"roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/daterange"
	"roomrate/internal/domain/shared/money"
)

type BookingRequested struct {
	BookingID   BookingID
	RoomID      rooms.RoomID
	GuestID     string
	Range       daterange.DateRange
	GuestsCount int
	QuotedPrice money.Money
	At          time.Time
}

func (e BookingRequested) EventName() string     { return "booking.requested" }
func (e BookingRequested) AggregateID() string   { return string(e.BookingID) }
func (e BookingRequested) OccurredAt() time.Time { return e.At }

type BookingCancelled struct {
	BookingID BookingID
	RoomID    rooms.RoomID
	Range     daterange.DateRange
	Reason    string
	At        time.Time
}

func (e BookingCancelled) EventName() string     { return "booking.cancelled" }
func (e BookingCancelled) AggregateID() string   { return string(e.BookingID) }
func (e BookingCancelled) OccurredAt() time.Time { return e.At }
