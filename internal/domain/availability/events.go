package availability

import (
	"time"

	"roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/daterange"
)

type UnitsReserved struct {
	RoomID    rooms.RoomID
	Range     daterange.DateRange
	Reference string
	At        time.Time
}

func (e UnitsReserved) EventName() string     { return "occupancy.reserved" }
func (e UnitsReserved) AggregateID() string   { return string(e.RoomID) }
func (e UnitsReserved) OccurredAt() time.Time { return e.At }

type UnitsReleased struct {
	RoomID    rooms.RoomID
	Range     daterange.DateRange
	Reference string
	At        time.Time
}

func (e UnitsReleased) EventName() string     { return "occupancy.released" }
func (e UnitsReleased) AggregateID() string   { return string(e.RoomID) }
func (e UnitsReleased) OccurredAt() time.Time { return e.At }

type OverbookingPrevented struct {
	RoomID rooms.RoomID
	Range  daterange.DateRange
	At     time.Time
}

func (e OverbookingPrevented) EventName() string     { return "occupancy.overbooking_prevented" }
func (e OverbookingPrevented) AggregateID() string   { return string(e.RoomID) }
func (e OverbookingPrevented) OccurredAt() time.Time { return e.At }
