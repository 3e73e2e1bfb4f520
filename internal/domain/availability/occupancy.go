package availability

import (
	"context"
	"errors"
	"time"

	"roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/daterange"
	"roomrate/internal/domain/shared/events"
)

var (
	ErrSoldOut          = errors.New("availability: no unit left for at least one night")
	ErrReferenceExists  = errors.New("availability: reference already holds a reservation")
	ErrReferenceMissing = errors.New("availability: reservation not found")
	ErrOccupancyMissing = errors.New("availability: occupancy not found")
)

// Reservation holds one unit of the room for every night of Range.
type Reservation struct {
	Range     daterange.DateRange
	Reference string
	CreatedAt time.Time
}

// Occupancy tracks how many units of a room are taken per night.
type Occupancy struct {
	RoomID       rooms.RoomID
	Stock        int
	Reservations []Reservation
	Version      int64
	events.EventRecorder
}

type Repository interface {
	Occupancy(ctx context.Context, id rooms.RoomID) (*Occupancy, error)
	Save(ctx context.Context, occupancy *Occupancy) error
}

func NewOccupancy(id rooms.RoomID, stock int) *Occupancy {
	if stock < 1 {
		stock = 1
	}
	return &Occupancy{RoomID: id, Stock: stock}
}

// BookedOn counts reservations covering date's night.
func (o *Occupancy) BookedOn(date time.Time) int {
	if o == nil {
		return 0
	}
	n := 0
	for _, res := range o.Reservations {
		if res.Range.ContainsDate(date) {
			n++
		}
	}
	return n
}

// CanReserve reports whether every night of r still has a free unit.
func (o *Occupancy) CanReserve(r daterange.DateRange) bool {
	for _, day := range r.Days() {
		if o.BookedOn(day) >= o.Stock {
			return false
		}
	}
	return r.Nights() > 0
}

func (o *Occupancy) Reserve(r daterange.DateRange, reference string, now time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	for _, res := range o.Reservations {
		if res.Reference == reference {
			return ErrReferenceExists
		}
	}
	if !o.CanReserve(r) {
		o.Record(OverbookingPrevented{RoomID: o.RoomID, Range: r, At: now.UTC()})
		return ErrSoldOut
	}
	o.Reservations = append(o.Reservations, Reservation{Range: r, Reference: reference, CreatedAt: now.UTC()})
	o.Record(UnitsReserved{RoomID: o.RoomID, Range: r, Reference: reference, At: now.UTC()})
	return nil
}

func (o *Occupancy) Release(reference string, now time.Time) error {
	for i, res := range o.Reservations {
		if res.Reference != reference {
			continue
		}
		o.Reservations = append(o.Reservations[:i:i], o.Reservations[i+1:]...)
		o.Record(UnitsReleased{RoomID: o.RoomID, Range: res.Range, Reference: reference, At: now.UTC()})
		return nil
	}
	return ErrReferenceMissing
}

// Snapshot copies the ledger without pending events.
func (o *Occupancy) Snapshot() Occupancy {
	return Occupancy{
		RoomID:       o.RoomID,
		Stock:        o.Stock,
		Reservations: append([]Reservation(nil), o.Reservations...),
		Version:      o.Version,
	}
}
