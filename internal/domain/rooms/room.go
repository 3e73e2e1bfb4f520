package rooms

import (
	"context"
	"errors"
	"strings"
	"time"

	"roomrate/internal/domain/shared/events"
)

var (
	ErrRoomIDRequired     = errors.New("rooms: room id is required")
	ErrPropertyRequired   = errors.New("rooms: property id is required")
	ErrNameRequired       = errors.New("rooms: name is required")
	ErrBasePrice          = errors.New("rooms: base price must be non-negative")
	ErrGuestCapacity      = errors.New("rooms: guest capacity must be at least 1")
	ErrStock              = errors.New("rooms: stock must be non-negative")
	ErrRoomNotFound       = errors.New("rooms: room not found")
	ErrPeakSeasonOverlap  = errors.New("rooms: peak season window overlaps an existing window")
	ErrPeakSeasonPrice    = errors.New("rooms: peak season price must be non-negative")
	ErrPeakSeasonNotFound = errors.New("rooms: peak season rate not found")
	ErrBlockNotFound      = errors.New("rooms: non-availability window not found")
)

type RoomID string
type PropertyID string

// Room is a bookable unit type of a property. Stock counts identical units
// sold under the same room.
type Room struct {
	ID              RoomID
	PropertyID      PropertyID
	Name            string
	BasePrice       int64
	GuestCapacity   int
	Stock           int
	PeakSeasonRates []PeakSeasonRate
	NonAvailability []NonAvailability
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id RoomID) (*Room, error)
	ByProperty(ctx context.Context, id PropertyID) ([]*Room, error)
	Save(ctx context.Context, room *Room) error
}

type CreateParams struct {
	ID            RoomID
	PropertyID    PropertyID
	Name          string
	BasePrice     int64
	GuestCapacity int
	Stock         int
	Now           time.Time
}

func NewRoom(params CreateParams) (*Room, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrRoomIDRequired
	}
	if strings.TrimSpace(string(params.PropertyID)) == "" {
		return nil, ErrPropertyRequired
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	if params.BasePrice < 0 {
		return nil, ErrBasePrice
	}
	if params.GuestCapacity < 1 {
		return nil, ErrGuestCapacity
	}
	if params.Stock < 0 {
		return nil, ErrStock
	}
	stock := params.Stock
	if stock == 0 {
		stock = 1
	}
	now := params.Now.UTC()
	r := &Room{
		ID:            params.ID,
		PropertyID:    params.PropertyID,
		Name:          strings.TrimSpace(params.Name),
		BasePrice:     params.BasePrice,
		GuestCapacity: params.GuestCapacity,
		Stock:         stock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.Record(RoomCreated{RoomID: r.ID, PropertyID: r.PropertyID, At: now})
	return r, nil
}

// UpdateBasePrice changes the fallback nightly rate.
func (r *Room) UpdateBasePrice(price int64, now time.Time) error {
	if price < 0 {
		return ErrBasePrice
	}
	r.BasePrice = price
	r.touch(now)
	r.Record(RoomUpdated{RoomID: r.ID, At: r.UpdatedAt})
	return nil
}

// Snapshot returns a deep copy safe to hand to pricing code.
func (r *Room) Snapshot() Room {
	clone := Room{
		ID:              r.ID,
		PropertyID:      r.PropertyID,
		Name:            r.Name,
		BasePrice:       r.BasePrice,
		GuestCapacity:   r.GuestCapacity,
		Stock:           r.Stock,
		PeakSeasonRates: append([]PeakSeasonRate(nil), r.PeakSeasonRates...),
		NonAvailability: append([]NonAvailability(nil), r.NonAvailability...),
		Version:         r.Version,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	return clone
}

func (r *Room) touch(now time.Time) {
	r.UpdatedAt = now.UTC()
}
