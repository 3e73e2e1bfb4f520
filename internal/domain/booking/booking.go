package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"roomrate/internal/domain/pricing"
	"roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/daterange"
	"roomrate/internal/domain/shared/events"
	"roomrate/internal/domain/shared/money"
)

var (
	ErrInvalidGuests      = errors.New("booking: guests count must be positive")
	ErrGuestsExceedRoom   = errors.New("booking: guests exceed room capacity")
	ErrGuestRequired      = errors.New("booking: guest id required")
	ErrEmptyQuote         = errors.New("booking: stay has no priced nights")
	ErrPriceChanged       = errors.New("booking: submitted total does not match current price")
	ErrDatesNotSelectable = errors.New("booking: stay contains unavailable dates")
	ErrInvalidState       = errors.New("booking: invalid state transition")
	ErrBookingNotFound    = errors.New("booking: not found")
)

type BookingID string

type BookingState string

const (
	StatePending   BookingState = "PENDING"
	StateCancelled BookingState = "CANCELLED"
)

// Booking is a guest's request for a stay at the price quoted by the engine.
type Booking struct {
	ID         BookingID
	RoomID     rooms.RoomID
	PropertyID rooms.PropertyID
	GuestID    string
	Range      daterange.DateRange
	Guests     int
	Price      pricing.PriceBreakdown
	State      BookingState
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	ListByRoom(ctx context.Context, roomID rooms.RoomID) ([]*Booking, error)
}

type CreateParams struct {
	ID        BookingID
	Room      *rooms.Room
	GuestID   string
	Range     daterange.DateRange
	Guests    int
	Price     pricing.PriceBreakdown
	CreatedAt time.Time
}

func NewBooking(params CreateParams) (*Booking, error) {
	if params.Room == nil {
		return nil, rooms.ErrRoomNotFound
	}
	if strings.TrimSpace(params.GuestID) == "" {
		return nil, ErrGuestRequired
	}
	if params.Guests <= 0 {
		return nil, ErrInvalidGuests
	}
	if params.Guests > params.Room.GuestCapacity {
		return nil, ErrGuestsExceedRoom
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	if params.Price.IsZero() {
		return nil, ErrEmptyQuote
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:         params.ID,
		RoomID:     params.Room.ID,
		PropertyID: params.Room.PropertyID,
		GuestID:    strings.TrimSpace(params.GuestID),
		Range:      params.Range,
		Guests:     params.Guests,
		Price:      params.Price,
		State:      StatePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	b.Record(BookingRequested{
		BookingID:   b.ID,
		RoomID:      b.RoomID,
		GuestID:     b.GuestID,
		Range:       b.Range,
		GuestsCount: b.Guests,
		QuotedPrice: b.Price.Total(),
		At:          now,
	})
	return b, nil
}

// VerifyQuote compares the amount the guest saw against the server-side
// breakdown. The client amount is never used for anything else.
func VerifyQuote(submitted int64, current pricing.PriceBreakdown) error {
	if current.IsZero() {
		return ErrEmptyQuote
	}
	if submitted != current.TotalPrice {
		return ErrPriceChanged
	}
	return nil
}

func (b *Booking) Total() money.Money {
	return b.Price.Total()
}

func (b *Booking) Cancel(reason string, now time.Time) error {
	if b.State != StatePending {
		return ErrInvalidState
	}
	b.State = StateCancelled
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{BookingID: b.ID, RoomID: b.RoomID, Range: b.Range, Reason: strings.TrimSpace(reason), At: b.UpdatedAt})
	return nil
}
