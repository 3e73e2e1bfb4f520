package booking

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"roomrate/internal/app/commands"
	"roomrate/internal/app/dto"
	"roomrate/internal/app/engine"
	"roomrate/internal/app/middleware"
	"roomrate/internal/app/outbox"
	"roomrate/internal/app/policies"
	"roomrate/internal/app/uow"
	domainavailability "roomrate/internal/domain/availability"
	domainbooking "roomrate/internal/domain/booking"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
	domainrange "roomrate/internal/domain/shared/daterange"
	"roomrate/internal/domain/stay"
)

const requestBookingKey = "booking.request"

// RequestBookingCommand is the guest's submit. TotalPrice is the amount the
// guest was shown; it is only compared, never charged.
type RequestBookingCommand struct {
	BookingID       string
	RoomID          string
	GuestID         string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	TotalPrice      int64
	IdempotencyKeyV string
}

func (c RequestBookingCommand) Key() string { return requestBookingKey }

func (c RequestBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c RequestBookingCommand) ResultPrototype() any { return &dto.Booking{} }

func (c RequestBookingCommand) Validate() error {
	if strings.TrimSpace(c.RoomID) == "" {
		return domainrooms.ErrRoomIDRequired
	}
	if c.CheckIn.IsZero() || c.CheckOut.IsZero() {
		return domainrange.ErrInvalidRange
	}
	return nil
}

type RequestBookingHandler struct {
	Indexes policies.CalendarIndexes
	Engine  engine.Engine
	Events  outbox.Recorder
	Logger  *slog.Logger
}

func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (*dto.Booking, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	room, err := unit.Rooms().ByID(ctx, domainrooms.RoomID(cmd.RoomID))
	if err != nil {
		return nil, err
	}

	checkIn, checkOut := h.Engine.StandardizeCheckInOut(cmd.CheckIn, cmd.CheckOut)
	dr, ok := stay.Selection{RoomID: room.ID}.PickCheckIn(checkIn).PickCheckOut(checkOut).Range()
	if !ok {
		return nil, domainrange.ErrInvalidRange
	}
	if err := h.Engine.CheckStayLength(checkIn, checkOut); err != nil {
		return nil, err
	}
	index, err := h.Indexes.Refresh(ctx, room.ID, clock.MonthsSpanning(checkIn, checkOut)...)
	if err != nil {
		return nil, err
	}
	if !h.Engine.IsStaySelectable(room, checkIn, checkOut, index) {
		return nil, domainbooking.ErrDatesNotSelectable
	}
	price := h.Engine.AggregateStayPrice(room, checkIn, checkOut, index)
	if err := domainbooking.VerifyQuote(cmd.TotalPrice, price); err != nil {
		if h.Logger != nil && errors.Is(err, domainbooking.ErrPriceChanged) {
			h.Logger.Info("booking rejected on stale price", "room_id", room.ID, "submitted", cmd.TotalPrice, "current", price.TotalPrice)
		}
		return nil, err
	}

	id := strings.TrimSpace(cmd.BookingID)
	if id == "" {
		id = uuid.NewString()
	}
	now := h.Engine.Now()
	booking, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:        domainbooking.BookingID(id),
		Room:      room,
		GuestID:   cmd.GuestID,
		Range:     dr,
		Guests:    cmd.Guests,
		Price:     price,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	occ, err := loadOccupancy(ctx, unit, room)
	if err != nil {
		return nil, err
	}
	if err := occ.Reserve(dr, string(booking.ID), now); err != nil {
		if errors.Is(err, domainavailability.ErrSoldOut) {
			return nil, domainbooking.ErrDatesNotSelectable
		}
		return nil, err
	}
	if err := unit.Occupancy().Save(ctx, occ); err != nil {
		return nil, err
	}
	if err := unit.Bookings().Save(ctx, booking); err != nil {
		return nil, err
	}
	pending := append(booking.Drain(), occ.Drain()...)
	if err := h.Events.Record(ctx, pending...); err != nil {
		return nil, err
	}
	if h.Logger != nil {
		h.Logger.Info("booking requested", "booking_id", booking.ID, "room_id", room.ID, "nights", price.Nights, "total", price.TotalPrice)
	}
	result := dto.MapBooking(booking)
	return &result, nil
}

// loadOccupancy returns the room's ledger, creating it for rooms seeded
// without one.
func loadOccupancy(ctx context.Context, unit uow.UnitOfWork, room *domainrooms.Room) (*domainavailability.Occupancy, error) {
	occ, err := unit.Occupancy().Occupancy(ctx, room.ID)
	if errors.Is(err, domainavailability.ErrOccupancyMissing) {
		return domainavailability.NewOccupancy(room.ID, room.Stock), nil
	}
	if err != nil {
		return nil, err
	}
	occ.Stock = room.Stock
	return occ, nil
}

var _ commands.Handler[RequestBookingCommand, *dto.Booking] = (*RequestBookingHandler)(nil)
var _ middleware.IdempotentCommand = (*RequestBookingCommand)(nil)
