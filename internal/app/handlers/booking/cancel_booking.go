package booking

import (
	"context"
	"errors"
	"log/slog"

	"roomrate/internal/app/commands"
	"roomrate/internal/app/dto"
	"roomrate/internal/app/handlers/support"
	"roomrate/internal/app/outbox"
	"roomrate/internal/app/queries"
	"roomrate/internal/app/uow"
	domainavailability "roomrate/internal/domain/availability"
	domainbooking "roomrate/internal/domain/booking"
	"roomrate/internal/domain/shared/clock"
)

const (
	cancelBookingKey = "booking.cancel"
	getBookingKey    = "booking.get"
)

type CancelBookingCommand struct {
	BookingID string
	Reason    string
}

func (c CancelBookingCommand) Key() string { return cancelBookingKey }

type CancelBookingHandler struct {
	Clock  clock.Clock
	Events outbox.Recorder
	Logger *slog.Logger
}

// Handle cancels the booking and gives its units back to the room. A ledger
// without the reservation is tolerated so bookings imported without one can
// still be cancelled.
func (h *CancelBookingHandler) Handle(ctx context.Context, cmd CancelBookingCommand) (*dto.Booking, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	booking, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return nil, err
	}
	now := clock.System{}.Now()
	if h.Clock != nil {
		now = h.Clock.Now()
	}
	if err := booking.Cancel(cmd.Reason, now); err != nil {
		return nil, err
	}
	occ, err := unit.Occupancy().Occupancy(ctx, booking.RoomID)
	switch {
	case errors.Is(err, domainavailability.ErrOccupancyMissing):
		occ = nil
	case err != nil:
		return nil, err
	}
	if occ != nil {
		err := occ.Release(string(booking.ID), now)
		if err != nil && !errors.Is(err, domainavailability.ErrReferenceMissing) {
			return nil, err
		}
		if err == nil {
			if err := unit.Occupancy().Save(ctx, occ); err != nil {
				return nil, err
			}
		}
	}
	if err := unit.Bookings().Save(ctx, booking); err != nil {
		return nil, err
	}
	pending := booking.Drain()
	if occ != nil {
		pending = append(pending, occ.Drain()...)
	}
	if err := h.Events.Record(ctx, pending...); err != nil {
		return nil, err
	}
	if h.Logger != nil {
		h.Logger.Info("booking cancelled", "booking_id", booking.ID, "room_id", booking.RoomID)
	}
	result := dto.MapBooking(booking)
	return &result, nil
}

type GetBookingQuery struct {
	BookingID string
}

func (q GetBookingQuery) Key() string { return getBookingKey }

type GetBookingHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetBookingHandler) Handle(ctx context.Context, q GetBookingQuery) (dto.Booking, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Booking{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	booking, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(q.BookingID))
	if err != nil {
		return dto.Booking{}, err
	}
	return dto.MapBooking(booking), nil
}

var (
	_ commands.Handler[CancelBookingCommand, *dto.Booking] = (*CancelBookingHandler)(nil)
	_ queries.Handler[GetBookingQuery, dto.Booking]        = (*GetBookingHandler)(nil)
)
