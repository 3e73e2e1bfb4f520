package quotes

import (
	"context"
	"time"

	"roomrate/internal/app/dto"
	"roomrate/internal/app/engine"
	"roomrate/internal/app/handlers/support"
	"roomrate/internal/app/policies"
	"roomrate/internal/app/queries"
	"roomrate/internal/app/uow"
	"roomrate/internal/domain/pricing"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
	"roomrate/internal/domain/stay"
)

const stayQuoteKey = "quotes.stay"

// StayQuoteQuery carries the raw dates picked by the guest; either may be zero
// while the selection is incomplete.
type StayQuoteQuery struct {
	RoomID   string
	CheckIn  time.Time
	CheckOut time.Time
}

func (q StayQuoteQuery) Key() string { return stayQuoteKey }

type StayQuoteHandler struct {
	UoWFactory uow.UoWFactory
	Indexes    policies.CalendarIndexes
	Engine     engine.Engine
}

func (h *StayQuoteHandler) Handle(ctx context.Context, q StayQuoteQuery) (dto.StayQuote, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.StayQuote{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	room, err := unit.Rooms().ByID(ctx, domainrooms.RoomID(q.RoomID))
	if err != nil {
		return dto.StayQuote{}, err
	}
	sel := stay.Selection{RoomID: room.ID}.PickCheckIn(q.CheckIn).PickCheckOut(q.CheckOut)
	if !sel.Complete() {
		return dto.MapStayQuote(string(room.ID), pricing.PriceBreakdown{}, false), nil
	}
	checkIn, checkOut := h.Engine.StandardizeCheckInOut(sel.CheckIn, sel.CheckOut)
	if err := h.Engine.CheckStayLength(checkIn, checkOut); err != nil {
		return dto.StayQuote{}, err
	}
	index, err := h.Indexes.Index(ctx, room.ID, clock.MonthsSpanning(checkIn, checkOut)...)
	if err != nil {
		return dto.StayQuote{}, err
	}
	breakdown := h.Engine.AggregateStayPrice(room, checkIn, checkOut, index)
	selectable := h.Engine.IsStaySelectable(room, checkIn, checkOut, index)
	return dto.MapStayQuote(string(room.ID), breakdown, selectable), nil
}

var _ queries.Handler[StayQuoteQuery, dto.StayQuote] = (*StayQuoteHandler)(nil)
