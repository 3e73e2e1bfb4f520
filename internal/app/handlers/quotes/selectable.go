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
	domainavailability "roomrate/internal/domain/availability"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

const (
	selectableMonthKey = "quotes.selectable_month"
	selectableDateKey  = "quotes.selectable_date"
)

type SelectableMonthQuery struct {
	RoomID string
	Month  clock.Month
}

func (q SelectableMonthQuery) Key() string { return selectableMonthKey }

func (q SelectableMonthQuery) Validate() error {
	if q.Month.IsZero() {
		return clock.ErrInvalidMonth
	}
	return nil
}

type SelectableMonthHandler struct {
	UoWFactory uow.UoWFactory
	Indexes    policies.CalendarIndexes
	Engine     engine.Engine
}

func (h *SelectableMonthHandler) Handle(ctx context.Context, q SelectableMonthQuery) (dto.SelectableMonth, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.SelectableMonth{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	room, err := unit.Rooms().ByID(ctx, domainrooms.RoomID(q.RoomID))
	if err != nil {
		return dto.SelectableMonth{}, err
	}
	index, err := h.Indexes.Index(ctx, room.ID, q.Month)
	if err != nil {
		return dto.SelectableMonth{}, err
	}
	return dto.MapSelectableMonth(string(room.ID), q.Month, h.Engine.SelectableMonth(room, q.Month, index)), nil
}

type SelectableDateQuery struct {
	RoomID string
	Date   time.Time
}

func (q SelectableDateQuery) Key() string { return selectableDateKey }

type SelectableDateHandler struct {
	UoWFactory uow.UoWFactory
	Indexes    policies.CalendarIndexes
	Engine     engine.Engine
}

func (h *SelectableDateHandler) Handle(ctx context.Context, q SelectableDateQuery) (dto.SelectableDay, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.SelectableDay{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	room, err := unit.Rooms().ByID(ctx, domainrooms.RoomID(q.RoomID))
	if err != nil {
		return dto.SelectableDay{}, err
	}
	day := clock.StartOfDay(q.Date)
	index, err := h.Indexes.Index(ctx, room.ID, clock.MonthOf(day))
	if err != nil {
		return dto.SelectableDay{}, err
	}
	gate := domainavailability.Gate{Clock: h.Engine.Clock, Index: index}
	verdict := gate.Evaluate(day, room, room.NonAvailability)
	return dto.MapSelectableDay(domainavailability.DayFlag{
		Date:       day,
		Selectable: verdict == domainavailability.VerdictSelectable,
		Verdict:    verdict,
	}), nil
}

var (
	_ queries.Handler[SelectableMonthQuery, dto.SelectableMonth] = (*SelectableMonthHandler)(nil)
	_ queries.Handler[SelectableDateQuery, dto.SelectableDay]    = (*SelectableDateHandler)(nil)
)
