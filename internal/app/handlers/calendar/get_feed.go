package calendar

import (
	"context"

	"roomrate/internal/app/dto"
	"roomrate/internal/app/handlers/support"
	"roomrate/internal/app/policies"
	"roomrate/internal/app/queries"
	"roomrate/internal/app/uow"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

const getFeedKey = "calendar.feed"

type GetFeedQuery struct {
	RoomID string
	Month  clock.Month
}

func (q GetFeedQuery) Key() string { return getFeedKey }

func (q GetFeedQuery) Validate() error {
	if q.Month.IsZero() {
		return clock.ErrInvalidMonth
	}
	return nil
}

type GetFeedHandler struct {
	UoWFactory uow.UoWFactory
	Indexes    policies.CalendarIndexes
}

func (h *GetFeedHandler) Handle(ctx context.Context, q GetFeedQuery) (dto.CalendarFeed, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.CalendarFeed{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	room, err := unit.Rooms().ByID(ctx, domainrooms.RoomID(q.RoomID))
	if err != nil {
		return dto.CalendarFeed{}, err
	}
	index, err := h.Indexes.Index(ctx, room.ID, q.Month)
	if err != nil {
		return dto.CalendarFeed{}, err
	}
	feed := dto.MapCalendarFeed(index, q.Month)
	feed.RoomID = string(room.ID)
	if index == nil {
		feed.BasePrice = room.BasePrice
	}
	return feed, nil
}

var _ queries.Handler[GetFeedQuery, dto.CalendarFeed] = (*GetFeedHandler)(nil)
