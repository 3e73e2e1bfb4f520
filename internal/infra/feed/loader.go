package feed

import (
	"context"
	"log/slog"

	"roomrate/internal/app/policies"
	domainpricing "roomrate/internal/domain/pricing"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

// Loader serves indexes from the store and fetches missing months from Feed.
// A month that fails to load is left out of the combined index; pricing then
// falls back to the room's own rates for those dates.
type Loader struct {
	Feed   policies.CalendarFeed
	Store  *IndexStore
	Logger *slog.Logger
}

func (l *Loader) Index(ctx context.Context, roomID domainrooms.RoomID, months ...clock.Month) (*domainpricing.CalendarIndex, error) {
	return l.load(ctx, roomID, months, true)
}

// Refresh fetches every month from Feed even when cached, and stores the
// result for later readers. Booking prices come from here so a missed
// invalidation cannot leak an old rate into a stored booking.
func (l *Loader) Refresh(ctx context.Context, roomID domainrooms.RoomID, months ...clock.Month) (*domainpricing.CalendarIndex, error) {
	return l.load(ctx, roomID, months, false)
}

func (l *Loader) load(ctx context.Context, roomID domainrooms.RoomID, months []clock.Month, cached bool) (*domainpricing.CalendarIndex, error) {
	parts := make([]*domainpricing.CalendarIndex, 0, len(months))
	for _, month := range months {
		if cached {
			if idx, ok := l.Store.Get(roomID, month); ok {
				parts = append(parts, idx)
				continue
			}
		}
		gen := l.Store.Begin(roomID, month)
		idx, err := l.Feed.Fetch(ctx, roomID, month)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			l.logger().WarnContext(ctx, "calendar feed unavailable, using room rates", "room_id", roomID, "month", month.String(), "error", err)
			continue
		}
		if !l.Store.Put(roomID, month, gen, idx) && cached {
			if current, ok := l.Store.Get(roomID, month); ok {
				idx = current
			}
		}
		parts = append(parts, idx)
	}
	return domainpricing.Combine(parts...), nil
}

func (l *Loader) Invalidate(roomID domainrooms.RoomID) {
	l.Store.Invalidate(roomID)
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

var _ policies.CalendarIndexes = (*Loader)(nil)
