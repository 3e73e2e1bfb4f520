package policies

import (
	"context"

	domainpricing "roomrate/internal/domain/pricing"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

// CalendarFeed produces a fresh month index for a room, either computed
// locally or fetched from the remote calendar service.
type CalendarFeed interface {
	Fetch(ctx context.Context, roomID domainrooms.RoomID, month clock.Month) (*domainpricing.CalendarIndex, error)
}

// CalendarIndexes serves cached indexes. Index combines the months requested
// into one index; months that could not be loaded are left out so callers
// fall back to local prices. Refresh skips the cache and replaces it.
type CalendarIndexes interface {
	Index(ctx context.Context, roomID domainrooms.RoomID, months ...clock.Month) (*domainpricing.CalendarIndex, error)
	Refresh(ctx context.Context, roomID domainrooms.RoomID, months ...clock.Month) (*domainpricing.CalendarIndex, error)
	Invalidate(roomID domainrooms.RoomID)
}
