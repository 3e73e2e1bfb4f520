package calendar

import (
	"context"
	"errors"

	"roomrate/internal/app/policies"
	"roomrate/internal/app/uow"
	domainavailability "roomrate/internal/domain/availability"
	domainpricing "roomrate/internal/domain/pricing"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

// LocalFeed computes month feeds from the room's own rates, blackouts and
// occupancy ledger. It opens its own read-only unit so only committed state
// reaches the shared index cache.
type LocalFeed struct {
	UoWFactory uow.UoWFactory
}

func (f *LocalFeed) Fetch(ctx context.Context, roomID domainrooms.RoomID, month clock.Month) (*domainpricing.CalendarIndex, error) {
	if f.UoWFactory == nil {
		return nil, uow.ErrUnitOfWorkMissing
	}
	unit, err := f.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	ctx = uow.ContextWithUnitOfWork(uow.Inject(ctx, unit), unit)
	defer func() { _ = unit.Rollback(ctx) }()
	room, err := unit.Rooms().ByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	occ, err := unit.Occupancy().Occupancy(ctx, roomID)
	if err != nil && !errors.Is(err, domainavailability.ErrOccupancyMissing) {
		return nil, err
	}
	return domainpricing.BuildMonthIndex(room, month, occ.BookedOn), nil
}

var _ policies.CalendarFeed = (*LocalFeed)(nil)
