package rooms

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"roomrate/internal/app/outbox"
	"roomrate/internal/app/uow"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

// Editor carries what every tenant rate-editor handler needs.
type Editor struct {
	Events outbox.Recorder
	Clock  clock.Clock
	Logger *slog.Logger
	NewID  func() string
}

func (e Editor) now() time.Time {
	if e.Clock == nil {
		return time.Now().UTC()
	}
	return e.Clock.Now().UTC()
}

func (e Editor) newID() string {
	if e.NewID != nil {
		return e.NewID()
	}
	return uuid.NewString()
}

func (e Editor) load(ctx context.Context, roomID string) (uow.UnitOfWork, *domainrooms.Room, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, nil, uow.ErrUnitOfWorkMissing
	}
	room, err := unit.Rooms().ByID(ctx, domainrooms.RoomID(roomID))
	if err != nil {
		return nil, nil, err
	}
	return unit, room, nil
}

func (e Editor) save(ctx context.Context, unit uow.UnitOfWork, room *domainrooms.Room) error {
	if err := unit.Rooms().Save(ctx, room); err != nil {
		return err
	}
	return e.Events.Record(ctx, room.Drain()...)
}

func (e Editor) log(msg string, args ...any) {
	if e.Logger != nil {
		e.Logger.Info(msg, args...)
	}
}
