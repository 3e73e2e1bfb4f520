package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appoutbox "roomrate/internal/app/outbox"
	"roomrate/internal/app/uow"
	domainavailability "roomrate/internal/domain/availability"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
	"roomrate/internal/domain/shared/daterange"
	infraoutbox "roomrate/internal/infra/outbox"
)

func newRoom(t *testing.T, id string) *domainrooms.Room {
	t.Helper()
	room, err := domainrooms.NewRoom(domainrooms.CreateParams{
		ID: domainrooms.RoomID(id), PropertyID: "prop-1", Name: "Deluxe", BasePrice: 500_000, GuestCapacity: 2, Now: time.Now(),
	})
	require.NoError(t, err)
	return room
}

func TestUnitCommitAndRollback(t *testing.T) {
	ctx := context.Background()
	factory := NewFactory(NewStore())

	unit, err := factory.Begin(ctx, uow.TxOptions{})
	require.NoError(t, err)
	require.NoError(t, unit.Rooms().Save(ctx, newRoom(t, "room-1")))
	staged, err := unit.Rooms().ByID(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, "Deluxe", staged.Name)
	require.NoError(t, unit.Commit(ctx))

	unit, err = factory.Begin(ctx, uow.TxOptions{})
	require.NoError(t, err)
	room, err := unit.Rooms().ByID(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), room.Version)
	require.NoError(t, room.UpdateBasePrice(900_000, time.Now()))
	require.NoError(t, unit.Rooms().Save(ctx, room))
	require.NoError(t, unit.Rollback(ctx))

	reader, err := factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	require.NoError(t, err)
	defer reader.Rollback(ctx)
	room, err = reader.Rooms().ByID(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, int64(500_000), room.BasePrice)
	assert.ErrorIs(t, reader.Rooms().Save(ctx, room), ErrReadOnlyUnit)

	_, err = reader.Rooms().ByID(ctx, "missing")
	assert.ErrorIs(t, err, domainrooms.ErrRoomNotFound)
	_, err = reader.Occupancy().Occupancy(ctx, "room-1")
	assert.ErrorIs(t, err, domainavailability.ErrOccupancyMissing)
}

func TestReturnedAggregatesAreCopies(t *testing.T) {
	ctx := context.Background()
	factory := NewFactory(NewStore())
	unit, _ := factory.Begin(ctx, uow.TxOptions{})
	occ := domainavailability.NewOccupancy("room-1", 1)
	require.NoError(t, unit.Occupancy().Save(ctx, occ))
	require.NoError(t, unit.Commit(ctx))

	reader, _ := factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	defer reader.Rollback(ctx)
	loaded, err := reader.Occupancy().Occupancy(ctx, "room-1")
	require.NoError(t, err)
	stay := daterange.DateRange{CheckIn: clock.Date(2025, 7, 1), CheckOut: clock.Date(2025, 7, 3)}
	require.NoError(t, loaded.Reserve(stay, "b-1", time.Now()))

	again, err := reader.Occupancy().Occupancy(ctx, "room-1")
	require.NoError(t, err)
	assert.Empty(t, again.Reservations)
}

func TestStaleVersionRejected(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	factory := NewFactory(store)
	unit, _ := factory.Begin(ctx, uow.TxOptions{})
	require.NoError(t, unit.Rooms().Save(ctx, newRoom(t, "room-1")))
	require.NoError(t, unit.Commit(ctx))

	stale := newRoom(t, "room-1")
	err := store.apply(map[domainrooms.RoomID]*domainrooms.Room{"room-1": stale}, nil, nil)
	assert.ErrorIs(t, err, ErrStaleVersion)
}

func TestByPropertyMergesStagedRooms(t *testing.T) {
	ctx := context.Background()
	factory := NewFactory(NewStore())
	unit, _ := factory.Begin(ctx, uow.TxOptions{})
	require.NoError(t, unit.Rooms().Save(ctx, newRoom(t, "room-b")))
	require.NoError(t, unit.Commit(ctx))

	unit, _ = factory.Begin(ctx, uow.TxOptions{})
	defer unit.Rollback(ctx)
	require.NoError(t, unit.Rooms().Save(ctx, newRoom(t, "room-a")))
	list, err := unit.Rooms().ByProperty(ctx, "prop-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domainrooms.RoomID("room-a"), list[0].ID)
}

func TestOutboxFlushAndDiscard(t *testing.T) {
	box := NewOutbox()
	factory := NewFactory(NewStore())

	first, _ := factory.Begin(context.Background(), uow.TxOptions{ReadOnly: true})
	ctx := uow.ContextWithUnitOfWork(context.Background(), first)
	require.NoError(t, box.Add(ctx, appoutbox.EventRecord{ID: "e1", Name: "room.created", Payload: []byte(`{}`)}))
	assert.Zero(t, box.Len())
	require.NoError(t, box.Flush(ctx))
	assert.Equal(t, 1, box.Len())

	second, _ := factory.Begin(context.Background(), uow.TxOptions{ReadOnly: true})
	ctx2 := uow.ContextWithUnitOfWork(context.Background(), second)
	require.NoError(t, box.Add(ctx2, appoutbox.EventRecord{ID: "e2", Name: "room.updated", Payload: []byte(`{}`)}))
	box.Discard(ctx2)
	require.NoError(t, box.Flush(ctx2))
	assert.Equal(t, 1, box.Len())

	doc, err := box.Claim(context.Background(), "w")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "e1", doc.ID)
	assert.Equal(t, infraoutbox.StateClaimed, doc.State)

	next, err := box.Claim(context.Background(), "w")
	require.NoError(t, err)
	assert.Nil(t, next)

	require.NoError(t, box.MarkFailed(context.Background(), "e1", time.Now().Add(-time.Second), "boom"))
	doc, _ = box.Claim(context.Background(), "w")
	require.NotNil(t, doc)
	assert.Equal(t, 1, doc.Attempts)
	require.NoError(t, box.MarkSent(context.Background(), "e1"))
	assert.Zero(t, box.Len())
}

func TestInboxDeduplicates(t *testing.T) {
	inbox := NewInbox()
	seen, err := inbox.Seen(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.False(t, seen)
	seen, _ = inbox.Seen(context.Background(), "evt-1")
	assert.True(t, seen)
}
