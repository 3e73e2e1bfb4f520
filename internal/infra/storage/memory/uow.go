package memory

import (
	"context"
	"errors"
	"sync"

	"roomrate/internal/app/uow"
	domainavailability "roomrate/internal/domain/availability"
	domainbooking "roomrate/internal/domain/booking"
	domainrooms "roomrate/internal/domain/rooms"
)

var (
	ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")
	ErrUnitClosed           = errors.New("memory: unit of work already finished")
	ErrReadOnlyUnit         = errors.New("memory: write in read-only unit of work")
)

// Factory opens units over a Store. Write units are serialized; read-only
// units run concurrently and see committed state only.
type Factory struct {
	Store *Store

	writer sync.Mutex
}

func NewFactory(store *Store) *Factory {
	return &Factory{Store: store}
}

func (f *Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f == nil || f.Store == nil {
		return nil, ErrFactoryMisconfigured
	}
	u := &Unit{
		store:     f.Store,
		readOnly:  opts.ReadOnly,
		rooms:     make(map[domainrooms.RoomID]*domainrooms.Room),
		occupancy: make(map[domainrooms.RoomID]*domainavailability.Occupancy),
		bookings:  make(map[domainbooking.BookingID]*domainbooking.Booking),
	}
	if !opts.ReadOnly {
		f.writer.Lock()
		u.release = f.writer.Unlock
	}
	return u, nil
}

// Unit stages writes until Commit.
type Unit struct {
	store    *Store
	readOnly bool
	release  func()
	done     bool

	rooms     map[domainrooms.RoomID]*domainrooms.Room
	occupancy map[domainrooms.RoomID]*domainavailability.Occupancy
	bookings  map[domainbooking.BookingID]*domainbooking.Booking
}

func (u *Unit) Rooms() domainrooms.Repository            { return roomRepo{u} }
func (u *Unit) Occupancy() domainavailability.Repository { return occupancyRepo{u} }
func (u *Unit) Bookings() domainbooking.Repository       { return bookingRepo{u} }

func (u *Unit) Commit(ctx context.Context) error {
	if u.done {
		return ErrUnitClosed
	}
	defer u.finish()
	if u.readOnly {
		return nil
	}
	return u.store.apply(u.rooms, u.occupancy, u.bookings)
}

func (u *Unit) Rollback(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.finish()
	return nil
}

func (u *Unit) finish() {
	u.done = true
	if u.release != nil {
		u.release()
		u.release = nil
	}
}

func (u *Unit) stage() error {
	if u.done {
		return ErrUnitClosed
	}
	if u.readOnly {
		return ErrReadOnlyUnit
	}
	return nil
}

type roomRepo struct{ u *Unit }

func (r roomRepo) ByID(ctx context.Context, id domainrooms.RoomID) (*domainrooms.Room, error) {
	if staged, ok := r.u.rooms[id]; ok {
		clone := staged.Snapshot()
		return &clone, nil
	}
	room, ok := r.u.store.room(id)
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (r roomRepo) ByProperty(ctx context.Context, id domainrooms.PropertyID) ([]*domainrooms.Room, error) {
	list := r.u.store.roomsOf(id)
	seen := make(map[domainrooms.RoomID]int, len(list))
	for i, room := range list {
		seen[room.ID] = i
	}
	for _, staged := range r.u.rooms {
		if staged.PropertyID != id {
			continue
		}
		clone := staged.Snapshot()
		if i, ok := seen[staged.ID]; ok {
			list[i] = &clone
			continue
		}
		list = append(list, &clone)
	}
	sortRooms(list)
	return list, nil
}

func (r roomRepo) Save(ctx context.Context, room *domainrooms.Room) error {
	if err := r.u.stage(); err != nil {
		return err
	}
	clone := room.Snapshot()
	r.u.rooms[room.ID] = &clone
	return nil
}

type occupancyRepo struct{ u *Unit }

func (r occupancyRepo) Occupancy(ctx context.Context, id domainrooms.RoomID) (*domainavailability.Occupancy, error) {
	if staged, ok := r.u.occupancy[id]; ok {
		clone := staged.Snapshot()
		return &clone, nil
	}
	occ, ok := r.u.store.occupancyOf(id)
	if !ok {
		return nil, domainavailability.ErrOccupancyMissing
	}
	return occ, nil
}

func (r occupancyRepo) Save(ctx context.Context, occ *domainavailability.Occupancy) error {
	if err := r.u.stage(); err != nil {
		return err
	}
	clone := occ.Snapshot()
	r.u.occupancy[occ.RoomID] = &clone
	return nil
}

type bookingRepo struct{ u *Unit }

func (r bookingRepo) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	if staged, ok := r.u.bookings[id]; ok {
		clone := copyBooking(staged)
		return &clone, nil
	}
	b, ok := r.u.store.booking(id)
	if !ok {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (r bookingRepo) ListByRoom(ctx context.Context, roomID domainrooms.RoomID) ([]*domainbooking.Booking, error) {
	list := r.u.store.bookingsOf(roomID)
	seen := make(map[domainbooking.BookingID]int, len(list))
	for i, b := range list {
		seen[b.ID] = i
	}
	for _, staged := range r.u.bookings {
		if staged.RoomID != roomID {
			continue
		}
		clone := copyBooking(staged)
		if i, ok := seen[staged.ID]; ok {
			list[i] = &clone
			continue
		}
		list = append(list, &clone)
	}
	sortBookings(list)
	return list, nil
}

func (r bookingRepo) Save(ctx context.Context, b *domainbooking.Booking) error {
	if err := r.u.stage(); err != nil {
		return err
	}
	clone := copyBooking(b)
	r.u.bookings[b.ID] = &clone
	return nil
}

var (
	_ uow.UoWFactory = (*Factory)(nil)
	_ uow.UnitOfWork = (*Unit)(nil)
)
