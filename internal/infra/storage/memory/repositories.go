package memory

import (
	"errors"
	"sort"
	"sync"

	domainavailability "roomrate/internal/domain/availability"
	domainbooking "roomrate/internal/domain/booking"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/events"
)

var (
	ErrRoomNotFound    = domainrooms.ErrRoomNotFound
	ErrBookingNotFound = domainbooking.ErrBookingNotFound
	ErrStaleVersion    = errors.New("memory: aggregate was modified concurrently")
)

// Store keeps committed aggregates. Repositories hand out copies so a rolled
// back unit never leaks half-applied changes.
type Store struct {
	mu        sync.RWMutex
	rooms     map[domainrooms.RoomID]domainrooms.Room
	occupancy map[domainrooms.RoomID]domainavailability.Occupancy
	bookings  map[domainbooking.BookingID]domainbooking.Booking
}

func NewStore() *Store {
	return &Store{
		rooms:     make(map[domainrooms.RoomID]domainrooms.Room),
		occupancy: make(map[domainrooms.RoomID]domainavailability.Occupancy),
		bookings:  make(map[domainbooking.BookingID]domainbooking.Booking),
	}
}

func (s *Store) room(id domainrooms.RoomID) (*domainrooms.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, false
	}
	clone := r.Snapshot()
	return &clone, true
}

func (s *Store) roomsOf(id domainrooms.PropertyID) []*domainrooms.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*domainrooms.Room
	for _, r := range s.rooms {
		if r.PropertyID != id {
			continue
		}
		clone := r.Snapshot()
		out = append(out, &clone)
	}
	return out
}

func (s *Store) occupancyOf(id domainrooms.RoomID) (*domainavailability.Occupancy, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.occupancy[id]
	if !ok {
		return nil, false
	}
	clone := o.Snapshot()
	return &clone, true
}

func (s *Store) booking(id domainbooking.BookingID) (*domainbooking.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, false
	}
	clone := copyBooking(&b)
	return &clone, true
}

func (s *Store) bookingsOf(id domainrooms.RoomID) []*domainbooking.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, b := range s.bookings {
		if b.RoomID != id {
			continue
		}
		clone := copyBooking(&b)
		out = append(out, &clone)
	}
	return out
}

// apply writes the staged aggregates of a unit, checking versions first.
func (s *Store) apply(rooms map[domainrooms.RoomID]*domainrooms.Room, occ map[domainrooms.RoomID]*domainavailability.Occupancy, bookings map[domainbooking.BookingID]*domainbooking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, r := range rooms {
		if cur, ok := s.rooms[id]; ok && cur.Version != r.Version {
			return ErrStaleVersion
		}
	}
	for id, o := range occ {
		if cur, ok := s.occupancy[id]; ok && cur.Version != o.Version {
			return ErrStaleVersion
		}
	}
	for id, b := range bookings {
		if cur, ok := s.bookings[id]; ok && cur.Version != b.Version {
			return ErrStaleVersion
		}
	}
	for id, r := range rooms {
		clone := r.Snapshot()
		clone.Version++
		s.rooms[id] = clone
	}
	for id, o := range occ {
		clone := o.Snapshot()
		clone.Version++
		s.occupancy[id] = clone
	}
	for id, b := range bookings {
		clone := copyBooking(b)
		clone.Version++
		s.bookings[id] = clone
	}
	return nil
}

func copyBooking(b *domainbooking.Booking) domainbooking.Booking {
	clone := *b
	clone.EventRecorder = events.EventRecorder{}
	return clone
}

func sortRooms(list []*domainrooms.Room) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}

func sortBookings(list []*domainbooking.Booking) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}
