package feed

import (
	"sync"
	"time"

	domainpricing "roomrate/internal/domain/pricing"
	domainrooms "roomrate/internal/domain/rooms"
	"roomrate/internal/domain/shared/clock"
)

// IndexStore caches the latest index per room and month. Every fetch takes a
// generation from Begin; Put drops a response whose generation is not newer
// than the one already stored, so a slow stale fetch never overwrites a
// fresher index.
type IndexStore struct {
	TTL time.Duration
	Now func() time.Time

	mu    sync.Mutex
	rooms map[domainrooms.RoomID]map[clock.Month]*slot
}

type slot struct {
	issued   uint64
	stored   uint64
	index    *domainpricing.CalendarIndex
	storedAt time.Time
}

func NewIndexStore(ttl time.Duration) *IndexStore {
	return &IndexStore{TTL: ttl, rooms: make(map[domainrooms.RoomID]map[clock.Month]*slot)}
}

func (s *IndexStore) slotFor(roomID domainrooms.RoomID, month clock.Month) *slot {
	if s.rooms == nil {
		s.rooms = make(map[domainrooms.RoomID]map[clock.Month]*slot)
	}
	months, ok := s.rooms[roomID]
	if !ok {
		months = make(map[clock.Month]*slot)
		s.rooms[roomID] = months
	}
	sl, ok := months[month]
	if !ok {
		sl = &slot{}
		months[month] = sl
	}
	return sl
}

// Begin issues the generation for a new fetch of roomID and month.
func (s *IndexStore) Begin(roomID domainrooms.RoomID, month clock.Month) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.slotFor(roomID, month)
	sl.issued++
	return sl.issued
}

// Put stores index fetched under gen. It reports false when a newer
// generation was stored first or the room was invalidated after Begin.
func (s *IndexStore) Put(roomID domainrooms.RoomID, month clock.Month, gen uint64, index *domainpricing.CalendarIndex) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.slotFor(roomID, month)
	if gen <= sl.stored {
		return false
	}
	sl.stored = gen
	sl.index = index
	sl.storedAt = s.now()
	return true
}

// Get returns the cached index unless it has expired.
func (s *IndexStore) Get(roomID domainrooms.RoomID, month clock.Month) (*domainpricing.CalendarIndex, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.rooms[roomID][month]
	if !ok || sl.index == nil {
		return nil, false
	}
	if s.TTL > 0 && s.now().Sub(sl.storedAt) > s.TTL {
		return nil, false
	}
	return sl.index, true
}

// Invalidate drops every cached month of roomID and supersedes fetches that
// are still in flight.
func (s *IndexStore) Invalidate(roomID domainrooms.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sl := range s.rooms[roomID] {
		sl.index = nil
		sl.stored = sl.issued
	}
}

func (s *IndexStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
