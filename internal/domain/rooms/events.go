package rooms

import (
	"time"

	"roomrate/internal/domain/shared/daterange"
)

type RoomCreated struct {
	RoomID     RoomID
	PropertyID PropertyID
	At         time.Time
}

func (e RoomCreated) EventName() string     { return "room.created" }
func (e RoomCreated) AggregateID() string   { return string(e.RoomID) }
func (e RoomCreated) OccurredAt() time.Time { return e.At }

type RoomUpdated struct {
	RoomID RoomID
	At     time.Time
}

func (e RoomUpdated) EventName() string     { return "room.updated" }
func (e RoomUpdated) AggregateID() string   { return string(e.RoomID) }
func (e RoomUpdated) OccurredAt() time.Time { return e.At }

type PeakSeasonRateAdded struct {
	RoomID RoomID
	RateID string
	Window daterange.Window
	Price  int64
	At     time.Time
}

func (e PeakSeasonRateAdded) EventName() string     { return "room.peak_rate_added" }
func (e PeakSeasonRateAdded) AggregateID() string   { return string(e.RoomID) }
func (e PeakSeasonRateAdded) OccurredAt() time.Time { return e.At }

type PeakSeasonRateRemoved struct {
	RoomID RoomID
	RateID string
	At     time.Time
}

func (e PeakSeasonRateRemoved) EventName() string     { return "room.peak_rate_removed" }
func (e PeakSeasonRateRemoved) AggregateID() string   { return string(e.RoomID) }
func (e PeakSeasonRateRemoved) OccurredAt() time.Time { return e.At }

type NonAvailabilityAdded struct {
	RoomID  RoomID
	BlockID string
	Window  daterange.Window
	Reason  string
	At      time.Time
}

func (e NonAvailabilityAdded) EventName() string     { return "room.blocked" }
func (e NonAvailabilityAdded) AggregateID() string   { return string(e.RoomID) }
func (e NonAvailabilityAdded) OccurredAt() time.Time { return e.At }

type NonAvailabilityRemoved struct {
	RoomID  RoomID
	BlockID string
	At      time.Time
}

func (e NonAvailabilityRemoved) EventName() string     { return "room.unblocked" }
func (e NonAvailabilityRemoved) AggregateID() string   { return string(e.RoomID) }
func (e NonAvailabilityRemoved) OccurredAt() time.Time { return e.At }
