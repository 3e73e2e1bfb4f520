package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrate/internal/domain/shared/events"
)

type rateAdded struct {
	RoomID string
	Price  int64
	At     time.Time
}

func (e rateAdded) EventName() string     { return "room.peak_rate_added" }
func (e rateAdded) AggregateID() string   { return e.RoomID }
func (e rateAdded) OccurredAt() time.Time { return e.At }

type badEvent struct {
	Value float64
}

func (badEvent) EventName() string     { return "room.bad" }
func (badEvent) AggregateID() string   { return "room-1" }
func (badEvent) OccurredAt() time.Time { return time.Time{} }

type sliceOutbox struct {
	records []EventRecord
}

func (o *sliceOutbox) Add(_ context.Context, rec EventRecord) error {
	o.records = append(o.records, rec)
	return nil
}
func (o *sliceOutbox) Flush(context.Context) error { return nil }
func (o *sliceOutbox) Discard(context.Context)     {}

func TestRecorderEncodesEvents(t *testing.T) {
	box := &sliceOutbox{}
	r := Recorder{Outbox: box, Encoder: JSONEventEncoder{IDGenerator: func() string { return "evt-1" }}}
	at := time.Date(2025, 7, 1, 10, 0, 0, 0, time.FixedZone("WIB", 7*3600))

	require.NoError(t, r.Record(context.Background(), rateAdded{RoomID: "room-1", Price: 1_200_000, At: at}))
	require.Len(t, box.records, 1)
	rec := box.records[0]
	assert.Equal(t, "evt-1", rec.ID)
	assert.Equal(t, "room.peak_rate_added", rec.Name)
	assert.Equal(t, "room-1", rec.Aggregate)
	assert.Equal(t, time.UTC, rec.OccurredAt.Location())
	assert.True(t, rec.OccurredAt.Equal(at))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Payload, &body))
	assert.Equal(t, "room-1", body["RoomID"])
}

func TestRecorderWithoutOutboxDropsEvents(t *testing.T) {
	assert.NoError(t, Recorder{}.Record(context.Background(), rateAdded{RoomID: "room-1"}))
}

func TestRecorderNamesFailingEvent(t *testing.T) {
	box := &sliceOutbox{}
	err := Recorder{Outbox: box}.Record(context.Background(), []events.DomainEvent{
		rateAdded{RoomID: "room-1"},
		badEvent{Value: math.Inf(1)},
	}...)
	require.Error(t, err)
	assert.ErrorContains(t, err, "room.bad")
	var unsupported *json.UnsupportedValueError
	assert.True(t, errors.As(err, &unsupported))
	assert.Len(t, box.records, 1)
}
