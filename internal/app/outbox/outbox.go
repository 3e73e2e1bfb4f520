package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"roomrate/internal/domain/shared/events"
)

// EventRecord is a domain event serialized for the outbox table.
type EventRecord struct {
	ID         string
	Name       string
	Payload    []byte
	OccurredAt time.Time
	Aggregate  string
	Headers    map[string]string
}

// Outbox buffers records for the current unit of work. Flush makes them
// visible to the publisher, Discard drops them after a failed command.
type Outbox interface {
	Add(ctx context.Context, record EventRecord) error
	Flush(ctx context.Context) error
	Discard(ctx context.Context)
}

// EventEncoder turns a domain event into a record; the payload is what
// consumers receive as CloudEvent data.
type EventEncoder interface {
	Encode(ev events.DomainEvent) (EventRecord, error)
}

// JSONEventEncoder marshals the event struct as is, so payload keys are the
// exported field names (RoomID, BookingID, ...).
type JSONEventEncoder struct {
	IDGenerator func() string
}

func (e JSONEventEncoder) Encode(ev events.DomainEvent) (EventRecord, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return EventRecord{}, err
	}
	idGen := e.IDGenerator
	if idGen == nil {
		idGen = uuid.NewString
	}
	return EventRecord{
		ID:         idGen(),
		Name:       ev.EventName(),
		Payload:    payload,
		OccurredAt: ev.OccurredAt().UTC(),
		Aggregate:  ev.AggregateID(),
		Headers:    map[string]string{},
	}, nil
}

// Recorder encodes drained aggregate events into the outbox of the current
// unit of work. A recorder without an outbox drops events.
type Recorder struct {
	Outbox  Outbox
	Encoder EventEncoder
}

func (r Recorder) Record(ctx context.Context, evs ...events.DomainEvent) error {
	if r.Outbox == nil || len(evs) == 0 {
		return nil
	}
	encoder := r.Encoder
	if encoder == nil {
		encoder = JSONEventEncoder{}
	}
	for _, ev := range evs {
		rec, err := encoder.Encode(ev)
		if err != nil {
			return fmt.Errorf("outbox: encode %s: %w", ev.EventName(), err)
		}
		if err := r.Outbox.Add(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
