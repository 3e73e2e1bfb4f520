package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	appoutbox "roomrate/internal/app/outbox"
	"roomrate/internal/app/uow"
	infraoutbox "roomrate/internal/infra/outbox"
)

// Outbox buffers records per unit of work until Flush, then queues them for
// the worker. Records added outside a unit are queued directly.
type Outbox struct {
	mu      sync.Mutex
	pending map[uow.UnitOfWork][]appoutbox.EventRecord
	queue   map[string]*infraoutbox.EventDocument
	now     func() time.Time
}

func NewOutbox() *Outbox {
	return &Outbox{
		pending: make(map[uow.UnitOfWork][]appoutbox.EventRecord),
		queue:   make(map[string]*infraoutbox.EventDocument),
		now:     time.Now,
	}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	unit, ok := uow.FromContext(ctx)
	if !ok {
		o.enqueue(record)
		return nil
	}
	o.pending[unit] = append(o.pending[unit], record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil
	}
	for _, rec := range o.pending[unit] {
		o.enqueue(rec)
	}
	delete(o.pending, unit)
	return nil
}

func (o *Outbox) Discard(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if unit, ok := uow.FromContext(ctx); ok {
		delete(o.pending, unit)
	}
}

func (o *Outbox) enqueue(rec appoutbox.EventRecord) {
	o.queue[rec.ID] = &infraoutbox.EventDocument{
		ID:          rec.ID,
		Name:        rec.Name,
		Payload:     rec.Payload,
		OccurredAt:  rec.OccurredAt,
		Aggregate:   rec.Aggregate,
		Headers:     rec.Headers,
		State:       infraoutbox.StateNew,
		NextAttempt: o.now(),
	}
}

// Claim hands out the oldest due record.
func (o *Outbox) Claim(ctx context.Context, workerID string) (*infraoutbox.EventDocument, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := o.now()
	var due []*infraoutbox.EventDocument
	for _, doc := range o.queue {
		if doc.State != infraoutbox.StateNew && doc.State != infraoutbox.StateFailed {
			continue
		}
		if doc.NextAttempt.After(now) {
			continue
		}
		due = append(due, doc)
	}
	if len(due) == 0 {
		return nil, nil
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].OccurredAt.Equal(due[j].OccurredAt) {
			return due[i].OccurredAt.Before(due[j].OccurredAt)
		}
		return due[i].ID < due[j].ID
	})
	doc := due[0]
	doc.State = infraoutbox.StateClaimed
	doc.ClaimedBy = workerID
	doc.ClaimedAt = now
	clone := *doc
	return &clone, nil
}

// MarkSent drops the record; sent records are not kept in memory.
func (o *Outbox) MarkSent(ctx context.Context, id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.queue, id)
	return nil
}

func (o *Outbox) MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if doc, ok := o.queue[id]; ok {
		doc.State = infraoutbox.StateFailed
		doc.NextAttempt = next
		doc.LastError = errMsg
		doc.Attempts++
	}
	return nil
}

// Len counts queued, undelivered records.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.queue)
}

var (
	_ appoutbox.Outbox  = (*Outbox)(nil)
	_ infraoutbox.Queue = (*Outbox)(nil)
)
