package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrate/internal/app/commands"
	"roomrate/internal/app/outbox"
	"roomrate/internal/app/uow"
	domainavailability "roomrate/internal/domain/availability"
	domainbooking "roomrate/internal/domain/booking"
	domainrooms "roomrate/internal/domain/rooms"
)

type bookCommand struct {
	Room  string
	Token string
}

func (bookCommand) Key() string              { return "test.book" }
func (c bookCommand) IdempotencyKey() string { return c.Token }
func (bookCommand) ResultPrototype() any     { return &bookResult{} }
func (c bookCommand) Validate() error {
	if c.Room == "" {
		return errors.New("room required")
	}
	return nil
}

type bookResult struct {
	ID string `json:"id"`
}

type fakeUnit struct {
	committed  bool
	rolledBack bool
}

func (u *fakeUnit) Rooms() domainrooms.Repository            { return nil }
func (u *fakeUnit) Occupancy() domainavailability.Repository { return nil }
func (u *fakeUnit) Bookings() domainbooking.Repository       { return nil }
func (u *fakeUnit) Commit(context.Context) error             { u.committed = true; return nil }
func (u *fakeUnit) Rollback(context.Context) error           { u.rolledBack = true; return nil }

type fakeFactory struct{ units []*fakeUnit }

func (f *fakeFactory) Begin(context.Context, uow.TxOptions) (uow.UnitOfWork, error) {
	u := &fakeUnit{}
	f.units = append(f.units, u)
	return u, nil
}

type fakeOutbox struct {
	flushed, discarded int
}

func (o *fakeOutbox) Add(context.Context, outbox.EventRecord) error { return nil }
func (o *fakeOutbox) Flush(context.Context) error                   { o.flushed++; return nil }
func (o *fakeOutbox) Discard(context.Context)                       { o.discarded++ }

type mapStore struct {
	mu   sync.Mutex
	recs map[string]IdempotencyRecord
}

func (s *mapStore) Get(_ context.Context, key string) (IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[key]
	return rec, ok, nil
}

func (s *mapStore) Save(_ context.Context, rec IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs[rec.Key] = rec
	return nil
}

type pipeline struct {
	bus     commands.Bus
	factory *fakeFactory
	box     *fakeOutbox
	store   *mapStore
	calls   int
}

func newPipeline(t *testing.T, fail error) *pipeline {
	t.Helper()
	p := &pipeline{factory: &fakeFactory{}, box: &fakeOutbox{}, store: &mapStore{recs: map[string]IdempotencyRecord{}}}
	base := commands.NewInMemoryBus()
	commands.RegisterHandler(base, bookCommand{}.Key(), commands.HandlerFunc[bookCommand, *bookResult](func(ctx context.Context, cmd bookCommand) (*bookResult, error) {
		p.calls++
		if _, ok := uow.FromContext(ctx); !ok {
			return nil, uow.ErrUnitOfWorkMissing
		}
		if fail != nil {
			return nil, fail
		}
		return &bookResult{ID: "booking-" + cmd.Room}, nil
	}))
	p.bus = ChainCommands(base,
		Logging(nil),
		Validation(SelfValidator{}),
		Idempotency(p.store, nil),
		Transaction(p.factory, nil),
		OutboxFlush(p.box),
	)
	return p
}

func TestPipelineCommitsAndFlushes(t *testing.T) {
	p := newPipeline(t, nil)
	res, err := commands.Dispatch[bookCommand, *bookResult](context.Background(), p.bus, bookCommand{Room: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "booking-r1", res.ID)
	require.Len(t, p.factory.units, 1)
	assert.True(t, p.factory.units[0].committed)
	assert.False(t, p.factory.units[0].rolledBack)
	assert.Equal(t, 1, p.box.flushed)
}

func TestPipelineRollsBackOnFailure(t *testing.T) {
	boom := errors.New("boom")
	p := newPipeline(t, boom)
	_, err := p.bus.Dispatch(context.Background(), bookCommand{Room: "r1", Token: "k"})
	require.ErrorIs(t, err, boom)
	require.Len(t, p.factory.units, 1)
	assert.False(t, p.factory.units[0].committed)
	assert.True(t, p.factory.units[0].rolledBack)
	assert.Equal(t, 1, p.box.discarded)
	assert.Empty(t, p.store.recs)
}

func TestPipelineValidationStopsEarly(t *testing.T) {
	p := newPipeline(t, nil)
	_, err := p.bus.Dispatch(context.Background(), bookCommand{})
	require.Error(t, err)
	assert.Zero(t, p.calls)
	assert.Empty(t, p.factory.units)
}

func TestIdempotencyReplaysStoredResult(t *testing.T) {
	p := newPipeline(t, nil)
	ctx := context.Background()
	first, err := commands.Dispatch[bookCommand, *bookResult](ctx, p.bus, bookCommand{Room: "r1", Token: "abc"})
	require.NoError(t, err)
	second, err := commands.Dispatch[bookCommand, *bookResult](ctx, p.bus, bookCommand{Room: "r2", Token: "abc"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, "test.book", p.store.recs["test.book:abc"].Command)
}

func TestIdempotencyReplaysStoredFailure(t *testing.T) {
	p := newPipeline(t, nil)
	p.store.recs["test.book:bad"] = IdempotencyRecord{Key: "test.book:bad", Error: "sold out"}
	_, err := p.bus.Dispatch(context.Background(), bookCommand{Room: "r1", Token: "bad"})
	require.ErrorIs(t, err, ErrReplayedFailure)
	assert.ErrorContains(t, err, "sold out")
	assert.Zero(t, p.calls)
}

func TestChainSkipsNilMiddleware(t *testing.T) {
	var order []string
	mw := func(name string) CommandMiddleware {
		return func(next commands.Bus) commands.Bus {
			return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
				order = append(order, name)
				return next.Dispatch(ctx, cmd)
			})
		}
	}
	base := commands.NewInMemoryBus()
	commands.RegisterHandler(base, bookCommand{}.Key(), commands.HandlerFunc[bookCommand, *bookResult](func(context.Context, bookCommand) (*bookResult, error) {
		return nil, nil
	}))
	bus := ChainCommands(base, mw("outer"), nil, mw("inner"))
	_, err := bus.Dispatch(context.Background(), bookCommand{})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}
