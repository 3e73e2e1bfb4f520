package queries

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nightsQuery struct{ RoomID string }

func (nightsQuery) Key() string { return "test.nights" }

type unknownQuery struct{}

func (unknownQuery) Key() string { return "test.unknown" }

type nightsHandler struct{}

func (nightsHandler) Handle(_ context.Context, q nightsQuery) (int, error) {
	if q.RoomID == "" {
		return 0, nil
	}
	return 4, nil
}

func TestInMemoryBusAsk(t *testing.T) {
	bus := NewInMemoryBus()
	RegisterHandler[nightsQuery, int](bus, "test.nights", nightsHandler{})

	got, err := Ask[nightsQuery, int](context.Background(), bus, nightsQuery{RoomID: "room-1"})
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	_, err = bus.Ask(context.Background(), unknownQuery{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)

	_, err = Ask[nightsQuery, string](context.Background(), bus, nightsQuery{RoomID: "room-1"})
	require.ErrorIs(t, err, ErrResultType)
	assert.Contains(t, err.Error(), "test.nights returned int")

	_, err = Ask[nightsQuery, int](context.Background(), nil, nightsQuery{})
	assert.ErrorIs(t, err, ErrNilBus)

	_, err = bus.Ask(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	assert.Equal(t, []string{"test.nights"}, bus.Keys())
}

func TestRegisterHandlerPanicsOnWiringMistakes(t *testing.T) {
	bus := NewInMemoryBus()
	RegisterHandler[nightsQuery, int](bus, "test.nights", nightsHandler{})
	assert.Panics(t, func() { RegisterHandler[nightsQuery, int](bus, "test.nights", nightsHandler{}) })
	assert.Panics(t, func() { RegisterHandler[nightsQuery, int](bus, "", nightsHandler{}) })
	assert.Panics(t, func() { RegisterHandler[nightsQuery, int](nil, "test.nights", nightsHandler{}) })
}

func TestInvalidQueryForKey(t *testing.T) {
	bus := NewInMemoryBus()
	RegisterHandler[nightsQuery, int](bus, "test.unknown", nightsHandler{})
	_, err := bus.Ask(context.Background(), unknownQuery{})
	require.ErrorIs(t, err, ErrInvalidQuery)
	assert.Contains(t, err.Error(), "unknownQuery")
}
