package fixtures

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomrate/internal/app/dto"
	roomsapp "roomrate/internal/app/handlers/rooms"
	"roomrate/internal/app/queries"
	"roomrate/internal/app/registry"
	"roomrate/internal/domain/shared/clock"
	"roomrate/internal/infra/storage/memory"
)

const sample = `[
  {
    "id": "room-1",
    "property_id": "prop-1",
    "name": "Deluxe",
    "base_price": 500000,
    "guest_capacity": 2,
    "peak_season_rates": [
      {"start_date": "2025-12-24", "end_date": "2025-12-26", "price": 1200000},
      {"start_date": "2025-12-25", "end_date": "2025-12-28", "price": 900000},
      {"start_date": "bad", "end_date": "2025-12-28", "price": 900000}
    ],
    "non_availability": [
      {"start_date": "2025-07-10", "end_date": "2025-07-12", "reason": "renovation"}
    ]
  },
  {"id": "room-2", "property_id": "prop-1", "name": "", "base_price": 1, "guest_capacity": 1}
]`

func buses(t *testing.T) registry.Buses {
	t.Helper()
	factory := memory.NewFactory(memory.NewStore())
	return registry.Build(registry.Deps{
		UoWFactory: factory,
		Outbox:     memory.NewOutbox(),
		Clock:      clock.Fixed{At: time.Date(2025, 7, 1, 9, 0, 0, 0, clock.Zone())},
	})
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rooms.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadRooms(t *testing.T) {
	b := buses(t)
	ctx := context.Background()

	res, err := LoadRooms(ctx, writeFile(t, sample), b.Commands, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Rooms: 1, PeakRates: 1, Blocks: 1, Skipped: 3}, res)

	room, err := queries.Ask[roomsapp.GetRoomQuery, dto.Room](ctx, b.Queries, roomsapp.GetRoomQuery{RoomID: "room-1"})
	require.NoError(t, err)
	require.Len(t, room.PeakSeasonRates, 1)
	assert.Equal(t, "2025-12-24", room.PeakSeasonRates[0].StartDate)
	require.Len(t, room.NonAvailability, 1)
	assert.Equal(t, "renovation", room.NonAvailability[0].Reason)
	assert.Equal(t, 1, room.Stock)
}

func TestLoadRoomsMissingOrEmptyFile(t *testing.T) {
	b := buses(t)
	res, err := LoadRooms(context.Background(), filepath.Join(t.TempDir(), "none.json"), b.Commands, nil)
	require.NoError(t, err)
	assert.Zero(t, res)

	res, err = LoadRooms(context.Background(), writeFile(t, ""), b.Commands, nil)
	require.NoError(t, err)
	assert.Zero(t, res)
}

func TestLoadRoomsMalformed(t *testing.T) {
	b := buses(t)
	_, err := LoadRooms(context.Background(), writeFile(t, "{"), b.Commands, nil)
	assert.ErrorContains(t, err, "decode fixtures")
}
