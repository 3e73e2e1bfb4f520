// Package fixtures seeds rooms from a JSON file at startup.
package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"roomrate/internal/app/commands"
	"roomrate/internal/app/dto"
	roomsapp "roomrate/internal/app/handlers/rooms"
	"roomrate/internal/domain/shared/clock"
)

type roomFixture struct {
	ID            string          `json:"id"`
	PropertyID    string          `json:"property_id"`
	Name          string          `json:"name"`
	BasePrice     int64           `json:"base_price"`
	GuestCapacity int             `json:"guest_capacity"`
	Stock         int             `json:"stock"`
	PeakRates     []windowFixture `json:"peak_season_rates"`
	Blocks        []windowFixture `json:"non_availability"`
}

type windowFixture struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Price     int64  `json:"price"`
	Reason    string `json:"reason"`
}

// Result counts what LoadRooms imported.
type Result struct {
	Rooms     int
	PeakRates int
	Blocks    int
	Skipped   int
}

// LoadRooms dispatches the fixture file through the command bus so seeded
// rooms get occupancy ledgers and outbox events like API-created ones. A
// missing or empty file is not an error. Invalid entries are logged and
// skipped.
func LoadRooms(ctx context.Context, path string, bus commands.Bus, logger *slog.Logger) (Result, error) {
	var res Result
	if logger == nil {
		logger = slog.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("room fixtures file not found, skipping", "path", path)
			return res, nil
		}
		return res, fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("room fixtures file empty", "path", path)
		return res, nil
	}

	var fixtures []roomFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return res, fmt.Errorf("decode fixtures: %w", err)
	}

	for _, fx := range fixtures {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		room, err := commands.Dispatch[roomsapp.CreateRoomCommand, *dto.Room](ctx, bus, roomsapp.CreateRoomCommand{
			RoomID:        fx.ID,
			PropertyID:    fx.PropertyID,
			Name:          fx.Name,
			BasePrice:     fx.BasePrice,
			GuestCapacity: fx.GuestCapacity,
			Stock:         fx.Stock,
		})
		if err != nil {
			logger.Warn("room fixture skipped", "room_id", fx.ID, "error", err)
			res.Skipped++
			continue
		}
		res.Rooms++

		for _, w := range fx.PeakRates {
			start, end, err := w.dates()
			if err == nil {
				_, err = commands.Dispatch[roomsapp.AddPeakSeasonRateCommand, *dto.Room](ctx, bus, roomsapp.AddPeakSeasonRateCommand{
					RoomID: room.ID, StartDate: start, EndDate: end, Price: w.Price,
				})
			}
			if err != nil {
				logger.Warn("peak rate fixture skipped", "room_id", room.ID, "start", w.StartDate, "error", err)
				res.Skipped++
				continue
			}
			res.PeakRates++
		}
		for _, w := range fx.Blocks {
			start, end, err := w.dates()
			if err == nil {
				_, err = commands.Dispatch[roomsapp.AddNonAvailabilityCommand, *dto.Room](ctx, bus, roomsapp.AddNonAvailabilityCommand{
					RoomID: room.ID, StartDate: start, EndDate: end, Reason: w.Reason,
				})
			}
			if err != nil {
				logger.Warn("blackout fixture skipped", "room_id", room.ID, "start", w.StartDate, "error", err)
				res.Skipped++
				continue
			}
			res.Blocks++
		}
		logger.Info("room fixture imported", "room_id", room.ID)
	}
	return res, nil
}

func (w windowFixture) dates() (start, end time.Time, err error) {
	if start, err = clock.ParseDateKey(w.StartDate); err != nil {
		return start, end, err
	}
	end, err = clock.ParseDateKey(w.EndDate)
	return start, end, err
}

// DefaultPath returns the first existing candidate, or data/rooms.json.
func DefaultPath() string {
	candidates := []string{
		filepath.Join("data", "rooms.json"),
		filepath.Join("..", "..", "data", "rooms.json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}
