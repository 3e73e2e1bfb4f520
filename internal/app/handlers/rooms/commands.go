package rooms

import (
	"context"
	"errors"
	"strings"
	"time"

	"roomrate/internal/app/commands"
	"roomrate/internal/app/dto"
	"roomrate/internal/app/uow"
	domainavailability "roomrate/internal/domain/availability"
	domainrooms "roomrate/internal/domain/rooms"
)

const (
	createRoomKey            = "rooms.create"
	updateBasePriceKey       = "rooms.base_price.update"
	addPeakSeasonRateKey     = "rooms.peak_rates.add"
	removePeakSeasonRateKey  = "rooms.peak_rates.remove"
	addNonAvailabilityKey    = "rooms.blocks.add"
	removeNonAvailabilityKey = "rooms.blocks.remove"
)

var ErrRoomIDRequired = errors.New("rooms: room id is required")

type CreateRoomCommand struct {
	RoomID        string
	PropertyID    string
	Name          string
	BasePrice     int64
	GuestCapacity int
	Stock         int
}

func (c CreateRoomCommand) Key() string { return createRoomKey }

type CreateRoomHandler struct {
	Editor
}

func (h *CreateRoomHandler) Handle(ctx context.Context, cmd CreateRoomCommand) (*dto.Room, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	id := strings.TrimSpace(cmd.RoomID)
	if id == "" {
		id = h.newID()
	}
	room, err := domainrooms.NewRoom(domainrooms.CreateParams{
		ID:            domainrooms.RoomID(id),
		PropertyID:    domainrooms.PropertyID(strings.TrimSpace(cmd.PropertyID)),
		Name:          cmd.Name,
		BasePrice:     cmd.BasePrice,
		GuestCapacity: cmd.GuestCapacity,
		Stock:         cmd.Stock,
		Now:           h.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := h.save(ctx, unit, room); err != nil {
		return nil, err
	}
	if err := unit.Occupancy().Save(ctx, domainavailability.NewOccupancy(room.ID, room.Stock)); err != nil {
		return nil, err
	}
	h.log("room created", "room_id", room.ID, "property_id", room.PropertyID)
	result := dto.MapRoom(room)
	return &result, nil
}

type UpdateBasePriceCommand struct {
	RoomID    string
	BasePrice int64
}

func (c UpdateBasePriceCommand) Key() string { return updateBasePriceKey }

type UpdateBasePriceHandler struct {
	Editor
}

func (h *UpdateBasePriceHandler) Handle(ctx context.Context, cmd UpdateBasePriceCommand) (*dto.Room, error) {
	unit, room, err := h.load(ctx, cmd.RoomID)
	if err != nil {
		return nil, err
	}
	if err := room.UpdateBasePrice(cmd.BasePrice, h.now()); err != nil {
		return nil, err
	}
	if err := h.save(ctx, unit, room); err != nil {
		return nil, err
	}
	result := dto.MapRoom(room)
	return &result, nil
}

type AddPeakSeasonRateCommand struct {
	RoomID    string
	StartDate time.Time
	EndDate   time.Time
	Price     int64
}

func (c AddPeakSeasonRateCommand) Key() string { return addPeakSeasonRateKey }

func (c AddPeakSeasonRateCommand) Validate() error {
	if strings.TrimSpace(c.RoomID) == "" {
		return ErrRoomIDRequired
	}
	return nil
}

type AddPeakSeasonRateHandler struct {
	Editor
}

func (h *AddPeakSeasonRateHandler) Handle(ctx context.Context, cmd AddPeakSeasonRateCommand) (*dto.Room, error) {
	unit, room, err := h.load(ctx, cmd.RoomID)
	if err != nil {
		return nil, err
	}
	rate, err := room.AddPeakSeasonRate(domainrooms.PeakSeasonParams{
		ID:        h.newID(),
		StartDate: cmd.StartDate,
		EndDate:   cmd.EndDate,
		Price:     cmd.Price,
		Now:       h.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := h.save(ctx, unit, room); err != nil {
		return nil, err
	}
	h.log("peak season rate added", "room_id", room.ID, "rate_id", rate.ID, "price", rate.Price)
	result := dto.MapRoom(room)
	return &result, nil
}

type RemovePeakSeasonRateCommand struct {
	RoomID string
	RateID string
}

func (c RemovePeakSeasonRateCommand) Key() string { return removePeakSeasonRateKey }

type RemovePeakSeasonRateHandler struct {
	Editor
}

func (h *RemovePeakSeasonRateHandler) Handle(ctx context.Context, cmd RemovePeakSeasonRateCommand) (*dto.Room, error) {
	unit, room, err := h.load(ctx, cmd.RoomID)
	if err != nil {
		return nil, err
	}
	if err := room.RemovePeakSeasonRate(cmd.RateID, h.now()); err != nil {
		return nil, err
	}
	if err := h.save(ctx, unit, room); err != nil {
		return nil, err
	}
	result := dto.MapRoom(room)
	return &result, nil
}

type AddNonAvailabilityCommand struct {
	RoomID    string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

func (c AddNonAvailabilityCommand) Key() string { return addNonAvailabilityKey }

func (c AddNonAvailabilityCommand) Validate() error {
	if strings.TrimSpace(c.RoomID) == "" {
		return ErrRoomIDRequired
	}
	return nil
}

type AddNonAvailabilityHandler struct {
	Editor
}

func (h *AddNonAvailabilityHandler) Handle(ctx context.Context, cmd AddNonAvailabilityCommand) (*dto.Room, error) {
	unit, room, err := h.load(ctx, cmd.RoomID)
	if err != nil {
		return nil, err
	}
	block, err := room.AddNonAvailability(domainrooms.BlockParams{
		ID:        h.newID(),
		StartDate: cmd.StartDate,
		EndDate:   cmd.EndDate,
		Reason:    cmd.Reason,
		Now:       h.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := h.save(ctx, unit, room); err != nil {
		return nil, err
	}
	h.log("room blocked", "room_id", room.ID, "block_id", block.ID)
	result := dto.MapRoom(room)
	return &result, nil
}

type RemoveNonAvailabilityCommand struct {
	RoomID  string
	BlockID string
}

func (c RemoveNonAvailabilityCommand) Key() string { return removeNonAvailabilityKey }

type RemoveNonAvailabilityHandler struct {
	Editor
}

func (h *RemoveNonAvailabilityHandler) Handle(ctx context.Context, cmd RemoveNonAvailabilityCommand) (*dto.Room, error) {
	unit, room, err := h.load(ctx, cmd.RoomID)
	if err != nil {
		return nil, err
	}
	if err := room.RemoveNonAvailability(cmd.BlockID, h.now()); err != nil {
		return nil, err
	}
	if err := h.save(ctx, unit, room); err != nil {
		return nil, err
	}
	result := dto.MapRoom(room)
	return &result, nil
}

var (
	_ commands.Handler[CreateRoomCommand, *dto.Room]            = (*CreateRoomHandler)(nil)
	_ commands.Handler[UpdateBasePriceCommand, *dto.Room]       = (*UpdateBasePriceHandler)(nil)
	_ commands.Handler[AddPeakSeasonRateCommand, *dto.Room]     = (*AddPeakSeasonRateHandler)(nil)
	_ commands.Handler[RemovePeakSeasonRateCommand, *dto.Room]  = (*RemovePeakSeasonRateHandler)(nil)
	_ commands.Handler[AddNonAvailabilityCommand, *dto.Room]    = (*AddNonAvailabilityHandler)(nil)
	_ commands.Handler[RemoveNonAvailabilityCommand, *dto.Room] = (*RemoveNonAvailabilityHandler)(nil)
)
