package rooms

import (
	"context"

	"roomrate/internal/app/dto"
	"roomrate/internal/app/handlers/support"
	"roomrate/internal/app/queries"
	"roomrate/internal/app/uow"
	domainrooms "roomrate/internal/domain/rooms"
)

const (
	getRoomKey       = "rooms.get"
	propertyRoomsKey = "rooms.by_property"
)

type GetRoomQuery struct {
	RoomID string
}

func (q GetRoomQuery) Key() string { return getRoomKey }

type GetRoomHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetRoomHandler) Handle(ctx context.Context, q GetRoomQuery) (dto.Room, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Room{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	room, err := unit.Rooms().ByID(ctx, domainrooms.RoomID(q.RoomID))
	if err != nil {
		return dto.Room{}, err
	}
	return dto.MapRoom(room), nil
}

type ListPropertyRoomsQuery struct {
	PropertyID string
}

func (q ListPropertyRoomsQuery) Key() string { return propertyRoomsKey }

type ListPropertyRoomsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListPropertyRoomsHandler) Handle(ctx context.Context, q ListPropertyRoomsQuery) ([]dto.Room, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	list, err := unit.Rooms().ByProperty(ctx, domainrooms.PropertyID(q.PropertyID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.Room, 0, len(list))
	for _, room := range list {
		out = append(out, dto.MapRoom(room))
	}
	return out, nil
}

var (
	_ queries.Handler[GetRoomQuery, dto.Room]             = (*GetRoomHandler)(nil)
	_ queries.Handler[ListPropertyRoomsQuery, []dto.Room] = (*ListPropertyRoomsHandler)(nil)
)
