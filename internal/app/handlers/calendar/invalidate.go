package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"roomrate/internal/app/policies"
	domainrooms "roomrate/internal/domain/rooms"
)

var ErrEventWithoutRoom = errors.New("calendar: event payload has no room id")

// Invalidator drops cached calendar indexes when a room or booking event
// arrives. Payload is the event data carrying a RoomID field.
type Invalidator struct {
	Indexes policies.CalendarIndexes
	Logger  *slog.Logger
}

func (i *Invalidator) HandleEvent(ctx context.Context, eventType string, data []byte) error {
	var body struct {
		RoomID string `json:"RoomID"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	if body.RoomID == "" {
		return ErrEventWithoutRoom
	}
	i.Indexes.Invalidate(domainrooms.RoomID(body.RoomID))
	if i.Logger != nil {
		i.Logger.DebugContext(ctx, "calendar cache invalidated", "room_id", body.RoomID, "event", eventType)
	}
	return nil
}
