package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/IBM/sarama"

	"roomrate/internal/infra/inbox"
)

var ErrMalformedEvent = errors.New("kafka: malformed cloud event")

// EventHandler receives the event type (without version suffix) and its data.
type EventHandler interface {
	HandleEvent(ctx context.Context, eventType string, data []byte) error
}

type envelope struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// CloudEventHandler unwraps CloudEvents JSON, skips events the inbox has
// already seen and hands the rest to Handler.
type CloudEventHandler struct {
	Inbox   inbox.Inbox
	Handler EventHandler
	Logger  *slog.Logger
}

func (h *CloudEventHandler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	return h.Dispatch(ctx, msg.Value)
}

// Dispatch processes one encoded event.
func (h *CloudEventHandler) Dispatch(ctx context.Context, payload []byte) error {
	var evt envelope
	if err := json.Unmarshal(payload, &evt); err != nil {
		return errors.Join(ErrMalformedEvent, err)
	}
	if evt.ID == "" || evt.Type == "" {
		return ErrMalformedEvent
	}
	if h.Inbox != nil {
		seen, err := h.Inbox.Seen(ctx, evt.ID)
		if err != nil {
			return err
		}
		if seen {
			h.logger().DebugContext(ctx, "duplicate event skipped", "event_id", evt.ID, "type", evt.Type)
			return nil
		}
	}
	return h.Handler.HandleEvent(ctx, strings.TrimSuffix(evt.Type, ".v1"), evt.Data)
}

func (h *CloudEventHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

var _ MessageHandler = (*CloudEventHandler)(nil)
