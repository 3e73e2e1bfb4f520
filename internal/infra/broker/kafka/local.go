package kafka

import (
	"context"
	"log/slog"
)

// LocalPublisher stands in for the producer when no brokers are configured:
// records the outbox worker publishes are dispatched in-process.
type LocalPublisher struct {
	Handler *CloudEventHandler
	Logger  *slog.Logger
}

func (p *LocalPublisher) Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error {
	if p.Logger != nil {
		p.Logger.DebugContext(ctx, "event published locally", "topic", topic, "key", key)
	}
	if p.Handler == nil {
		return nil
	}
	if err := p.Handler.Dispatch(ctx, payload); err != nil && p.Logger != nil {
		p.Logger.WarnContext(ctx, "local event dispatch failed", "topic", topic, "error", err)
	}
	return nil
}
