package middleware

import (
	"context"

	"roomrate/internal/app/commands"
	"roomrate/internal/app/outbox"
)

// OutboxFlush flushes events buffered by the handler once it succeeds. It sits
// inside Transaction so the records land in the same unit of work.
func OutboxFlush(box outbox.Outbox) CommandMiddleware {
	if box == nil {
		panic("middleware: outbox required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			res, err := nextFn(ctx, cmd)
			if err != nil {
				box.Discard(ctx)
				return nil, err
			}
			if err := box.Flush(ctx); err != nil {
				return nil, err
			}
			return res, nil
		})
	}
}
