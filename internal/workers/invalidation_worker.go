package workers

import (
	"context"
	"errors"
	"time"

	outboxPort "yatube/internal/ports/outbox"
	postPort "yatube/internal/ports/post"

	"go.uber.org/zap"
)

// InvalidationWorker purges the local listing cache on every consumed post
// event, so other instances' writes become visible before the TTL runs out.
type InvalidationWorker struct {
	Source outboxPort.EventSource
	Cache  postPort.ListingCache
	Logger *zap.Logger
	// Backoff after a read error.
	Backoff time.Duration
}

func NewInvalidationWorker(source outboxPort.EventSource, cache postPort.ListingCache, logger *zap.Logger) *InvalidationWorker {
	return &InvalidationWorker{
		Source:  source,
		Cache:   cache,
		Logger:  logger,
		Backoff: time.Second,
	}
}

func (w *InvalidationWorker) Run(ctx context.Context) {
	w.Logger.Info("Invalidation worker started")
	for {
		msg, err := w.Source.NextPostEvent(ctx)
		switch {
		case ctx.Err() != nil:
			w.Logger.Info("Invalidation worker stopped")
			return
		case errors.Is(err, outboxPort.ErrMalformedEvent):
			w.Logger.Warn("Skipping malformed post event", zap.Error(err))
			continue
		case err != nil:
			w.Logger.Error("Post event read error, backing off", zap.Error(err))
			if !waitWithContext(ctx, w.Backoff) {
				w.Logger.Info("Invalidation worker stopped")
				return
			}
			continue
		}

		if err := w.Cache.Invalidate(ctx); err != nil {
			w.Logger.Warn("Listing cache invalidation failed", zap.Error(err))
			continue
		}
		w.Logger.Debug("Listing cache invalidated", zap.String("type", msg.Type), zap.Uint("postID", msg.PostID))
	}
}

// waitWithContext waits for d or until ctx is done. It reports whether the
// full wait elapsed.
func waitWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
