package workers

import (
	"context"
	"time"

	"yatube/internal/core/outbox"
	outboxPort "yatube/internal/ports/outbox"

	"go.uber.org/zap"
)

// OutboxWorker publishes pending outbox events and marks them done.
type OutboxWorker struct {
	OutboxRepo   outboxPort.OutboxRepository
	Publisher    outboxPort.EventPublisher
	BatchSize    int
	PollInterval time.Duration
	Logger       *zap.Logger
}

func NewOutboxWorker(
	outboxRepo outboxPort.OutboxRepository,
	publisher outboxPort.EventPublisher,
	batchSize int,
	pollInterval time.Duration,
	logger *zap.Logger,
) *OutboxWorker {
	if batchSize <= 0 {
		batchSize = 100
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &OutboxWorker{
		OutboxRepo:   outboxRepo,
		Publisher:    publisher,
		BatchSize:    batchSize,
		PollInterval: pollInterval,
		Logger:       logger,
	}
}

// Run polls until ctx is cancelled.
func (w *OutboxWorker) Run(ctx context.Context) {
	w.Logger.Info("Outbox worker started", zap.Int("batchSize", w.BatchSize), zap.Duration("pollInterval", w.PollInterval))
	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	for {
		w.ProcessPending(ctx)
		select {
		case <-ctx.Done():
			w.Logger.Info("Outbox worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// ProcessPending publishes one batch and returns how many events were
// settled. It stops at the first publish failure so later events of the same
// post are not sent ahead of it; the rest stay pending for the next poll.
func (w *OutboxWorker) ProcessPending(ctx context.Context) int {
	pending, err := w.OutboxRepo.GetPending(ctx, w.BatchSize)
	if err != nil {
		if ctx.Err() == nil {
			w.Logger.Error("Error fetching pending outbox events", zap.Error(err))
		}
		return 0
	}

	done := 0
	for _, ev := range pending {
		if !w.process(ctx, ev) {
			break
		}
		done++
	}
	if done > 0 {
		w.Logger.Debug("Outbox batch published", zap.Int("count", done))
	}
	return done
}

func (w *OutboxWorker) process(ctx context.Context, ev *outbox.Event) bool {
	if err := w.Publisher.PublishPostEvent(ctx, outboxPort.NewPostEventMessage(ev)); err != nil {
		w.Logger.Warn("Could not publish outbox event",
			zap.String("id", ev.ID.String()),
			zap.String("type", ev.Type),
			zap.Uint("postID", ev.PostID),
			zap.Error(err))
		return false
	}

	// Already published: a failed MarkDone means a duplicate on the next poll,
	// which consumers tolerate since invalidation is idempotent.
	if err := w.OutboxRepo.MarkDone(ctx, ev.ID); err != nil {
		w.Logger.Warn("Could not mark outbox event done", zap.String("id", ev.ID.String()), zap.Error(err))
	}
	return true
}
