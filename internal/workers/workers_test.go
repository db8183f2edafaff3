package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"yatube/internal/core/outbox"
	outboxPort "yatube/internal/ports/outbox"
	postPort "yatube/internal/ports/post"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type memOutbox struct {
	mu     sync.Mutex
	events []*outbox.Event
}

func (m *memOutbox) GetPending(_ context.Context, limit int) ([]*outbox.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*outbox.Event
	for _, ev := range m.events {
		if ev.Status == outbox.StatusPending && len(out) < limit {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *memOutbox) MarkDone(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ev := range m.events {
		if ev.ID == id {
			ev.Status = outbox.StatusDone
		}
	}
	return nil
}

func (m *memOutbox) pending() int {
	n, _ := m.GetPending(context.Background(), 1<<20)
	return len(n)
}

type recordingPublisher struct {
	mu      sync.Mutex
	sent    []outboxPort.PostEventMessage
	failFor uint // post id whose publish fails
}

func (p *recordingPublisher) PublishPostEvent(_ context.Context, msg outboxPort.PostEventMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if msg.PostID == p.failFor {
		return errors.New("broker unavailable")
	}
	p.sent = append(p.sent, msg)
	return nil
}

func newEvents(postIDs ...uint) *memOutbox {
	author := uuid.Must(uuid.NewV4())
	m := &memOutbox{}
	for _, id := range postIDs {
		m.events = append(m.events, outbox.NewEvent(outbox.TypePostCreated, id, author))
	}
	return m
}

func TestOutboxWorker_PublishesOnce(t *testing.T) {
	repo := newEvents(1, 2, 3)
	pub := &recordingPublisher{}
	w := NewOutboxWorker(repo, pub, 2, time.Millisecond, zap.NewNop())
	ctx := context.Background()

	assert.Equal(t, 2, w.ProcessPending(ctx))
	assert.Equal(t, 1, w.ProcessPending(ctx))
	assert.Equal(t, 0, w.ProcessPending(ctx))

	require.Len(t, pub.sent, 3)
	assert.Equal(t, []uint{1, 2, 3}, []uint{pub.sent[0].PostID, pub.sent[1].PostID, pub.sent[2].PostID})
	assert.Zero(t, repo.pending())
}

func TestOutboxWorker_FailureLeavesPending(t *testing.T) {
	repo := newEvents(1, 2, 3)
	pub := &recordingPublisher{failFor: 2}
	core, logs := observer.New(zap.WarnLevel)
	w := NewOutboxWorker(repo, pub, 10, time.Millisecond, zap.New(core))

	assert.Equal(t, 1, w.ProcessPending(context.Background()))
	assert.Equal(t, 2, repo.pending())
	assert.Equal(t, 1, logs.FilterMessage("Could not publish outbox event").Len())

	pub.failFor = 0
	assert.Equal(t, 2, w.ProcessPending(context.Background()))
	assert.Zero(t, repo.pending())
}

func TestOutboxWorker_RunStopsOnCancel(t *testing.T) {
	repo := newEvents(1)
	pub := &recordingPublisher{}
	w := NewOutboxWorker(repo, pub, 10, 5*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return repo.pending() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

type queuedSource struct {
	msgs chan outboxPort.PostEventMessage
	errs chan error
}

func (s *queuedSource) NextPostEvent(ctx context.Context) (outboxPort.PostEventMessage, error) {
	select {
	case msg := <-s.msgs:
		return msg, nil
	case err := <-s.errs:
		return outboxPort.PostEventMessage{}, err
	case <-ctx.Done():
		return outboxPort.PostEventMessage{}, ctx.Err()
	}
}

type countingCache struct {
	mu          sync.Mutex
	invalidated int
}

func (c *countingCache) Get(context.Context, int) (*postPort.PageDTO, uint64, bool, error) {
	return nil, 0, false, nil
}
func (c *countingCache) Set(context.Context, int, uint64, *postPort.PageDTO) error { return nil }
func (c *countingCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	return nil
}

func (c *countingCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invalidated
}

func TestInvalidationWorker(t *testing.T) {
	source := &queuedSource{msgs: make(chan outboxPort.PostEventMessage, 4), errs: make(chan error, 4)}
	cache := &countingCache{}
	core, logs := observer.New(zap.WarnLevel)
	w := NewInvalidationWorker(source, cache, zap.New(core))
	w.Backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	source.msgs <- outboxPort.PostEventMessage{Type: outbox.TypePostCreated, PostID: 1}
	source.errs <- outboxPort.ErrMalformedEvent
	source.errs <- errors.New("connection reset")
	source.msgs <- outboxPort.PostEventMessage{Type: outbox.TypePostDeleted, PostID: 1}

	assert.Eventually(t, func() bool {
		return cache.count() == 2 &&
			logs.FilterMessage("Skipping malformed post event").Len() == 1 &&
			logs.FilterMessage("Post event read error, backing off").Len() == 1
	}, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
