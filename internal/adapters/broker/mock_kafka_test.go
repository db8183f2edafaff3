package broker

import (
	"context"
	"errors"
	"sync"

	"github.com/segmentio/kafka-go"
)

// MockKafka records written messages and serves queued ones to readers.
// Reads block until a message is queued or ctx ends.
type MockKafka struct {
	mu      sync.Mutex
	Written []kafka.Message
	queue   chan kafka.Message
	// FailWrites makes WriteMessages return an error.
	FailWrites bool
}

func NewMockKafka() *MockKafka {
	return &MockKafka{queue: make(chan kafka.Message, 64)}
}

func (m *MockKafka) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errors.New("mock kafka write failed")
	}
	m.Written = append(m.Written, msgs...)
	return nil
}

// Queue makes msg available to ReadMessage.
func (m *MockKafka) Queue(msg kafka.Message) {
	m.queue <- msg
}

func (m *MockKafka) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case msg := <-m.queue:
		return msg, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (m *MockKafka) Messages() []kafka.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]kafka.Message(nil), m.Written...)
}

func (m *MockKafka) Close() error { return nil }
