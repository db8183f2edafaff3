package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	outboxPort "yatube/internal/ports/outbox"

	"github.com/segmentio/kafka-go"
)

// Writer is the part of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Reader is the part of kafka.Reader the consumer needs.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type Config struct {
	Brokers      []string
	Topic        string
	GroupID      string
	WriteTimeout time.Duration
}

func NewWriter(cfg Config) *kafka.Writer {
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}
}

// NewReader joins cfg.GroupID. Every instance needs its own group to see
// every event.
func NewReader(cfg Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})
}

// EventPublisher writes post events as JSON keyed by post id, so events of one
// post keep their order within a partition.
type EventPublisher struct {
	writer Writer
}

func NewEventPublisher(w Writer) *EventPublisher {
	return &EventPublisher{writer: w}
}

func (p *EventPublisher) PublishPostEvent(ctx context.Context, msg outboxPort.PostEventMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(msg.PostID), 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(msg.Type)},
		},
	})
}

func (p *EventPublisher) Close() error { return p.writer.Close() }

type EventConsumer struct {
	reader Reader
}

func NewEventConsumer(r Reader) *EventConsumer {
	return &EventConsumer{reader: r}
}

// NextPostEvent blocks for the next message. Undecodable payloads come back
// wrapped in outbox.ErrMalformedEvent.
func (c *EventConsumer) NextPostEvent(ctx context.Context) (outboxPort.PostEventMessage, error) {
	var msg outboxPort.PostEventMessage
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return msg, err
	}
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		return msg, fmt.Errorf("%w at offset %d: %v", outboxPort.ErrMalformedEvent, m.Offset, err)
	}
	if msg.Type == "" {
		return msg, fmt.Errorf("%w at offset %d: missing type", outboxPort.ErrMalformedEvent, m.Offset)
	}
	return msg, nil
}

func (c *EventConsumer) Close() error { return c.reader.Close() }
