package outbox

import (
	"context"
	"errors"
	"time"

	"yatube/internal/core/outbox"

	"github.com/gofrs/uuid"
)

// OutboxRepository reads and settles recorded post events.
type OutboxRepository interface {
	GetPending(ctx context.Context, limit int) ([]*outbox.Event, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
}

// EventPublisher sends post events to the broker.
type EventPublisher interface {
	PublishPostEvent(ctx context.Context, msg PostEventMessage) error
}

// EventSource yields post events consumed from the broker.
type EventSource interface {
	NextPostEvent(ctx context.Context) (PostEventMessage, error)
}

// ErrMalformedEvent marks a consumed message that could not be decoded.
var ErrMalformedEvent = errors.New("malformed post event")

// PostEventMessage is the wire form of an outbox event.
type PostEventMessage struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	PostID     uint      `json:"post_id"`
	AuthorID   string    `json:"author_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewPostEventMessage(ev *outbox.Event) PostEventMessage {
	return PostEventMessage{
		ID:         ev.ID.String(),
		Type:       ev.Type,
		PostID:     ev.PostID,
		AuthorID:   ev.AuthorID.String(),
		OccurredAt: ev.CreatedAt,
	}
}
