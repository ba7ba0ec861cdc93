// core/events.go
package core

import (
	"context"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventType string

const (
	EventCreated EventType = "student.created"
	EventUpdated EventType = "student.updated"
	EventDeleted EventType = "student.deleted"
)

// StudentEvent announces a committed change to the collection.
type StudentEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	Type      EventType `json:"type"`
	StudentID int       `json:"student_id"`
	Name      string    `json:"name"`
	At        time.Time `json:"at"`
	RequestID string    `json:"request_id,omitempty"`
}

type EventPublisher interface {
	Publish(ctx context.Context, ev StudentEvent) error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, StudentEvent) error { return nil }

// publish never alters the response; failures are only logged.
func (d *Dispatcher) publish(ctx context.Context, t EventType, id int, name string) {
	ev := StudentEvent{
		EventID:   uuid.New(),
		Type:      t,
		StudentID: id,
		Name:      name,
		At:        time.Now().UTC(),
		RequestID: chimd.GetReqID(ctx),
	}
	if err := d.events.Publish(ctx, ev); err != nil {
		d.log.Warn("student event publish failed",
			zap.String("type", string(t)),
			zap.Int("studentId", id),
			zap.String("eventId", ev.EventID.String()),
			zap.Error(err),
		)
	}
}
