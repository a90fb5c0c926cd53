// Package events publishes storefront domain events.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeArtworkPublished  = "artwork.published"
	TypeArtworkUpdated    = "artwork.updated"
	TypeArtworkDeleted    = "artwork.deleted"
	TypePurchaseCompleted = "purchase.completed"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Subject    string    `json:"subject"`
	UserID     string    `json:"userId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data,omitempty"`
}

func New(eventType, subject, userID string, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Subject:    subject,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher delivers events. Callers treat delivery as best-effort.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher drops every event. It is used when no brokers are configured.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, Event) error { return nil }

func (nopPublisher) Close() error { return nil }
