package messaging

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Channel names
const (
	ChannelNotifications = "notifications"
)

// Event types
const (
	EventNotificationCreated = "notification.created"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Message is the envelope published on every channel
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage marshals payload into an envelope of the given type
func NewMessage(eventType string, payload interface{}) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: eventType, Payload: raw}, nil
}

// NopBroker drops published messages; used when no broker is configured
type NopBroker struct{}

func (NopBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	log.Debug().Str("channel", channel).Msg("no broker configured, message dropped")
	return nil
}

func (NopBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	ch := make(chan []byte)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (NopBroker) Close() error { return nil }
