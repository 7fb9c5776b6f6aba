package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Publisher is what use cases depend on. Publishing happens after commit
// and callers only log its failure.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

type Handler func(ctx context.Context, msg *message.Message) error

// Bus is an in-process pub/sub on top of a watermill go channel.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

var _ Publisher = (*Bus)(nil)

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 256},
			watermill.NewSlogLogger(logger),
		),
		logger: logger,
	}
}

func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		msg.Metadata.Set("request_id", id)
	}
	return b.pubsub.Publish(topic, msg)
}

// Subscribe starts a goroutine feeding topic messages to h until ctx ends
// or the bus closes. Messages are acked even when h fails.
func (b *Bus) Subscribe(ctx context.Context, topic string, h Handler) error {
	ch, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range ch {
			if err := h(msg.Context(), msg); err != nil {
				b.logger.Warn("event handler failed",
					"topic", topic,
					"message_id", msg.UUID,
					"request_id", msg.Metadata.Get("request_id"),
					"error", err,
				)
			}
			msg.Ack()
		}
	}()
	return nil
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}

type requestIDKey struct{}

// WithRequestID tags ctx so published messages carry the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// Decode unmarshals a message payload into T.
func Decode[T any](msg *message.Message) (T, error) {
	var v T
	err := json.Unmarshal(msg.Payload, &v)
	return v, err
}
