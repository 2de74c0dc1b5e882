package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Handler processes one decoded event. Returning an error stops consumption.
type Handler func(ctx context.Context, event BookingEvent) error

type Consumer struct {
	reader *kafka.Reader
	log    *zap.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: log.With(zap.String("component", "kafka_consumer"), zap.String("topic", topic)),
	}
}

// Consume blocks until ctx is cancelled or handler fails. Undecodable
// messages are logged and skipped.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}

		event, err := Decode(msg.Value)
		if err != nil {
			c.log.Warn("Skipping malformed event",
				zap.Error(err),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
			)
			continue
		}

		if err := handler(ctx, event); err != nil {
			return fmt.Errorf("handle %s event: %w", event.Type, err)
		}
	}
}

func Decode(data []byte) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("decode booking event: %w", err)
	}
	if event.Type == "" || event.BookingID == "" {
		return BookingEvent{}, errors.New("decode booking event: missing type or booking_id")
	}
	return event, nil
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}
