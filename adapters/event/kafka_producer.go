package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/domain/contact"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const (
	TopicContactEvents = "contact.events"

	ContactEventTypeSubmitted = "contact.submitted"
)

var (
	ErrNoBrokers        = errors.New("config Kafka brokers not found")
	ErrUnknownEventType = errors.New("unknown contact event type")
)

type ContactEventPayload struct {
	EventType  string             `json:"event_type"`
	Submission contact.Submission `json:"submission"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	ContactEventsWriter messageWriter
	logger              logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}

	// writer 'contact.events'
	contactWriter := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        TopicContactEvents,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
	}

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", brokers))

	return &KafkaProducerClient{
		ContactEventsWriter: contactWriter,
		logger:              log,
	}, nil
}

// PublishContactSubmitted keys the message by submission id so redeliveries
// of one submission land on the same partition.
func (c *KafkaProducerClient) PublishContactSubmitted(ctx context.Context, s *contact.Submission) error {
	value, err := json.Marshal(ContactEventPayload{
		EventType:  ContactEventTypeSubmitted,
		Submission: *s,
	})
	if err != nil {
		return fmt.Errorf("marshal contact event failed: %w", err)
	}

	err = c.ContactEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(s.ID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("write contact event failed: %w", err)
	}
	return nil
}

// DecodeContactEvent parses a message value from TopicContactEvents.
func DecodeContactEvent(value []byte) (*ContactEventPayload, error) {
	var payload ContactEventPayload
	if err := json.Unmarshal(value, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal contact event failed: %w", err)
	}
	if payload.EventType != ContactEventTypeSubmitted {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, payload.EventType)
	}
	if payload.Submission.ID == "" {
		return nil, fmt.Errorf("contact event has no submission id")
	}
	return &payload, nil
}

func (c *KafkaProducerClient) Close() {
	if c.ContactEventsWriter != nil {
		if err := c.ContactEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close Kafka writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producers")
}
