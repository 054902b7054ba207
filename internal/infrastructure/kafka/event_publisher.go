package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"

	"github.com/wms-platform/capacity-service/internal/domain"
	"github.com/wms-platform/capacity-service/internal/pkg/logging"
	"github.com/wms-platform/capacity-service/internal/pkg/metrics"
)

// Config holds Kafka producer configuration
type Config struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
	RequiredAcks int
}

// DefaultConfig returns producer defaults for the capacity events topic
func DefaultConfig(brokers []string) *Config {
	return &Config{
		Brokers:      brokers,
		Topic:        "wms.capacity.events",
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: -1,
	}
}

// eventEnvelope is the CloudEvents-shaped wire format for domain events
type eventEnvelope struct {
	SpecVersion     string             `json:"specversion"`
	ID              string             `json:"id"`
	Source          string             `json:"source"`
	Type            string             `json:"type"`
	Subject         string             `json:"subject"`
	Time            time.Time          `json:"time"`
	DataContentType string             `json:"datacontenttype"`
	Data            domain.DomainEvent `json:"data"`
}

// EventPublisher implements domain.EventPublisher on a Kafka topic. Writes
// go through a circuit breaker so a broker outage degrades to fast publish
// failures instead of stalling request handlers on write timeouts.
type EventPublisher struct {
	writer  *kafka.Writer
	breaker *gobreaker.CircuitBreaker
	topic   string
	source  string
	metrics *metrics.Metrics
	logger  *logging.Logger
}

// NewEventPublisher creates a new EventPublisher
func NewEventPublisher(config *Config, m *metrics.Metrics, logger *logging.Logger) *EventPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: config.BatchTimeout,
		RequiredAcks: kafka.RequiredAcks(config.RequiredAcks),
		Async:        false,
	}

	settings := gobreaker.Settings{
		Name:        "kafka-producer",
		MaxRequests: 5,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &EventPublisher{
		writer:  writer,
		breaker: gobreaker.NewCircuitBreaker(settings),
		topic:   config.Topic,
		source:  "capacity-service",
		metrics: m,
		logger:  logger,
	}
}

// Publish publishes a single domain event
func (p *EventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	msg, err := p.toMessage(event)
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = p.breaker.Execute(func() (interface{}, error) {
		return nil, p.writer.WriteMessages(ctx, msg)
	})
	if p.metrics != nil {
		p.metrics.RecordKafkaPublish(p.topic, event.EventType(), time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.EventType(), err)
	}
	return nil
}

// PublishAll publishes a batch of domain events in one write
func (p *EventPublisher) PublishAll(ctx context.Context, events []domain.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msg, err := p.toMessage(event)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	start := time.Now()
	_, err := p.breaker.Execute(func() (interface{}, error) {
		return nil, p.writer.WriteMessages(ctx, messages...)
	})
	if p.metrics != nil {
		for _, event := range events {
			p.metrics.RecordKafkaPublish(p.topic, event.EventType(), time.Since(start), err)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to publish batch of %d events: %w", len(events), err)
	}
	return nil
}

// Close closes the underlying writer
func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

func (p *EventPublisher) toMessage(event domain.DomainEvent) (kafka.Message, error) {
	envelope := eventEnvelope{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          p.source,
		Type:            event.EventType(),
		Subject:         subjectOf(event),
		Time:            event.OccurredAt(),
		DataContentType: "application/json",
		Data:            event,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event %s: %w", envelope.Type, err)
	}

	return kafka.Message{
		Key:   []byte(envelope.Subject),
		Value: data,
		Headers: []kafka.Header{
			{Key: "ce-specversion", Value: []byte(envelope.SpecVersion)},
			{Key: "ce-type", Value: []byte(envelope.Type)},
			{Key: "ce-source", Value: []byte(envelope.Source)},
			{Key: "ce-id", Value: []byte(envelope.ID)},
			{Key: "ce-time", Value: []byte(envelope.Time.Format(time.RFC3339))},
			{Key: "content-type", Value: []byte(envelope.DataContentType)},
		},
		Time: envelope.Time,
	}, nil
}

// subjectOf keys messages by warehouse so all events for one warehouse land
// on the same partition in order
func subjectOf(event domain.DomainEvent) string {
	switch e := event.(type) {
	case *domain.ContainerRegisteredEvent:
		return e.WarehouseID
	case *domain.CapacityReservedEvent:
		return e.WarehouseID
	case *domain.CapacityReleasedEvent:
		return e.WarehouseID
	case *domain.InventoryMovedEvent:
		return e.WarehouseID
	case *domain.InboundStartedEvent:
		return e.WarehouseID
	case *domain.InboundClosedEvent:
		return e.WarehouseID
	case *domain.OutboundStartedEvent:
		return e.WarehouseID
	case *domain.OutboundClosedEvent:
		return e.WarehouseID
	default:
		return event.EventType()
	}
}
