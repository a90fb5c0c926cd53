package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/frameart/storefront/internal/config"
	"github.com/frameart/storefront/internal/logger"
	"github.com/frameart/storefront/internal/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

func ProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = 3
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.MaxMessageBytes = 1000000

	return cfg
}

// NewPublisher returns a kafka publisher, or a no-op publisher when no
// brokers are configured.
func NewPublisher(cfg *config.Kafka) (Publisher, error) {
	if len(cfg.Brokers) == 0 {
		slog.Info("No Kafka brokers configured, domain events are disabled")

		return NewNopPublisher(), nil
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, ProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	slog.Info("✅ Kafka publisher initialized", slog.Any("brokers", cfg.Brokers), slog.String("topic", cfg.Topic))

	return NewKafkaPublisher(producer, cfg.Topic), nil
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// Publish keys messages by subject so every event for one artwork lands on
// the same partition. The trace context travels in the message headers.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	ctx, span := otel.Tracer("storefront/events").Start(ctx, "kafka.publish "+event.Type,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", p.topic),
			attribute.String("event.type", event.Type),
			attribute.String("event.id", event.ID),
		),
	)
	defer span.End()

	payload, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to marshal event")
		metrics.EventsPublished.WithLabelValues(event.Type, metrics.OutcomeFailure).Inc()

		return fmt.Errorf("failed to marshal event: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("event_id"), Value: []byte(event.ID)},
	}

	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(key), Value: []byte(value)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.StringEncoder(event.Subject),
		Value:   sarama.ByteEncoder(payload),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send message")
		metrics.EventsPublished.WithLabelValues(event.Type, metrics.OutcomeFailure).Inc()

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	metrics.EventsPublished.WithLabelValues(event.Type, metrics.OutcomeSuccess).Inc()

	logger.FromContext(ctx).Debug("Event published",
		slog.String("event_id", event.ID),
		slog.String("event_type", event.Type),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset),
	)

	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}

	return nil
}
