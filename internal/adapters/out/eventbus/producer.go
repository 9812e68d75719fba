// Package eventbus publishes fulfillment events to Kafka so the customer app can follow
// an order through acceptance, ready and collection. Pickup tokens are never published.
package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"hawker/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "eventbus/producer"

// messageWriter is the part of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// FulfillmentMessage is the JSON value of every message. The pickup token never
// leaves the service this way.
type FulfillmentMessage struct {
	Type               string     `json:"type"`
	OrderID            string     `json:"orderId"`
	StallID            string     `json:"stallId"`
	FulfillmentStatus  string     `json:"fulfillmentStatus"`
	EstimatedReadyTime *time.Time `json:"estimatedReadyTime,omitempty"`
	OccurredAt         time.Time  `json:"occurredAt"`
}

// Producer implements ports.EventPublisher. Messages are keyed by order id so one
// order's events stay ordered within a partition.
type Producer struct {
	writer messageWriter
	topic  string
	tracer trace.Tracer
}

type ProducerOption func(*Producer)

// WithTracerProvider makes the producer start its spans on tp instead of the global
// provider.
func WithTracerProvider(tp trace.TracerProvider) ProducerOption {
	return func(p *Producer) {
		p.tracer = tp.Tracer(tracerName)
	}
}

func NewProducer(brokers []string, topic string, opts ...ProducerOption) *Producer {
	return NewProducerWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           100 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
	}, topic, opts...)
}

func NewProducerWithWriter(writer messageWriter, topic string, opts ...ProducerOption) *Producer {
	p := &Producer{writer: writer, topic: topic, tracer: otel.Tracer(tracerName)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Producer) Publish(ctx context.Context, events ...order.Event) error {
	if len(events) == 0 {
		return nil
	}

	ctx, span := p.tracer.Start(ctx, "send "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("send"),
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(p.topic),
			attribute.Int("messaging.batch.message_count", len(events)),
			attribute.String("order.id", events[0].OrderID.String()),
		),
	)
	defer span.End()

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msg, err := toMessage(event)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		otel.GetTextMapPropagator().Inject(ctx, NewMessageCarrier(&msg))
		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func toMessage(event order.Event) (kafka.Message, error) {
	value, err := json.Marshal(FulfillmentMessage{
		Type:               string(event.Type),
		OrderID:            event.OrderID.String(),
		StallID:            event.StallID.String(),
		FulfillmentStatus:  event.Status.String(),
		EstimatedReadyTime: event.EstimatedReadyTime,
		OccurredAt:         event.OccurredAt.UTC(),
	})
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}, nil
}
