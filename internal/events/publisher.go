package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/config"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/logging"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/models"
)

// EventType represents the type of order event.
type EventType string

const (
	EventTypeOrderAssembled EventType = "burger.assembled"
)

// OrderEvent represents an order-related event.
type OrderEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	OrderID   int             `json:"order_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes order events to Kafka.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger logrus.FieldLogger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.BrokerList()...),
		Topic:        cfg.OrdersTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
	return newKafkaPublisher(writer, cfg.OrdersTopic, logger)
}

func newKafkaPublisher(writer messageWriter, topic string, logger logrus.FieldLogger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		topic:  topic,
		logger: logging.Component(logger, "event-publisher"),
		now:    time.Now,
	}
}

// PublishOrderAssembled publishes an order assembled event.
func (p *KafkaPublisher) PublishOrderAssembled(ctx context.Context, order *models.Order) error {
	p.logger.WithField("order_id", order.ID).Debug("Publishing order assembled event")

	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	event := &OrderEvent{
		ID:        generateEventID(),
		Type:      EventTypeOrderAssembled,
		OrderID:   order.ID,
		Data:      data,
		Timestamp: p.now(),
	}
	return p.publish(ctx, event)
}

func (p *KafkaPublisher) publish(ctx context.Context, event *OrderEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.Itoa(event.OrderID)),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithFields(logging.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
			"order_id":   event.OrderID,
			"error":      err.Error(),
		}).Debug("Failed to publish event")
		return err
	}

	p.logger.WithFields(logging.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"order_id":   event.OrderID,
		"topic":      p.topic,
	}).Info("Event published")
	return nil
}

// Close closes the Kafka writer.
func (p *KafkaPublisher) Close() error {
	p.logger.Debug("Closing Kafka publisher")
	return p.writer.Close()
}

func generateEventID() string {
	return "evt_" + uuid.NewString()
}

// NoopPublisher drops every event. Used when order events are disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderAssembled(ctx context.Context, order *models.Order) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
