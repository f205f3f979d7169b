package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"barcode-inventory/models"
)

// Publisher emits inventory events to downstream consumers.
type Publisher interface {
	PublishStockEvent(ctx context.Context, event *models.StockEvent) error
	Close() error
}

// NewPublisher returns a Kafka producer, or a no-op publisher when no brokers
// are configured.
func NewPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		log.Println("Kafka brokers not configured, inventory events disabled")
		return noopPublisher{}
	}
	return NewKafkaProducer(brokers, topic)
}

type kafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Snappy,
	}

	return &kafkaProducer{writer: writer}
}

func (p *kafkaProducer) PublishStockEvent(ctx context.Context, event *models.StockEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal stock event: %w", err)
	}

	// keyed by barcode so events for one product stay ordered
	message := kafka.Message{
		Key:   []byte(event.Barcode),
		Value: eventJSON,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write stock event to kafka: %w", err)
	}

	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

func (noopPublisher) PublishStockEvent(context.Context, *models.StockEvent) error { return nil }

func (noopPublisher) Close() error { return nil }
