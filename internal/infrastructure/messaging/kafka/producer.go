package kafka

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/stayscope/listing-intelligence/internal/config"
	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/stayscope/listing-intelligence/pkg/errors"
)

// Producer publishes listing domain events.  Used by the CLI to inject
// events for testing and backfills; the service itself is mostly a consumer.
type Producer struct {
	writer *kafkago.Writer
	logger logging.Logger
}

// NewProducer builds a producer over the configured brokers.  The topic is
// chosen per message from the event kind.
func NewProducer(cfg config.KafkaConfig, logger logging.Logger) *Producer {
	return &Producer{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Brokers...),
			Balancer:     &kafkago.Hash{},
			MaxAttempts:  cfg.ProducerRetries,
			BatchSize:    cfg.BatchSize,
			RequiredAcks: kafkago.RequireOne,
		},
		logger: logger.Named("kafka_producer"),
	}
}

// Publish sends one event to the topic named after its kind, keyed by
// listing id so per-listing ordering is preserved.
func (p *Producer) Publish(ctx context.Context, ev listing.Event) error {
	if !ev.Kind.Known() {
		return errors.New(errors.ErrCodeValidation, "unknown event kind").
			WithDetail(string(ev.Kind))
	}
	value, err := Encode(ev)
	if err != nil {
		return err
	}
	msg := kafkago.Message{
		Topic: string(ev.Kind),
		Key:   []byte(ev.ListingID.String()),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, errors.ErrCodeMessageQueueError, "publish event")
	}
	p.logger.Debug("event published",
		logging.String("kind", string(ev.Kind)),
		logging.String("listing_id", ev.ListingID.String()))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
