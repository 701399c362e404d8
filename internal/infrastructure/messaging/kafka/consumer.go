package kafka

import (
	"context"
	gerrors "errors"
	"io"
	"sync"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/stayscope/listing-intelligence/internal/config"
	"github.com/stayscope/listing-intelligence/internal/domain/listing"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
)

// Handler consumes one decoded domain event.  It must not block for long;
// long work belongs behind the recalculation controller's own goroutines.
type Handler interface {
	HandleEvent(ev listing.Event)
}

// Consumer runs one reader goroutine per subscribed topic and feeds decoded
// events to the handler.  Undecodable messages are logged and skipped, never
// retried: replaying garbage does not make it parse.
type Consumer struct {
	readers []*kafkago.Reader
	handler Handler
	logger  logging.Logger
	wg      sync.WaitGroup
}

// NewConsumer subscribes to every known event topic in one consumer group.
func NewConsumer(cfg config.KafkaConfig, handler Handler, logger logging.Logger) *Consumer {
	startOffset := kafkago.LastOffset
	if cfg.AutoOffsetReset == "earliest" {
		startOffset = kafkago.FirstOffset
	}

	readers := make([]*kafkago.Reader, 0, len(listing.AllEventKinds()))
	for _, kind := range listing.AllEventKinds() {
		readers = append(readers, kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        cfg.Brokers,
			GroupID:        cfg.GroupID,
			Topic:          string(kind),
			StartOffset:    startOffset,
			SessionTimeout: cfg.SessionTimeout,
			CommitInterval: cfg.CommitInterval,
		}))
	}
	return &Consumer{
		readers: readers,
		handler: handler,
		logger:  logger.Named("kafka_consumer"),
	}
}

// Start launches the reader loops.  They run until ctx is canceled.
func (c *Consumer) Start(ctx context.Context) {
	for _, r := range c.readers {
		c.wg.Add(1)
		go func(r *kafkago.Reader) {
			defer c.wg.Done()
			c.consume(ctx, r)
		}(r)
	}
}

func (c *Consumer) consume(ctx context.Context, r *kafkago.Reader) {
	topic := r.Config().Topic
	for {
		msg, err := r.ReadMessage(ctx)
		if err != nil {
			if gerrors.Is(err, context.Canceled) || gerrors.Is(err, io.EOF) {
				return
			}
			c.logger.Error("read message failed",
				logging.String("topic", topic), logging.Err(err))
			continue
		}

		ev, err := Decode(msg.Value)
		if err != nil {
			c.logger.Warn("undecodable message skipped",
				logging.String("topic", topic),
				logging.Int64("offset", msg.Offset),
				logging.Err(err))
			continue
		}
		c.handler.HandleEvent(ev)
	}
}

// Close stops every reader and waits for the loops to drain.
func (c *Consumer) Close() error {
	var first error
	for _, r := range c.readers {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	c.wg.Wait()
	return first
}
