package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Simplici0/windowquote/internal/config"
	"github.com/Simplici0/windowquote/internal/logger"
	"github.com/Simplici0/windowquote/internal/quotes"
)

// Publisher announces saved quotations.
type Publisher interface {
	PublishQuotationSaved(ctx context.Context, q quotes.Quote) error
	Close() error
}

type Producer struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
	now      func() time.Time
}

// NewProducer connects a synchronous producer to the configured brokers.
func NewProducer(cfg *config.KafkaConfig, log *logger.Logger) (*Producer, error) {
	sc := sarama.NewConfig()
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = 3
	sc.Producer.Return.Successes = true
	sc.ClientID = "windowquote"

	p, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	log.WithField("brokers", cfg.Brokers).Info("Kafka producer connected")
	return &Producer{producer: p, topic: cfg.QuotationsTopic, log: log, now: time.Now}, nil
}

func (p *Producer) PublishQuotationSaved(ctx context.Context, q quotes.Quote) error {
	return p.publish(ctx, q.Reference, Event{
		ID:         uuid.New(),
		Type:       TypeQuotationSaved,
		OccurredAt: p.now().UTC(),
		Data:       NewQuotationSaved(q),
	})
}

func (p *Producer) publish(ctx context.Context, key string, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", ev.Type, err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(ev.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("send event %s: %w", ev.Type, err)
	}

	p.log.WithFields(logrus.Fields{
		"event_id":  ev.ID,
		"type":      ev.Type,
		"topic":     p.topic,
		"partition": partition,
		"offset":    offset,
	}).Debug("Event published")
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}

// Nop drops every event. It stands in when no brokers are configured.
type Nop struct{}

func (Nop) PublishQuotationSaved(context.Context, quotes.Quote) error { return nil }
func (Nop) Close() error                                              { return nil }
