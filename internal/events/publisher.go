// Package events provides event publishing functionality.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/hasipfaruk/Stock-Price-Extractor/internal/observability/metrics"
	"github.com/hasipfaruk/Stock-Price-Extractor/internal/schema"
)

// Publisher publishes quote events to separate Kafka topics.
type Publisher struct {
	writerQuotes   *kafka.Writer
	writerFailures *kafka.Writer
	principal      string
	topicQuotes    string
	topicFailures  string
	enabled        bool
	metrics        *metrics.Metrics
	validator      *schema.Validator
}

// Config holds Kafka publisher configuration.
type Config struct {
	Brokers       []string
	TopicQuotes   string
	TopicFailures string
	Principal     string
	Enabled       bool
}

// New creates a new Kafka event publisher with separate topics for extracted
// quotes and extraction failures.
func New(cfg *Config) *Publisher {
	m := metrics.DefaultMetrics
	v := schema.New()

	// Handle nil config case
	if cfg == nil {
		log.Info().Msg("Kafka disabled (nil config), using log-only mode")
		return &Publisher{
			enabled:   false,
			metrics:   m,
			validator: v,
		}
	}

	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, using log-only mode")
		return &Publisher{
			principal:     cfg.Principal,
			topicQuotes:   cfg.TopicQuotes,
			topicFailures: cfg.TopicFailures,
			enabled:       false,
			metrics:       m,
			validator:     v,
		}
	}

	// Create a custom dialer with longer timeouts for DNS resolution in Kubernetes
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	transport := &kafka.Transport{
		Dial: dialer.DialFunc,
	}

	// Writer for extracted quotes
	writerQuotes := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicQuotes,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}

	// Writer for extraction failures
	writerFailures := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicFailures,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}

	log.Info().
		Strs("brokers", cfg.Brokers).
		Str("topicQuotes", cfg.TopicQuotes).
		Str("topicFailures", cfg.TopicFailures).
		Str("principal", cfg.Principal).
		Msg("Kafka publisher initialized")

	return &Publisher{
		writerQuotes:   writerQuotes,
		writerFailures: writerFailures,
		principal:      cfg.Principal,
		topicQuotes:    cfg.TopicQuotes,
		topicFailures:  cfg.TopicFailures,
		enabled:        true,
		metrics:        m,
		validator:      v,
	}
}

// PublishQuote publishes an extracted quote event to the quotes topic.
func (p *Publisher) PublishQuote(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerQuotes, p.topicQuotes, "quote", key, event)
}

// PublishFailure publishes an extraction failure event to the failures topic.
func (p *Publisher) PublishFailure(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerFailures, p.topicFailures, "failure", key, event)
}

// publish is the internal method that writes to a specific Kafka writer.
func (p *Publisher) publish(ctx context.Context, writer *kafka.Writer, topic, eventType, key string, event any) error {
	start := time.Now()

	if err := p.validator.Validate(event); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Event failed schema validation")
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to marshal event")
		return err
	}

	// Log the event
	log.Debug().
		Str("principal", p.principal).
		Str("topic", topic).
		Str("key", key).
		RawJSON("payload", payload).
		Msg("Publishing event")

	// If Kafka is disabled, just log
	if !p.enabled || writer == nil {
		p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
		return nil
	}

	// Publish to Kafka
	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(topic)},
			{Key: "principal", Value: []byte(p.principal)},
		},
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("Failed to write to Kafka")
		p.metrics.RecordKafkaPublish(topic, eventType, err, time.Since(start).Seconds())
		return err
	}

	p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
	return nil
}

// Close closes both Kafka writers.
func (p *Publisher) Close() error {
	var err error
	if p.writerQuotes != nil {
		if e := p.writerQuotes.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing quotes writer")
			err = e
		}
	}
	if p.writerFailures != nil {
		if e := p.writerFailures.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing failures writer")
			err = e
		}
	}
	return err
}
