package events

import (
	"context"
	"testing"

	"github.com/hasipfaruk/Stock-Price-Extractor/internal/models"
)

func TestNew_DisabledMode(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"disabled", &Config{Enabled: false, Brokers: []string{"localhost:9092"}}},
		{"no brokers", &Config{Enabled: true, Brokers: []string{}}},
		{"empty brokers", &Config{Enabled: true, Brokers: nil}},
		{"nil config", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.cfg)
			if p == nil {
				t.Fatal("expected non-nil publisher")
			}
			if p.enabled {
				t.Error("expected publisher to be disabled")
			}
			if p.writerQuotes != nil {
				t.Error("expected nil quotes writer when disabled")
			}
			if p.writerFailures != nil {
				t.Error("expected nil failures writer when disabled")
			}
		})
	}
}

func TestNew_ConfigValues(t *testing.T) {
	cfg := &Config{
		Enabled:       false,
		Brokers:       []string{"localhost:9092"},
		TopicQuotes:   "test.quotes",
		TopicFailures: "test.failures",
		Principal:     "test-principal",
	}

	p := New(cfg)

	if p.principal != "test-principal" {
		t.Errorf("expected principal 'test-principal', got %s", p.principal)
	}
	if p.topicQuotes != "test.quotes" {
		t.Errorf("expected topic quotes 'test.quotes', got %s", p.topicQuotes)
	}
	if p.topicFailures != "test.failures" {
		t.Errorf("expected topic failures 'test.failures', got %s", p.topicFailures)
	}
}

func TestPublisher_PublishQuote_Disabled(t *testing.T) {
	p := New(&Config{Enabled: false})

	event := &models.QuoteExtracted{
		EventType:         "QuoteExtracted",
		RequestID:         "req-1",
		IndexName:         "S&P 500",
		Price:             "4225",
		StandardizedQuote: "S&P 500 @ 4225",
	}
	err := p.PublishQuote(context.Background(), "req-1", event)

	if err != nil {
		t.Errorf("expected no error when disabled, got %v", err)
	}
}

func TestPublisher_PublishFailure_Disabled(t *testing.T) {
	p := New(&Config{Enabled: false})

	event := &models.ExtractionFailed{
		EventType: "ExtractionFailed",
		RequestID: "req-2",
		Reason:    "no_index",
	}
	err := p.PublishFailure(context.Background(), "req-2", event)

	if err != nil {
		t.Errorf("expected no error when disabled, got %v", err)
	}
}

func TestPublisher_PublishQuote_SchemaRejected(t *testing.T) {
	p := New(&Config{Enabled: false})

	// Missing requestId should fail validation before any write.
	event := &models.QuoteExtracted{
		EventType: "QuoteExtracted",
		IndexName: "S&P 500",
	}
	if err := p.PublishQuote(context.Background(), "key", event); err == nil {
		t.Error("expected schema validation error")
	}
}

func TestPublisher_Publish_InvalidJSON(t *testing.T) {
	p := New(&Config{Enabled: false})

	// Create an unmarshalable value (channel)
	event := make(chan int)
	err := p.PublishQuote(context.Background(), "test-key", event)

	if err == nil {
		t.Error("expected error for unmarshalable event")
	}
}

func TestPublisher_Close_NoWriters(t *testing.T) {
	p := New(&Config{Enabled: false})

	err := p.Close()
	if err != nil {
		t.Errorf("expected no error closing disabled publisher, got %v", err)
	}
}
