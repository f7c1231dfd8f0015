// Package models defines the data structures for quote extraction events.
package models

import "github.com/hasipfaruk/Stock-Price-Extractor/internal/extract"

// QuoteExtracted represents a successfully extracted quote record.
type QuoteExtracted struct {
	EventType         string `json:"eventType"`
	RequestID         string `json:"requestId"`
	Timestamp         int64  `json:"timestamp"`
	Source            string `json:"source"` // transcript, audio, llm
	Transcript        string `json:"transcript"`
	IndexName         string `json:"indexName"`
	Price             string `json:"price,omitempty"`
	Change            string `json:"change,omitempty"`
	ChangePercent     string `json:"changePercent,omitempty"`
	Session           string `json:"session,omitempty"`
	SessionHigh       string `json:"sessionHigh,omitempty"`
	SessionLow        string `json:"sessionLow,omitempty"`
	StandardizedQuote string `json:"standardizedQuote"`
}

// ExtractionFailed represents a transcript that yielded no quote.
type ExtractionFailed struct {
	EventType  string `json:"eventType"`
	RequestID  string `json:"requestId"`
	Timestamp  int64  `json:"timestamp"`
	Source     string `json:"source"`
	Transcript string `json:"transcript"`
	Reason     string `json:"reason"`
}

// NewQuoteExtracted builds a QuoteExtracted event from a record.
func NewQuoteExtracted(requestID, source, transcript string, ts int64, rec *extract.Record) *QuoteExtracted {
	return &QuoteExtracted{
		EventType:         "QuoteExtracted",
		RequestID:         requestID,
		Timestamp:         ts,
		Source:            source,
		Transcript:        transcript,
		IndexName:         rec.IndexName,
		Price:             rec.Price,
		Change:            rec.Change,
		ChangePercent:     rec.ChangePercent,
		Session:           rec.Session,
		SessionHigh:       rec.SessionHigh,
		SessionLow:        rec.SessionLow,
		StandardizedQuote: rec.StandardizedQuote,
	}
}

// NewExtractionFailed builds an ExtractionFailed event.
func NewExtractionFailed(requestID, source, transcript, reason string, ts int64) *ExtractionFailed {
	return &ExtractionFailed{
		EventType:  "ExtractionFailed",
		RequestID:  requestID,
		Timestamp:  ts,
		Source:     source,
		Transcript: transcript,
		Reason:     reason,
	}
}
