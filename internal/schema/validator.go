// Package schema validates event payloads before they are published.
package schema

import (
	"fmt"
	"regexp"

	"github.com/hasipfaruk/Stock-Price-Extractor/internal/models"
)

// numericRe matches the numeric-string fields carried on quote events:
// an optional sign, digits, and an optional decimal part.
var numericRe = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

// Validator checks event payloads against the event contracts.
type Validator struct{}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// Validate checks the known event types. Unknown payload types pass through
// so callers can publish ad-hoc diagnostics without registering a schema.
func (v *Validator) Validate(event any) error {
	switch e := event.(type) {
	case *models.QuoteExtracted:
		return v.validateQuote(e)
	case *models.ExtractionFailed:
		return v.validateFailure(e)
	}
	return nil
}

func (v *Validator) validateQuote(e *models.QuoteExtracted) error {
	if e.EventType != "QuoteExtracted" {
		return fmt.Errorf("schema: unexpected eventType %q", e.EventType)
	}
	if e.RequestID == "" {
		return fmt.Errorf("schema: missing requestId")
	}
	if e.IndexName == "" {
		return fmt.Errorf("schema: missing indexName")
	}
	for field, value := range map[string]string{
		"price":         e.Price,
		"change":        e.Change,
		"changePercent": e.ChangePercent,
		"sessionHigh":   e.SessionHigh,
		"sessionLow":    e.SessionLow,
	} {
		if value != "" && !numericRe.MatchString(value) {
			return fmt.Errorf("schema: field %s is not numeric: %q", field, value)
		}
	}
	return nil
}

func (v *Validator) validateFailure(e *models.ExtractionFailed) error {
	if e.EventType != "ExtractionFailed" {
		return fmt.Errorf("schema: unexpected eventType %q", e.EventType)
	}
	if e.RequestID == "" {
		return fmt.Errorf("schema: missing requestId")
	}
	if e.Reason == "" {
		return fmt.Errorf("schema: missing reason")
	}
	return nil
}
