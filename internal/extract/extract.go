package extract

import "strings"

// Record is the detailed extraction result. Empty string means the field
// was not found. Numeric fields, when set, are plain decimal strings:
// commas stripped, optional leading sign, at most one decimal point.
type Record struct {
	IndexName         string `json:"index_name"`
	Price             string `json:"price,omitempty"`
	Change            string `json:"change,omitempty"`
	ChangePercent     string `json:"change_percent,omitempty"`
	Session           string `json:"session,omitempty"`
	SessionHigh       string `json:"session_high,omitempty"`
	SessionLow        string `json:"session_low,omitempty"`
	StandardizedQuote string `json:"standardized_quote,omitempty"`

	// MultiIndex reports that the quote was assembled from more than one
	// index mention. Not part of the wire shape.
	MultiIndex bool `json:"-"`
}

// Detailed runs the full extraction pipeline over a raw transcript and
// returns the assembled record. Returns nil when no index can be
// identified: a record without an index is unextractable, regardless of
// which other fields were found.
func Detailed(transcript string) *Record {
	if strings.TrimSpace(transcript) == "" {
		return nil
	}
	text := Normalize(transcript)

	matches := IdentifyIndices(text)
	if len(matches) == 0 {
		return nil
	}

	f := ExtractFields(text)
	rec := &Record{
		IndexName:     matches[0].Canonical,
		Price:         f.Price,
		Change:        f.Change,
		ChangePercent: f.ChangePercent,
		Session:       f.Session,
		SessionHigh:   f.SessionHigh,
		SessionLow:    f.SessionLow,
	}
	if len(matches) == 1 {
		rec.StandardizedQuote = AssembleSingle(text, matches[0].Canonical, f)
	} else {
		rec.MultiIndex = true
		rec.StandardizedQuote = AssembleMulti(text, matches)
	}
	return rec
}

// Simple is the narrow convenience view: just the primary index and its
// price. Returns ok=false unless both were found.
func Simple(transcript string) (index, price string, ok bool) {
	rec := Detailed(transcript)
	if rec == nil || rec.IndexName == "" || rec.Price == "" {
		return "", "", false
	}
	return rec.IndexName, rec.Price, true
}
