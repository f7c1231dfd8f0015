// Package llm handles the model-based extraction path: running the
// extraction prompt against a chat-completion endpoint and normalizing the
// loosely structured text it returns into the canonical record shape.
package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hasipfaruk/Stock-Price-Extractor/internal/extract"
)

var (
	// ErrUnparsable means neither JSON parsing nor key/value scraping
	// yielded any field from the model response.
	ErrUnparsable = errors.New("llm: response has no extractable fields")

	// ErrPlaceholderLeakage means the response echoed instruction-template
	// text instead of extracted values and was rejected as untrustworthy.
	ErrPlaceholderLeakage = errors.New("llm: response contains placeholder instruction text")
)

// scrapeKeys are the fields the key/value fallback scraper looks for when
// the response is not valid JSON.
var scrapeKeys = []string{"index_name", "price", "change", "change_percent", "session"}

// nestedKeys are the quote_analysis fields of the structured response.
var nestedKeys = []string{
	"current_price", "change_points", "change_percent",
	"intraday_high", "intraday_low", "market_direction", "session_context",
}

var trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)

// ParseResponse locates a JSON-like object inside raw model output and
// flattens it into a field map. Trailing commas and embedded newlines are
// tolerated. On JSON failure it falls back to scraping "key: value"
// fragments for the expected keys. Returns ErrUnparsable when nothing at
// all can be recovered.
func ParseResponse(raw string) (map[string]string, error) {
	if obj, ok := locateJSON(raw); ok {
		fields := flattenObject(obj)
		if len(fields) > 0 {
			return fields, nil
		}
	}
	fields := scrapeKeyValues(raw)
	if len(fields) == 0 {
		return nil, ErrUnparsable
	}
	return fields, nil
}

// locateJSON scans for the first balanced {...} object and unmarshals it,
// repairing trailing commas first.
func locateJSON(raw string) (map[string]any, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return nil, false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				candidate := trailingCommaRe.ReplaceAllString(raw[start:i+1], "${1}")
				var obj map[string]any
				if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
					return nil, false
				}
				return obj, true
			}
		}
	}
	return nil, false
}

// flattenObject converts a parsed response object into a flat string map,
// pulling quote_analysis fields up to the top level.
func flattenObject(obj map[string]any) map[string]string {
	fields := map[string]string{}
	put := func(key string, v any) {
		if v == nil {
			return
		}
		s := strings.TrimSpace(fmt.Sprint(v))
		if s != "" {
			fields[key] = s
		}
	}
	for k, v := range obj {
		if k == "quote_analysis" {
			if nested, ok := v.(map[string]any); ok {
				for _, nk := range nestedKeys {
					if nv, ok := nested[nk]; ok {
						put(nk, nv)
					}
				}
			}
			continue
		}
		put(k, v)
	}
	return fields
}

func scrapeKeyValues(raw string) map[string]string {
	fields := map[string]string{}
	for _, key := range scrapeKeys {
		re := regexp.MustCompile(`(?i)"?` + key + `"?\s*[:=]\s*"?([^"\n,}]+)"?`)
		if m := re.FindStringSubmatch(raw); m != nil {
			v := strings.TrimSpace(m[1])
			if v != "" && !strings.EqualFold(v, "null") {
				fields[key] = v
			}
		}
	}
	return fields
}

// Normalized is the validated, canonical form of a model response. It
// mirrors the record produced by the regex pipeline plus the extra
// classification fields only the model path reports.
type Normalized struct {
	IndexName         string  `json:"index_name"`
	StandardizedQuote string  `json:"standardized_quote,omitempty"`
	CurrentPrice      float64 `json:"current_price,omitempty"`
	ChangePoints      float64 `json:"change_points,omitempty"`
	ChangePercent     float64 `json:"change_percent,omitempty"`
	IntradayHigh      float64 `json:"intraday_high,omitempty"`
	IntradayLow       float64 `json:"intraday_low,omitempty"`
	MarketDirection   string  `json:"market_direction,omitempty"`
	SessionContext    string  `json:"session_context,omitempty"`

	hasPrice, hasChange, hasPercent, hasHigh, hasLow bool
}

// placeholderPatterns are literal instruction-template fragments; a field
// containing any of them is invalid.
var placeholderPatterns = []string{
	"ACTUAL_INDEX_FROM_TRANSCRIPT",
	"ACTUAL_PRICE_FROM_TRANSCRIPT",
	"ACTUAL_CHANGE_OR_NULL",
	"ACTUAL_PERCENTAGE_OR_NULL",
	"ACTUAL_SESSION_OR_NULL",
	"EXTRACT THE ACTUAL",
	"EXTRACT FROM TRANSCRIPT",
	"INDEX @ PRICE CHANGE",
	"PRICE INFORMATION FROM TRANSCRIPTS",
	"INFORMATION FROM TRANSCRIPTS",
	"THE STOCK INDEX NAME MENTIONED",
	"THE CHANGE IN POINTS MENTIONED",
	"THE PERCENTAGE CHANGE MENTIONED",
	"THE TRADING SESSION CONTEXT MENTIONED",
	"MENTIONED IN THE TRANSCRIPT",
	"FROM THE TRANSCRIPT",
	"IN THE TRANSCRIPT",
	"THE TRANSCRIPT",
}

var instructionKeywords = []string{"MENTIONED", "TRANSCRIPT", "EXTRACT", "INFORMATION", "CONTEXT"}

// isPlaceholder reports whether a field value looks like copied instruction
// text rather than extracted data.
func isPlaceholder(value string) bool {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return false
	}

	keywordCount := 0
	for _, kw := range instructionKeywords {
		if strings.Contains(v, kw) {
			keywordCount++
		}
	}
	if keywordCount >= 2 {
		return true
	}

	for _, p := range placeholderPatterns {
		if strings.Contains(v, p) {
			return true
		}
	}

	// Long text with instruction words reads like a sentence, not data.
	if len(v) > 30 {
		for _, w := range []string{"THE", "FROM", "IN", "MENTIONED", "EXTRACT"} {
			if strings.Contains(v, w) {
				return true
			}
		}
	}
	return false
}

// NormalizeResponse validates and normalizes a parsed field map. The
// returned flagged slice names fields that looked like instruction
// leakage; with three or more the whole response is rejected and
// ErrPlaceholderLeakage is returned.
func NormalizeResponse(fields map[string]string) (*Normalized, []string, error) {
	var flagged []string
	for key, value := range fields {
		if isPlaceholder(value) {
			flagged = append(flagged, key)
		}
	}
	if len(flagged) >= 3 {
		return nil, flagged, ErrPlaceholderLeakage
	}

	clean := func(key string) string {
		if containsString(flagged, key) {
			return ""
		}
		return fields[key]
	}

	n := &Normalized{
		IndexName:         normalizeIndexName(clean("index_name")),
		StandardizedQuote: clean("standardized_quote"),
		MarketDirection:   normalizeMarketDirection(clean("market_direction")),
		SessionContext:    normalizeSessionContext(firstNonEmpty(clean("session_context"), clean("session"))),
	}
	n.CurrentPrice, n.hasPrice = normalizeNumber(firstNonEmpty(clean("current_price"), clean("price")))
	n.ChangePoints, n.hasChange = normalizeNumber(firstNonEmpty(clean("change_points"), clean("change")))
	n.ChangePercent, n.hasPercent = normalizeNumber(clean("change_percent"))
	n.IntradayHigh, n.hasHigh = normalizeNumber(clean("intraday_high"))
	n.IntradayLow, n.hasLow = normalizeNumber(clean("intraday_low"))
	return n, flagged, nil
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// normalizeNumber coerces a numeric-looking value, stripping sign, percent
// and thousands separators. Non-numeric content yields ok=false, never an
// error.
func normalizeNumber(value string) (float64, bool) {
	v := strings.TrimSpace(value)
	if v == "" || isNullWord(v) {
		return 0, false
	}
	for _, cut := range []string{"+", "-", "%", ",", "$", " "} {
		v = strings.ReplaceAll(v, cut, "")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func isNullWord(v string) bool {
	switch strings.ToLower(v) {
	case "none", "null", "n/a", "na":
		return true
	}
	return false
}

func normalizeIndexName(value string) string {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" || isNullWord(v) {
		return ""
	}
	return v
}

// normalizeMarketDirection classifies direction text into {up, down, flat}.
// Unrecognized text yields empty.
func normalizeMarketDirection(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case containsAny(v, "up", "higher", "gaining", "advancing", "rallying", "positive"):
		return "up"
	case containsAny(v, "down", "lower", "falling", "declining", "negative"):
		return "down"
	case containsAny(v, "flat", "unchanged", "little changed", "barely"):
		return "flat"
	}
	return ""
}

var sessionLabels = []string{"opening", "open", "midday", "noon", "closing", "close", "premarket", "pre-market", "afterhours", "after hours", "overnight"}

var sessionCanonical = map[string]string{
	"open": "opening", "noon": "midday", "close": "closing",
	"pre-market": "premarket", "after hours": "afterhours",
}

// normalizeSessionContext maps session text onto the canonical label set,
// falling back to the lower-cased raw text when nothing matches.
func normalizeSessionContext(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" || isNullWord(v) {
		return ""
	}
	for _, label := range sessionLabels {
		if strings.Contains(v, label) {
			if canon, ok := sessionCanonical[label]; ok {
				return canon
			}
			return label
		}
	}
	return v
}

func containsAny(v string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(v, w) {
			return true
		}
	}
	return false
}

// Record converts the normalized response into the shared record shape so
// callers can treat regex-based and model-based extraction interchangeably.
func (n *Normalized) Record() *extract.Record {
	if n == nil || n.IndexName == "" {
		return nil
	}
	rec := &extract.Record{
		IndexName:         n.IndexName,
		StandardizedQuote: n.StandardizedQuote,
	}
	if n.hasPrice {
		rec.Price = formatNumber(n.CurrentPrice)
	}
	if n.hasChange {
		rec.Change = formatNumber(n.ChangePoints)
	}
	if n.hasPercent {
		rec.ChangePercent = formatNumber(n.ChangePercent)
	}
	if n.hasHigh {
		rec.SessionHigh = formatNumber(n.IntradayHigh)
	}
	if n.hasLow {
		rec.SessionLow = formatNumber(n.IntradayLow)
	}
	if n.SessionContext != "" {
		rec.Session = strings.ToUpper(n.SessionContext)
	}
	return rec
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
