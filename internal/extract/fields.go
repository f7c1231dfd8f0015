package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Fields holds the independently extracted quote values. Empty string means
// the field was not found; that is normal and never aborts other extractors.
type Fields struct {
	Price         string
	Change        string
	ChangePercent string
	Session       string
	SessionHigh   string
	SessionLow    string
}

// ExtractFields runs every field extractor over the normalized text.
func ExtractFields(text string) Fields {
	f := Fields{}
	f.Price, _ = extractPrice(text)
	f.SessionHigh, _ = extractSessionBound(text, sessionHighRe)
	f.SessionLow, _ = extractSessionBound(text, sessionLowRe)
	f.Change, _ = extractChange(text)
	f.ChangePercent, _ = extractChangePercent(text)
	f.Session = extractSession(text, f.SessionHigh, f.SessionLow)
	return f
}

// --- price ---

// Price patterns in priority order. First pattern whose candidate passes
// the significant-digit threshold wins.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:\bat\b|@)\s*\$?(\d{1,3}(?:,\d{3})+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)(?:\bat\b|@)\s*\$?(\d{4,5}(?:\.\d+)?)\b`),
	regexp.MustCompile(`(?i)\b(?:currently|now)\s+at\s+\$?(\d{1,3}(?:,\d{3})+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)\bnow\s+at\s+\$?(\d+\.\d+)\b`),
	regexp.MustCompile(`(\d{4,5}(?:\.\d+)?)\s*$`),
}

func extractPrice(text string) (string, bool) {
	for _, re := range pricePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		cand := strings.ReplaceAll(m[1], ",", "")
		if priceAcceptable(cand) {
			return cand, true
		}
	}
	return "", false
}

// priceAcceptable rejects candidates that are too small to be an index
// level, so point-changes and percentages are never mistaken for the price:
// at least 4 significant digits, or a decimal with at least 3.
func priceAcceptable(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits >= 4 {
		return true
	}
	return strings.Contains(s, ".") && digits >= 3
}

// --- session high / low ---

var (
	sessionHighRe = regexp.MustCompile(`(?i)\bsession\s+high\s+(?:of\s+)?\$?(\d{1,3}(?:,\d{3})*(?:\.\d+)?)`)
	sessionLowRe  = regexp.MustCompile(`(?i)\bsession\s+low\s+(?:of\s+)?\$?(\d{1,3}(?:,\d{3})*(?:\.\d+)?)`)
)

func extractSessionBound(text string, re *regexp.Regexp) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.ReplaceAll(m[1], ",", ""), true
}

// --- point change ---

var (
	upWords   = []string{"up", "higher", "gaining", "rising"}
	downWords = []string{"down", "lower", "losing", "falling", "declining"}
)

// signWindow is how far before a matched number we scan for a direction
// word. Best-effort disambiguation, not a parse; default sign is positive.
const signWindow = 20

func signFromWord(w string) string {
	w = strings.ToLower(w)
	for _, d := range downWords {
		if w == d {
			return "-"
		}
	}
	return "+"
}

func signFromContext(text string, pos int) string {
	lo := pos - signWindow
	if lo < 0 {
		lo = 0
	}
	window := strings.ToLower(text[lo:pos])
	for _, d := range downWords {
		if strings.Contains(window, d) {
			return "-"
		}
	}
	return "+"
}

var changePatterns = []struct {
	re *regexp.Regexp
	// groups: direction word index (0 = derive sign from context), value index
	dirGroup, valGroup int
}{
	// "up 23 points", "falling 12.5 pts"
	{regexp.MustCompile(`(?i)\b(up|higher|gaining|rising|down|lower|losing|falling)\s+(?:by\s+)?(\d{1,3}(?:\.\d+)?)\s*(?:points|pts)\b`), 1, 2},
	// Short form without the word "points": "up 15"
	{regexp.MustCompile(`(?i)\bup\s+(\d{1,2})\b`), 0, 1},
	// Breakout phrasings: the change number runs straight into the
	// technical context ("35 breaking above", "40 days", "30 moving").
	{regexp.MustCompile(`(?i)\b(\d{1,3}(?:\.\d+)?)\s+(?:breaking|above|days|moving)\b`), 0, 1},
	{regexp.MustCompile(`(?i)\bbreaking\s+above\b.{0,40}?\bat\s+(\d{1,3}(?:\.\d+)?)\b`), 0, 1},
}

// looksLikePercent reports whether the text following a matched number
// continues as a percentage or a decimal, meaning the number belongs to the
// percent extractor instead.
func looksLikePercent(text string, end int) bool {
	rest := text[end:]
	// A dot only continues the number when a digit follows; a sentence-final
	// period does not.
	if strings.HasPrefix(rest, ".") {
		return len(rest) > 1 && rest[1] >= '0' && rest[1] <= '9'
	}
	rest = strings.TrimLeft(rest, " ")
	return strings.HasPrefix(rest, "%") || strings.HasPrefix(strings.ToLower(rest), "percent")
}

func extractChange(text string) (string, bool) {
	for _, p := range changePatterns {
		m := p.re.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}
		val := text[m[2*p.valGroup]:m[2*p.valGroup+1]]
		// A change is never index-magnitude.
		if v, err := strconv.ParseFloat(val, 64); err != nil || v >= 1000 {
			continue
		}
		if p.dirGroup == 0 && looksLikePercent(text, m[2*p.valGroup+1]) {
			continue
		}
		sign := "+"
		if p.dirGroup > 0 {
			sign = signFromWord(text[m[2*p.dirGroup]:m[2*p.dirGroup+1]])
		} else {
			sign = signFromContext(text, m[2*p.valGroup])
		}
		return sign + val, true
	}
	return "", false
}

// --- percent change ---

var percentPatterns = []struct {
	re                 *regexp.Regexp
	dirGroup, valGroup int // dirGroup 0: sign from the number itself or context
}{
	// "up 0.5 percent", "down 2%"
	{regexp.MustCompile(`(?i)\b(up|down|higher|lower)\s+(\d+(?:\.\d+)?)\s*(?:percent|%)`), 1, 2},
	// Trailing "%": "+1.2%", "3%"
	{regexp.MustCompile(`([+-]?\d+(?:\.\d+)?)\s*%`), 0, 1},
	// "2 percent higher"
	{regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s+percent\s+(higher|lower)\b`), 2, 1},
}

func extractChangePercent(text string) (string, bool) {
	for _, p := range percentPatterns {
		m := p.re.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}
		val := text[m[2*p.valGroup]:m[2*p.valGroup+1]]
		if p.dirGroup > 0 {
			return signFromWord(text[m[2*p.dirGroup]:m[2*p.dirGroup+1]]) + val, true
		}
		// An already-signed number is respected as-is.
		if strings.HasPrefix(val, "+") || strings.HasPrefix(val, "-") {
			return val, true
		}
		return signFromContext(text, m[2*p.valGroup]) + val, true
	}
	return "", false
}

// --- session tag ---

// extractSession classifies the trading-session context. Priority order is
// fixed: an explicit close beats everything, a found high/low value counts
// the same as the spoken phrase.
func extractSession(text, sessionHigh, sessionLow string) string {
	l := strings.ToLower(text)
	switch {
	case strings.Contains(l, "closing"), strings.Contains(l, "close"):
		return "CLOSING"
	case strings.Contains(l, "premarket"), strings.Contains(l, "pre-market"):
		return "PREMARKET"
	case strings.Contains(l, "session high"), sessionHigh != "":
		return "SESSION HIGH"
	case strings.Contains(l, "session low"), sessionLow != "":
		return "SESSION LOW"
	case strings.Contains(l, "overnight"):
		return "OVERNIGHT"
	}
	return ""
}
