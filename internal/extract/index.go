package extract

import (
	"regexp"
	"sort"
	"strings"
)

// IndexMatch is one recognized index occurrence in normalized text.
type IndexMatch struct {
	Raw       string // matched substring as it appears in the text
	Start     int    // byte offset of the first occurrence
	Canonical string // standardized display name
}

// indexPatterns are tried most specific first so that "S&P 500" wins over
// bare "S&P" and "Dow Jones" over bare "Dow". Every pattern is scanned for
// all non-overlapping matches, not just the first.
var indexPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bS&P\s*500\b`),
	regexp.MustCompile(`(?i)\bS\s+and\s+P\s+500\b`),
	regexp.MustCompile(`(?i)\bS&P\b`),
	regexp.MustCompile(`(?i)\bS\s+and\s+P\b`),
	regexp.MustCompile(`(?i)\bNasdaq(?:\s+Composite)?\b`),
	regexp.MustCompile(`(?i)\bDow\s+Jones\b`),
	regexp.MustCompile(`(?i)\bDow\b`),
	// Lowercase "down" is usually the direction word, but recognizers also
	// emit it for "Dow". Guarded below: only counts with "Jones" nearby.
	regexp.MustCompile(`\bdown\b`),
	regexp.MustCompile(`(?i)\bRussell\s+2000\b`),
	regexp.MustCompile(`(?i)\bRussell\b`),
	regexp.MustCompile(`(?i)\bHang\s+Seng\b`),
	regexp.MustCompile(`(?i)\bShanghai(?:\s+Comp(?:osite)?)?\b`),
	regexp.MustCompile(`(?i)\bDAX\b`),
	regexp.MustCompile(`(?i)\bVIX\b`),
	regexp.MustCompile(`(?i)\bFTSE\b`),
	regexp.MustCompile(`(?i)\bNikkei\b`),
	regexp.MustCompile(`(?i)\bCAC\s*40\b`),
}

// jonesWindow is how far around a bare "down" token we look for "Jones"
// before accepting it as a Dow mention.
const jonesWindow = 20

func jonesNear(text string, start, end int) bool {
	lo := start - jonesWindow
	if lo < 0 {
		lo = 0
	}
	hi := end + jonesWindow
	if hi > len(text) {
		hi = len(text)
	}
	return strings.Contains(strings.ToLower(text[lo:hi]), "jones")
}

// IdentifyIndices scans normalized text for every known index mention,
// deduplicates by canonical name (first occurrence wins) and returns the
// matches ordered by first-appearance offset. An empty result means the
// transcript is unextractable.
func IdentifyIndices(text string) []IndexMatch {
	first := map[string]IndexMatch{}
	for _, re := range indexPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			raw := text[loc[0]:loc[1]]
			if raw == "down" && !jonesNear(text, loc[0], loc[1]) {
				continue
			}
			canon := Canonicalize(raw)
			if prev, ok := first[canon]; !ok || loc[0] < prev.Start {
				first[canon] = IndexMatch{Raw: raw, Start: loc[0], Canonical: canon}
			}
		}
	}

	out := make([]IndexMatch, 0, len(first))
	for _, m := range first {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// Canonicalize maps a raw matched substring to its standard display name.
// Any S&P mention collapses to the 500 variant; the transcripts in scope
// never reference another one. Idempotent over canonical names.
func Canonicalize(raw string) string {
	l := strings.ToLower(raw)
	switch {
	case strings.Contains(l, "ducks"):
		return "DAX"
	case strings.Contains(l, "vicks"):
		return "VIX"
	case strings.Contains(l, "not stack"), strings.Contains(l, "nasdaq"):
		return "NASDAQ"
	case strings.Contains(l, "s&p"), strings.Contains(l, "s and p"), strings.Contains(l, "snp"):
		return "S&P 500"
	case strings.Contains(l, "dow"):
		return "DOW"
	case strings.Contains(l, "russell"):
		return "RUSSELL 2000"
	case strings.Contains(l, "hang seng"):
		return "HANG SENG"
	case strings.Contains(l, "shanghai"):
		return "SHANGHAI COMP"
	}

	u := strings.ToUpper(strings.TrimSpace(raw))
	if u == "CAC40" {
		return "CAC 40"
	}
	return u
}
