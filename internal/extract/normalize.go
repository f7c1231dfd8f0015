// Package extract turns noisy market-update transcripts into structured
// quote records. Every function in this package is a pure function of its
// input string: no I/O, no shared state, safe for concurrent callers.
package extract

import "regexp"

// correction is one ordered transcript rewrite. Longer and more specific
// patterns must come before shorter ones that would otherwise shadow them
// (e.g. "SNP 500" before bare "SNP").
type correction struct {
	re   *regexp.Regexp
	repl string
}

// corrections are the known speech-recognition errors seen in market
// updates: homophone substitutions, glued direction words, and misheard
// magnitude words that inflate small numbers.
var corrections = []correction{
	{regexp.MustCompile(`(?i)\bSNP\s*500\b`), "S&P 500"},
	{regexp.MustCompile(`(?i)\bSNP\s*five\s*hundred\b`), "S&P 500"},
	{regexp.MustCompile(`(?i)\bSNP\b`), "S&P"},
	{regexp.MustCompile(`(?i)\bDucks\b`), "DAX"},
	{regexp.MustCompile(`(?i)\bVicks\b`), "VIX"},
	{regexp.MustCompile(`(?i)\bnot\s+stack\b`), "NASDAQ"},
	{regexp.MustCompile(`(?i)\bTau\s+Jones\b`), "Dow Jones"},

	// Direction word glued to digits: "up15" -> "up 15".
	{regexp.MustCompile(`(?i)\bup(\d+)\b`), "up ${1}"},
	{regexp.MustCompile(`(?i)\bdown(\d+)\b`), "down ${1}"},

	// "fifty" misheard as "50,000,000": keep the leading 1-2 digits.
	{regexp.MustCompile(`(?i)\bup\s+(\d{1,2}),\d{3,}(?:,\d{3})*\b`), "up ${1}"},
	{regexp.MustCompile(`(?i)\bdown\s+(\d{1,2}),\d{3,}(?:,\d{3})*\b`), "down ${1}"},

	// "app" for "up", only in front of a percentage.
	{regexp.MustCompile(`(?i)\bapp\s+(\d+)\s*%`), "up ${1}%"},

	// "40 to 5" -> "405". Lossy and context-free; misfires on genuine
	// ranges, kept for compatibility with recorded transcripts.
	{regexp.MustCompile(`(\d+)\s+to\s+(\d+)`), "${1}${2}"},

	{regexp.MustCompile(`(?i)Session\s+Law`), "Session Low"},
	{regexp.MustCompile(`(?i)\bLaging\b`), "lagging"},
}

// FixTranscriptionErrors rewrites known recognition errors into canonical
// surface forms. Substitutions run in declaration order.
func FixTranscriptionErrors(text string) string {
	for _, c := range corrections {
		text = c.re.ReplaceAllString(text, c.repl)
	}
	return text
}

// Normalize runs the full text-normalization pass: error corrections first,
// then spoken-number rewriting. This is the text every downstream extractor
// operates on.
func Normalize(text string) string {
	return NormalizeSpokenNumbers(FixTranscriptionErrors(text))
}
