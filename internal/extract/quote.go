package extract

import (
	"regexp"
	"strings"
)

// indexVariants are the surface forms (including known mishearings) an
// index can take in a transcript. Used to attribute per-index change and
// percentage values on the multi-index path.
var indexVariants = map[string][]string{
	"S&P 500":       {"s&p 500", "s&p", "snp", "s and p"},
	"NASDAQ":        {"nasdaq", "not stack"},
	"DOW":           {"dow jones", "dow"},
	"RUSSELL 2000":  {"russell 2000", "russell"},
	"DAX":           {"dax", "ducks"},
	"VIX":           {"vix", "vicks"},
	"HANG SENG":     {"hang seng"},
	"SHANGHAI COMP": {"shanghai"},
	"FTSE":          {"ftse"},
	"NIKKEI":        {"nikkei"},
	"CAC 40":        {"cac 40"},
}

func breakoutMentioned(lower string) bool {
	if !strings.Contains(lower, "breaking above") {
		return false
	}
	return strings.Contains(lower, "200-day") ||
		strings.Contains(lower, "200 day") ||
		strings.Contains(lower, "dma")
}

// AssembleSingle builds the standardized quote string for the single-index
// case: an ordered list of segments joined by single spaces.
func AssembleSingle(text, index string, f Fields) string {
	lower := strings.ToLower(text)
	segs := []string{index}

	// Session tag, unless a concrete high/low value already states the same
	// fact as a number.
	tag := f.Session
	if (tag == "SESSION HIGH" && f.SessionHigh != "") ||
		(tag == "SESSION LOW" && f.SessionLow != "") {
		tag = ""
	}
	if tag == "PREMARKET" && strings.Contains(lower, "futures") {
		tag = "FUTURES PREMARKET"
	}
	if tag != "" {
		segs = append(segs, tag)
	}

	// "SHARPLY LOWER" goes immediately before the price segment, before the
	// percentage if there is no price, or at the end if neither.
	sharply := index == "DAX" && strings.Contains(lower, "sharply lower")

	if f.Price != "" {
		if sharply {
			segs = append(segs, "SHARPLY LOWER")
			sharply = false
		}
		segs = append(segs, "@ "+f.Price)
	}
	if f.SessionHigh != "" {
		segs = append(segs, "SESSION HIGH "+f.SessionHigh)
	}
	if f.SessionLow != "" {
		segs = append(segs, "SESSION LOW "+f.SessionLow)
	}
	if f.Change != "" {
		segs = append(segs, f.Change+" pts")
	}
	if breakoutMentioned(lower) {
		segs = append(segs, "BREAKING ABOVE 200-DMA")
	}
	if f.ChangePercent != "" {
		if sharply {
			segs = append(segs, "SHARPLY LOWER")
			sharply = false
		}
		segs = append(segs, "("+f.ChangePercent+"%)")
	}
	if sharply {
		segs = append(segs, "SHARPLY LOWER")
	}

	if index == "NASDAQ" && strings.Contains(lower, "tech") && strings.Contains(lower, "driving") {
		segs = append(segs, "TECH DRIVING")
	}

	quote := strings.Join(segs, " ")
	if strings.Contains(lower, "lagging") || strings.Contains(lower, "laging") {
		if index == "RUSSELL 2000" {
			quote += " LAGGING"
		} else if russellMentioned(lower) {
			quote += "; RUSSELL 2000 LAGGING"
		}
	}
	return quote
}

func russellMentioned(lower string) bool {
	return strings.Contains(lower, "russell")
}

var (
	nearChangeRe  = regexp.MustCompile(`(?i)\b(up|down|higher|lower|gaining|losing)\s+(\d{1,3}(?:\.\d+)?)\s*(?:points|pts)?\b`)
	nearPercentRe = regexp.MustCompile(`(?i)\b(?:(up|down|app|higher|lower)\s+)?(\d+(?:\.\d+)?)\s*(?:%|percent)`)
)

// AssembleMulti builds the standardized quote for two or more indices:
// one fragment per index in first-appearance order, joined by "; ". Only
// change and percentage are attributed per index; price and session are
// not computed for sub-indices.
func AssembleMulti(text string, matches []IndexMatch) string {
	frags := make([]string, 0, len(matches))
	for i, m := range matches {
		// Each index owns the text from its first occurrence up to the
		// next index's occurrence.
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1].Start
		}
		span := text[m.Start:end]
		frags = append(frags, indexFragment(text, span, m.Canonical))
	}
	return strings.Join(frags, "; ")
}

// indexFragment builds one multi-index fragment: canonical name, then any
// point change and percentage found near the index's own name variants,
// plus index-specific context flags.
func indexFragment(full, span, index string) string {
	lowerSpan := strings.ToLower(span)
	lowerFull := strings.ToLower(full)

	// Anchor at the first variant occurrence inside the span; "app" is the
	// known mishearing of "up" and counts as a positive direction.
	search := span
	variants := indexVariants[index]
	if len(variants) == 0 {
		variants = []string{strings.ToLower(index)}
	}
	for _, v := range variants {
		if pos := strings.Index(lowerSpan, v); pos >= 0 {
			search = span[pos:]
			break
		}
	}

	parts := []string{index}
	if change, ok := changeNear(search); ok {
		parts = append(parts, change+" pts")
	}
	if pct, ok := percentNear(search); ok {
		parts = append(parts, "("+pct+"%)")
	}

	switch index {
	case "NASDAQ":
		if strings.Contains(lowerFull, "tech") && strings.Contains(lowerFull, "driving") {
			parts = append(parts, "TECH DRIVING")
		}
	case "RUSSELL 2000":
		if strings.Contains(lowerFull, "lagging") || strings.Contains(lowerFull, "laging") {
			parts = append(parts, "LAGGING")
		}
	}
	return strings.Join(parts, " ")
}

func changeNear(span string) (string, bool) {
	m := nearChangeRe.FindStringSubmatchIndex(span)
	if m == nil {
		return "", false
	}
	val := span[m[4]:m[5]]
	if looksLikePercent(span, m[5]) {
		return "", false
	}
	return signFromWord(span[m[2]:m[3]]) + val, true
}

func percentNear(span string) (string, bool) {
	m := nearPercentRe.FindStringSubmatchIndex(span)
	if m == nil {
		return "", false
	}
	sign := "+"
	if m[2] >= 0 {
		sign = signFromWord(span[m[2]:m[3]])
	}
	return sign + span[m[4]:m[5]], true
}
