package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Spoken-number vocabulary. This is the closed set of phrases that actually
// occur in spoken market updates, not a general words-to-number parser.
var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

const (
	unitAlt = `zero|one|two|three|four|five|six|seven|eight|nine`
	teenAlt = `ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen`
	tensAlt = `twenty|thirty|forty|fifty|sixty|seventy|eighty|ninety`
)

// spokenNumberRules run in order, most specific phrase first, so that
// "forty-two twenty-five" is consumed as one price before any rule could
// claim the bare "forty-two". Recognizers emit tens-pairs both hyphenated
// and space-separated ("forty two"), so the pair joiner is [-\s].
var spokenNumberRules = []struct {
	re      *regexp.Regexp
	rewrite func(groups []string) string
}{
	// "forty-two twenty-five" -> "4225" (two tens-pairs spoken as a price).
	{
		regexp.MustCompile(`(?i)\b(` + tensAlt + `)[-\s](` + unitAlt + `)\s+(` + tensAlt + `)[-\s](` + unitAlt + `)\b`),
		func(g []string) string {
			return fmt.Sprintf("%d%d", wordNum(g[1])+wordNum(g[2]), wordNum(g[3])+wordNum(g[4]))
		},
	},
	// "forty-two fifteen" -> "4215".
	{
		regexp.MustCompile(`(?i)\b(` + tensAlt + `)[-\s](` + unitAlt + `)\s+(` + teenAlt + `)\b`),
		func(g []string) string {
			return fmt.Sprintf("%d%d", wordNum(g[1])+wordNum(g[2]), wordNum(g[3]))
		},
	},
	// "forty-two hundred" -> "4200".
	{
		regexp.MustCompile(`(?i)\b(` + tensAlt + `)[-\s](` + unitAlt + `)\s+hundred\b`),
		func(g []string) string {
			return fmt.Sprintf("%d00", wordNum(g[1])+wordNum(g[2]))
		},
	},
	// "five hundred" -> "500".
	{
		regexp.MustCompile(`(?i)\b(` + unitAlt + `)\s+hundred\b`),
		func(g []string) string {
			return fmt.Sprintf("%d00", wordNum(g[1]))
		},
	},
	// "zero point five" -> "0.5".
	{
		regexp.MustCompile(`(?i)\b(` + unitAlt + `)\s+point\s+(` + unitAlt + `)\b`),
		func(g []string) string {
			return fmt.Sprintf("%d.%d", wordNum(g[1]), wordNum(g[2]))
		},
	},
	// Standalone "forty-two" -> "42".
	{
		regexp.MustCompile(`(?i)\b(` + tensAlt + `)[-\s](` + unitAlt + `)\b`),
		func(g []string) string {
			return fmt.Sprintf("%d", wordNum(g[1])+wordNum(g[2]))
		},
	},
	// Standalone teens and tens: "fifteen" -> "15", "twenty" -> "20".
	// Bare unit words are left alone outside the "point" phrasing; they are
	// too common in ordinary speech to rewrite safely.
	{
		regexp.MustCompile(`(?i)\b(` + teenAlt + `)\b`),
		func(g []string) string { return fmt.Sprintf("%d", wordNum(g[1])) },
	},
	{
		regexp.MustCompile(`(?i)\b(` + tensAlt + `)\b`),
		func(g []string) string { return fmt.Sprintf("%d", wordNum(g[1])) },
	},
}

func wordNum(w string) int {
	return numberWords[strings.ToLower(w)]
}

// NormalizeSpokenNumbers rewrites word-form numeric phrases into digit
// strings, applying the rule table in order over the whole text.
func NormalizeSpokenNumbers(text string) string {
	for _, rule := range spokenNumberRules {
		text = rule.re.ReplaceAllStringFunc(text, func(m string) string {
			g := rule.re.FindStringSubmatch(m)
			return rule.rewrite(g)
		})
	}
	return text
}
