package extract

import (
	"strings"
	"testing"
)

// assertOrder checks that the wanted substrings appear in s in the given
// relative order.
func assertOrder(t *testing.T, s string, parts ...string) {
	t.Helper()
	pos := 0
	for _, p := range parts {
		i := strings.Index(s[pos:], p)
		if i < 0 {
			t.Fatalf("expected %q to contain %q after position %d", s, p, pos)
		}
		pos += i + len(p)
	}
}

func TestDetailed_FullSingleIndexQuote(t *testing.T) {
	rec := Detailed("S&P 500 is currently at 4,225, up 23 points, up 0.5 percent, closing session")
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.IndexName != "S&P 500" {
		t.Errorf("index = %q, want S&P 500", rec.IndexName)
	}
	if rec.Price != "4225" {
		t.Errorf("price = %q, want 4225", rec.Price)
	}
	if rec.Change != "+23" {
		t.Errorf("change = %q, want +23", rec.Change)
	}
	if rec.ChangePercent != "+0.5" {
		t.Errorf("change percent = %q, want +0.5", rec.ChangePercent)
	}
	if rec.Session != "CLOSING" {
		t.Errorf("session = %q, want CLOSING", rec.Session)
	}
	assertOrder(t, rec.StandardizedQuote, "S&P 500", "@ 4225", "+23 pts", "(+0.5%)")
}

func TestDetailed_DowJonesDown(t *testing.T) {
	rec := Detailed("The Dow Jones is down 58 points in afternoon trading")
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.IndexName != "DOW" {
		t.Errorf("index = %q, want DOW", rec.IndexName)
	}
	if rec.Change != "-58" {
		t.Errorf("change = %q, want -58", rec.Change)
	}
}

func TestDetailed_BareDownIsNotDow(t *testing.T) {
	if rec := Detailed("the market is down 58 points across the board"); rec != nil {
		t.Errorf("bare 'down' must not produce a DOW record, got %+v", rec)
	}
}

func TestDetailed_SNPCorrection(t *testing.T) {
	rec := Detailed("SNP 500 currently at 4,250")
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.IndexName != "S&P 500" {
		t.Errorf("index = %q, want S&P 500", rec.IndexName)
	}
	if rec.Price != "4250" {
		t.Errorf("price = %q, want 4250", rec.Price)
	}
}

func TestDetailed_NoIndexReturnsNil(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"the weather is sunny and mild today",
		"earnings season starts next week",
	} {
		if rec := Detailed(in); rec != nil {
			t.Errorf("Detailed(%q) = %+v, want nil", in, rec)
		}
	}
}

func TestDetailed_MultiIndex(t *testing.T) {
	rec := Detailed("S&P up 12 points NASDAQ up 2% tech driving Russell lagging")
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.IndexName != "S&P 500" {
		t.Errorf("primary index = %q, want S&P 500", rec.IndexName)
	}
	frags := strings.Split(rec.StandardizedQuote, "; ")
	if len(frags) != 3 {
		t.Fatalf("expected 3 fragments, got %d: %q", len(frags), rec.StandardizedQuote)
	}
	if !strings.Contains(frags[1], "NASDAQ") || !strings.Contains(frags[1], "TECH DRIVING") {
		t.Errorf("NASDAQ fragment missing TECH DRIVING: %q", frags[1])
	}
	if !strings.Contains(frags[2], "RUSSELL 2000") || !strings.Contains(frags[2], "LAGGING") {
		t.Errorf("Russell fragment missing LAGGING: %q", frags[2])
	}
	if !strings.Contains(frags[0], "+12 pts") {
		t.Errorf("S&P fragment missing its point change: %q", frags[0])
	}
	if !strings.Contains(frags[1], "(+2%)") {
		t.Errorf("NASDAQ fragment missing its percentage: %q", frags[1])
	}
}

func TestDetailed_SpokenNumbers(t *testing.T) {
	rec := Detailed("S&P 500 trading at forty-two twenty-five")
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.Price != "4225" {
		t.Errorf("price = %q, want 4225", rec.Price)
	}
}

func TestDetailed_SpacedSpokenPrice(t *testing.T) {
	// Recognizers rarely hyphenate compound numbers; the spaced form has to
	// survive the whole pipeline, not just the hyphenated one.
	rec := Detailed("the SNP 500 is trading at forty two twenty five up 23 points at the close")
	if rec == nil {
		t.Fatal("expected a record")
	}
	if rec.IndexName != "S&P 500" {
		t.Errorf("index = %q, want S&P 500", rec.IndexName)
	}
	if rec.Price != "4225" {
		t.Errorf("price = %q, want 4225", rec.Price)
	}
	if rec.Change != "+23" {
		t.Errorf("change = %q, want +23", rec.Change)
	}
	if rec.Session != "CLOSING" {
		t.Errorf("session = %q, want CLOSING", rec.Session)
	}
}

func TestDetailed_MultiIndexFlag(t *testing.T) {
	multi := Detailed("S&P up 12 points NASDAQ up 2%")
	if multi == nil || !multi.MultiIndex {
		t.Errorf("expected MultiIndex set for two indices, got %+v", multi)
	}
	single := Detailed("S&P 500 at 4,225")
	if single == nil || single.MultiIndex {
		t.Errorf("expected MultiIndex unset for one index, got %+v", single)
	}
}

func TestSimple(t *testing.T) {
	index, price, ok := Simple("NASDAQ currently at 14,210, up 120 points")
	if !ok {
		t.Fatal("expected ok")
	}
	if index != "NASDAQ" || price != "14210" {
		t.Errorf("got (%q, %q), want (NASDAQ, 14210)", index, price)
	}

	// Price missing: the simple view reports failure even though the
	// detailed record would still carry the index.
	if _, _, ok := Simple("NASDAQ up 120 points"); ok {
		t.Error("expected ok=false without a price")
	}

	if _, _, ok := Simple("no market content here"); ok {
		t.Error("expected ok=false without an index")
	}
}
