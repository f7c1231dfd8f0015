package extract

import "testing"

func TestIdentifyIndices_FirstOccurrenceOrder(t *testing.T) {
	text := "NASDAQ is climbing, Dow Jones down 30 points, NASDAQ again near highs"
	got := IdentifyIndices(text)

	if len(got) != 2 {
		t.Fatalf("expected 2 indices, got %d: %+v", len(got), got)
	}
	if got[0].Canonical != "NASDAQ" {
		t.Errorf("expected NASDAQ first, got %s", got[0].Canonical)
	}
	if got[1].Canonical != "DOW" {
		t.Errorf("expected DOW second, got %s", got[1].Canonical)
	}
	if got[0].Start != 0 {
		t.Errorf("expected NASDAQ recorded at its first occurrence, got offset %d", got[0].Start)
	}
}

func TestIdentifyIndices_DownIsNotDowWithoutJones(t *testing.T) {
	got := IdentifyIndices("the market is down 58 points in afternoon trading")
	if len(got) != 0 {
		t.Errorf("bare 'down' must not match as DOW, got %+v", got)
	}
}

func TestIdentifyIndices_DownNearJonesIsDow(t *testing.T) {
	got := IdentifyIndices("Jones says down 58 points")
	if len(got) != 1 || got[0].Canonical != "DOW" {
		t.Errorf("'down' within the Jones window should resolve to DOW, got %+v", got)
	}
}

func TestIdentifyIndices_SpecificBeatsGeneral(t *testing.T) {
	got := IdentifyIndices("S&P 500 is currently at 4,225")
	if len(got) != 1 {
		t.Fatalf("expected 1 index, got %d: %+v", len(got), got)
	}
	if got[0].Canonical != "S&P 500" {
		t.Errorf("expected S&P 500, got %s", got[0].Canonical)
	}
	if got[0].Raw != "S&P 500" {
		t.Errorf("expected the full match recorded, got %q", got[0].Raw)
	}
}

func TestIdentifyIndices_SAndPVariants(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"with 500", "the S and P 500 gained today"},
		{"bare", "the S and P gained today"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IdentifyIndices(tt.in)
			if len(got) != 1 || got[0].Canonical != "S&P 500" {
				t.Errorf("IdentifyIndices(%q) = %+v, want one S&P 500 match", tt.in, got)
			}
		})
	}
}

func TestIdentifyIndices_NoIndex(t *testing.T) {
	if got := IdentifyIndices("the weather is sunny and mild today"); len(got) != 0 {
		t.Errorf("expected no matches, got %+v", got)
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Ducks", "DAX"},
		{"Vicks", "VIX"},
		{"not stack", "NASDAQ"},
		{"Nasdaq Composite", "NASDAQ"},
		{"S&P", "S&P 500"},
		{"S&P 500", "S&P 500"},
		{"snp", "S&P 500"},
		{"S and P 500", "S&P 500"},
		{"Dow Jones", "DOW"},
		{"down", "DOW"},
		{"Russell", "RUSSELL 2000"},
		{"Hang Seng", "HANG SENG"},
		{"Shanghai", "SHANGHAI COMP"},
		{"dax", "DAX"},
		{"ftse", "FTSE"},
		{"Nikkei", "NIKKEI"},
		{"CAC 40", "CAC 40"},
		{"CAC40", "CAC 40"},
		{"wilshire", "WILSHIRE"},
	}
	for _, tt := range tests {
		if got := Canonicalize(tt.raw); got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	for _, name := range []string{
		"S&P 500", "DOW", "NASDAQ", "RUSSELL 2000", "DAX", "VIX",
		"HANG SENG", "SHANGHAI COMP", "FTSE", "NIKKEI", "CAC 40",
	} {
		if got := Canonicalize(name); got != name {
			t.Errorf("Canonicalize(%q) = %q, expected it unchanged", name, got)
		}
	}
}
