package extract

import "testing"

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"at comma grouped", "S&P 500 is currently at 4,225 today", "4225", true},
		{"at sign", "NASDAQ @ 14,210 this morning", "14210", true},
		{"at bare digits", "the index is at 4500 now", "4500", true},
		{"now at decimal", "Russell now at 950.5 in early trade", "950.5", true},
		{"trailing number", "S&P 500 trading 4250", "4250", true},
		{"dollar sign stripped", "at $4,225 even", "4225", true},
		{"too few digits", "the index is at 23 right here", "", false},
		{"small change not price", "up 58 points on the day", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractPrice(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("extractPrice(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPriceAcceptable(t *testing.T) {
	tests := []struct {
		cand string
		want bool
	}{
		{"4225", true},
		{"14210.5", true},
		{"950.5", true},
		{"23", false},
		{"2.5", false},
		{"999", false},
	}
	for _, tt := range tests {
		if got := priceAcceptable(tt.cand); got != tt.want {
			t.Errorf("priceAcceptable(%q) = %v, want %v", tt.cand, got, tt.want)
		}
	}
}

func TestExtractSessionBounds(t *testing.T) {
	f := ExtractFields("NASDAQ at 14,220 with a session high 14,250.5 and session low of 14,198")
	if f.SessionHigh != "14250.5" {
		t.Errorf("session high = %q, want 14250.5", f.SessionHigh)
	}
	if f.SessionLow != "14198" {
		t.Errorf("session low = %q, want 14198", f.SessionLow)
	}
}

func TestExtractChange(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"up points", "the index is up 23 points today", "+23", true},
		{"down points", "Dow Jones is down 58 points", "-58", true},
		{"falling decimal", "falling 12.5 points at the open", "-12.5", true},
		{"gaining pts", "gaining 40 pts in late trade", "+40", true},
		{"short form", "S&P up 15 this morning", "+15", true},
		{"short form at sentence end", "S&P 500 at 4,225, up 15. The rally continues", "+15", true},
		{"short form decimal belongs to percent", "the index is up 0.5 percent", "", false},
		{"breakout phrasing", "up 35 breaking above resistance", "+35", true},
		{"index magnitude rejected", "up 1500 points is impossible", "", false},
		{"percent is not points", "up 2% on the day", "", false},
		{"no change", "the S&P 500 is quiet", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractChange(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("extractChange(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExtractChangePercent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"up percent word", "up 0.5 percent on the close", "+0.5", true},
		{"down percent sign", "down 2% in afternoon trade", "-2", true},
		{"signed respected", "moved +1.2% after the open", "+1.2", true},
		{"trailing percent context", "heading down at the open, 2%", "-2", true},
		{"percent then direction", "2 percent higher on the day", "+2", true},
		{"no percent", "up 23 points only", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractChangePercent(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("extractChangePercent(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExtractSession(t *testing.T) {
	tests := []struct {
		name string
		in   string
		high string
		low  string
		want string
	}{
		{"closing", "strong closing session", "", "", "CLOSING"},
		{"closed", "the index closed at 4225", "", "", "CLOSING"},
		{"premarket", "premarket futures point higher", "", "", "PREMARKET"},
		{"session high text", "touched a session high this hour", "", "", "SESSION HIGH"},
		{"session high value", "strong morning", "4250", "", "SESSION HIGH"},
		{"session low value", "weak morning", "", "4198", "SESSION LOW"},
		{"overnight", "overnight trading in Asia", "", "", "OVERNIGHT"},
		{"closing beats overnight", "overnight session then a strong close", "", "", "CLOSING"},
		{"none", "midmorning update", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractSession(tt.in, tt.high, tt.low); got != tt.want {
				t.Errorf("extractSession(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSignFromContext_DefaultPositive(t *testing.T) {
	// Sign inference scans a short window before the number; with no
	// direction word in range the sign defaults to positive.
	if got := signFromContext("the quiet index moved 3", 22); got != "+" {
		t.Errorf("expected default positive sign, got %q", got)
	}
	if got := signFromContext("the index is lower at 3", 22); got != "-" {
		t.Errorf("expected negative sign from 'lower', got %q", got)
	}
}
