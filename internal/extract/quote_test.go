package extract

import "testing"

func TestDetailed_QuoteAssembly(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"futures premarket",
			"S&P 500 futures in premarket trading at 4,180",
			"S&P 500 FUTURES PREMARKET @ 4180",
		},
		{
			"session high value suppresses tag",
			"NASDAQ at 14,220 with session high 14,250",
			"NASDAQ @ 14220 SESSION HIGH 14250",
		},
		{
			"dax sharply lower before price",
			"DAX sharply lower at 15,850, down 280 points, down 1.8 percent",
			"DAX SHARPLY LOWER @ 15850 -280 pts (-1.8%)",
		},
		{
			"dax sharply lower before percent when no price",
			"DAX sharply lower today, 1.8 percent lower",
			"DAX SHARPLY LOWER (-1.8%)",
		},
		{
			"200 dma breakout",
			"S&P 500 breaking above the 200-day moving average at 4,460, up 35 points",
			"S&P 500 @ 4460 +35 pts BREAKING ABOVE 200-DMA",
		},
		{
			"tech driving nasdaq",
			"NASDAQ at 14,210, up 120 points with tech driving gains",
			"NASDAQ @ 14210 +120 pts TECH DRIVING",
		},
		{
			"russell primary lagging",
			"Russell 2000 at 1,850 lagging the broader market",
			"RUSSELL 2000 @ 1850 LAGGING",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Detailed(tt.in)
			if rec == nil {
				t.Fatalf("Detailed(%q) = nil", tt.in)
			}
			if rec.StandardizedQuote != tt.want {
				t.Errorf("quote = %q, want %q", rec.StandardizedQuote, tt.want)
			}
		})
	}
}

func TestAssembleSingle_SessionLowValue(t *testing.T) {
	f := Fields{Price: "15850", SessionLow: "15790", Session: "SESSION LOW"}
	got := AssembleSingle("dax touched a session low 15,790 at 15,850", "DAX", f)
	want := "DAX @ 15850 SESSION LOW 15790"
	if got != want {
		t.Errorf("quote = %q, want %q", got, want)
	}
}
