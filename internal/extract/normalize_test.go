package extract

import "testing"

func TestFixTranscriptionErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"snp 500", "SNP 500 closed higher", "S&P 500 closed higher"},
		{"snp five hundred", "SNP five hundred rallied", "S&P 500 rallied"},
		{"bare snp", "the SNP is flat", "the S&P is flat"},
		{"ducks", "Ducks sharply lower", "DAX sharply lower"},
		{"vicks", "the Vicks spiked", "the VIX spiked"},
		{"not stack", "the not stack gained", "the NASDAQ gained"},
		{"tau jones", "Tau Jones industrial", "Dow Jones industrial"},
		{"glued up", "up15 points", "up 15 points"},
		{"glued down", "down23 points", "down 23 points"},
		{"magnitude artifact up", "up 50,000,000 today", "up 50 today"},
		{"magnitude artifact down", "down 7,000,000", "down 7"},
		{"app percentage", "NASDAQ app 2% higher", "NASDAQ up 2% higher"},
		{"digit concatenation", "trading at 40 to 5", "trading at 405"},
		{"session law", "hit a Session Law today", "hit a Session Low today"},
		{"laging", "Russell Laging behind", "Russell lagging behind"},
		{"clean text untouched", "S&P 500 at 4,225", "S&P 500 at 4,225"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FixTranscriptionErrors(tt.in); got != tt.want {
				t.Errorf("FixTranscriptionErrors(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeSpokenNumbers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"compound price", "trading at forty-two twenty-five", "trading at 4225"},
		{"compound price spaced", "trading at forty two twenty five", "trading at 4225"},
		{"tens pair plus teen", "near forty-two fifteen", "near 4215"},
		{"tens pair plus teen spaced", "near forty two fifteen", "near 4215"},
		{"tens pair hundred", "around forty-two hundred", "around 4200"},
		{"tens pair hundred spaced", "around forty two hundred", "around 4200"},
		{"standalone tens pair spaced", "up twenty three today", "up 23 today"},
		{"unit hundred", "up five hundred", "up 500"},
		{"point decimal", "up zero point five percent", "up 0.5 percent"},
		{"standalone teen", "gained fifteen points", "gained 15 points"},
		{"standalone tens", "down twenty points", "down 20 points"},
		{"bare unit untouched", "one of the indices", "one of the indices"},
		{"digits untouched", "at 4,225", "at 4,225"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSpokenNumbers(tt.in); got != tt.want {
				t.Errorf("NormalizeSpokenNumbers(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_ChainsErrorAndNumberPasses(t *testing.T) {
	got := Normalize("SNP five hundred up fifteen points")
	want := "S&P 500 up 15 points"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}
