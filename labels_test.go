package etfup

import "testing"

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		raw    string
		want   Period
		wantOk bool
	}{
		{"1M", OneMonth, true},
		{"1 month", OneMonth, true},
		{" 3  Months ", ThreeMonths, true},
		{"6mo", SixMonths, true},
		{"1Y", OneYear, true},
		{"12M", OneYear, true},
		{"1 Year", OneYear, true},
		{"3-year", ThreeYears, true},
		{"5 YEARS", FiveYears, true},
		{"YTD", 0, false},
		{"10y", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := NormalizeLabel(tt.raw)
		if ok != tt.wantOk || (ok && got != tt.want) {
			t.Errorf("NormalizeLabel(%q) = %v, %v want %v, %v", tt.raw, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	for _, p := range Periods() {
		got, err := ParsePeriod(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePeriod(%q) = %v, %v want %v", p.String(), got, err, p)
		}
	}
	if _, err := ParsePeriod("1 year"); err == nil {
		t.Errorf("ParsePeriod(%q) want error", "1 year")
	}
}
