package etfup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilterHoldings(t *testing.T) {
	candidates := []Holding{
		{Ticker: " NVDA ", Name: "NVIDIA Corp.", Weight: 7.514},
		{Ticker: "CASH", Name: "Cash", Weight: 0},
		{Ticker: "AAPL", Name: " Apple Inc. ", Weight: 6.235},
		{Ticker: "TINY", Name: "Rounds to zero", Weight: 0.004},
		{Ticker: "SHORT", Name: "Short position", Weight: -0.5},
		{Ticker: "MSFT", Name: "Microsoft Corp.", Weight: 5.1},
		{Ticker: "AMZN", Name: "Amazon.com Inc.", Weight: 3.9},
	}
	tests := []struct {
		name string
		topN int
		want []Holding
	}{
		{"all", 15, []Holding{
			{Ticker: "NVDA", Name: "NVIDIA Corp.", Weight: 7.51},
			{Ticker: "AAPL", Name: "Apple Inc.", Weight: 6.24},
			{Ticker: "MSFT", Name: "Microsoft Corp.", Weight: 5.1},
			{Ticker: "AMZN", Name: "Amazon.com Inc.", Weight: 3.9},
		}},
		// dropped candidates do not count towards topN.
		{"top 3", 3, []Holding{
			{Ticker: "NVDA", Name: "NVIDIA Corp.", Weight: 7.51},
			{Ticker: "AAPL", Name: "Apple Inc.", Weight: 6.24},
			{Ticker: "MSFT", Name: "Microsoft Corp.", Weight: 5.1},
		}},
		{"none", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterHoldings(candidates, tt.topN)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FilterHoldings() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterHoldingsEmpty(t *testing.T) {
	if got := FilterHoldings(nil, 15); len(got) != 0 {
		t.Errorf("FilterHoldings(nil) = %v want empty", got)
	}
}

func TestStockDocKey(t *testing.T) {
	if got := (Stock{Symbol: "BRK-B", Key: "BRK_B"}).DocKey(); got != "BRK_B" {
		t.Errorf("DocKey() = %q want BRK_B", got)
	}
	if got := (Stock{Symbol: "NVDA"}).DocKey(); got != "NVDA" {
		t.Errorf("DocKey() = %q want NVDA", got)
	}
}
