package justetf

import (
	"context"
	"testing"

	"github.com/etnz/etfup"
	"github.com/google/go-cmp/cmp"
)

func TestAPIHoldings(t *testing.T) {
	tests := []struct {
		name    string
		servlet string
		want    []etfup.Holding
		kind    string
	}{
		{
			name: "top holdings",
			servlet: `{
				"holdings": [{"name": "ignored", "ticker": "IGN", "weight": 50}],
				"topHoldings": [
					{"name": "NVIDIA Corp.", "ticker": "NVDA", "weight": 7.514},
					{"name": "Cash", "ticker": "", "weight": 0},
					{"name": "Apple Inc.", "symbol": "AAPL", "percentage": "6,2"}
				]
			}`,
			want: []etfup.Holding{
				{Ticker: "NVDA", Name: "NVIDIA Corp.", Weight: 7.51},
				{Ticker: "AAPL", Name: "Apple Inc.", Weight: 6.2},
			},
		},
		{
			name:    "holdings",
			servlet: `{"topHoldings": [], "holdings": [{"description": "Microsoft", "isin": "US5949181045", "weight": 5.1}]}`,
			want:    []etfup.Holding{{Ticker: "US5949181045", Name: "Microsoft", Weight: 5.1}},
		},
		{
			name:    "any weighted list",
			servlet: `{"alpha": [1, 2], "constituents": [{"name": "Broadcom", "ticker": "AVGO", "weight": 2.45}]}`,
			want:    []etfup.Holding{{Ticker: "AVGO", Name: "Broadcom", Weight: 2.45}},
		},
		{name: "none", servlet: `{"performance": {}}`, kind: "NoDataFound"},
		{name: "all invalid", servlet: `{"topHoldings": [{"name": "X", "weight": "n/a"}]}`, kind: "InvalidNumeric"},
		{name: "not an object", servlet: `[1, 2]`, kind: "MalformedResponse"},
		{name: "not json", servlet: `<html>`, kind: "MalformedResponse"},
		{name: "down", servlet: "", kind: "SourceUnavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := site(t, tt.servlet, "")
			got, err := NewAPI(c).Holdings(context.Background(), cspx)
			if k := etfup.Kind(err); k != tt.kind {
				t.Fatalf("Holdings() error = %v want kind %q", err, tt.kind)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Holdings() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAPIHoldingsTopN(t *testing.T) {
	c, _ := site(t, `{"topHoldings": [
		{"name": "A", "ticker": "A", "weight": 3},
		{"name": "B", "ticker": "B", "weight": 2},
		{"name": "C", "ticker": "C", "weight": 1}
	]}`, "")
	c.TopN = 2
	got, err := NewAPI(c).Holdings(context.Background(), cspx)
	if err != nil || len(got) != 2 || got[1].Ticker != "B" {
		t.Errorf("Holdings() = %v, %v want A and B", got, err)
	}
}

func TestAPIReturns(t *testing.T) {
	tests := []struct {
		name    string
		servlet string
		want    map[etfup.Period]etfup.Return
		kind    string
	}{
		{
			name:    "object of fractions",
			servlet: `{"performance": {"1m": 0.021, "1 year": 0.183, "ytd": 0.05, "5y": null}}`,
			want:    map[etfup.Period]etfup.Return{etfup.OneMonth: etfup.R(2.1), etfup.OneYear: etfup.R(18.3)},
		},
		{
			name: "list of records",
			servlet: `{"performance": {"ytd": 0.1}, "returns": [
				{"period": "3 months", "value": "-0.004"},
				{"label": "3Y", "return": 0.5},
				{"period": "6M", "value": null}
			]}`,
			want: map[etfup.Period]etfup.Return{etfup.ThreeMonths: etfup.R(-0.4), etfup.ThreeYears: etfup.R(50)},
		},
		{
			name:    "later path",
			servlet: `{"totalReturn": {"5 years": 1.0449}}`,
			want:    map[etfup.Period]etfup.Return{etfup.FiveYears: etfup.R(104.5)},
		},
		{
			name:    "colliding labels",
			servlet: `{"performance": {"1y": 0.10, "12m": 0.20, "1 year": 0.30, "1Y": 0.40, "6 months": 0.05, "6mo": 0.06}}`,
			want:    map[etfup.Period]etfup.Return{etfup.OneYear: etfup.R(40), etfup.SixMonths: etfup.R(5)},
		},
		{
			name:    "colliding records",
			servlet: `{"returns": [{"period": "1y", "value": 0.1}, {"period": "1Y", "value": 0.2}]}`,
			want:    map[etfup.Period]etfup.Return{etfup.OneYear: etfup.R(10)},
		},
		{name: "none", servlet: `{"performance": {"ytd": 0.1}}`, kind: "NoDataFound"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := site(t, tt.servlet, "")
			got, err := NewAPI(c).Returns(context.Background(), cspx)
			if k := etfup.Kind(err); k != tt.kind {
				t.Fatalf("Returns() error = %v want kind %q", err, tt.kind)
			}
			var want etfup.Returns
			for p, r := range tt.want {
				want.Set(p, r)
			}
			if got != want {
				t.Errorf("Returns() = %v want %v", got, want)
			}
		})
	}
}

func TestAPIReturnsStable(t *testing.T) {
	c, _ := site(t, `{"performance": {"1y": 0.10, "12m": 0.20, "1 year": 0.30, "3 years": 0.5, "3y": 0.6}}`, "")
	first, err := NewAPI(c).Returns(context.Background(), cspx)
	if err != nil {
		t.Fatalf("Returns() unexpected error: %v", err)
	}
	for i := 0; i < 50; i++ {
		got, err := NewAPI(c).Returns(context.Background(), cspx)
		if err != nil || got != first {
			t.Fatalf("Returns() = %v, %v want always %v", got, err, first)
		}
	}
	// no canonical spelling: the first label in sorted order wins.
	if got := first.Get(etfup.OneYear); got != etfup.R(30) {
		t.Errorf("1Y = %v want +30.0%% (from \"1 year\")", got)
	}
}
