package etfup

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeTier is a holdings and returns tier answering canned results.
type fakeTier struct {
	name     string
	holdings []Holding
	returns  Returns
	err      error
	panics   bool
	calls    int
}

func (f *fakeTier) Name() string { return f.name }

func (f *fakeTier) Holdings(context.Context, Instrument) ([]Holding, error) {
	f.calls++
	if f.panics {
		panic("boom")
	}
	return f.holdings, f.err
}

func (f *fakeTier) Returns(context.Context, Instrument) (Returns, error) {
	f.calls++
	if f.panics {
		var m map[string]int
		m["nil map"]++
	}
	return f.returns, f.err
}

var cspx = Instrument{Code: "CSPX", ISIN: "IE00B5BMR087", Symbol: "CSPX.L"}

func TestFetchHoldingsFallThrough(t *testing.T) {
	down := &fakeTier{name: "down", err: fmt.Errorf("http 503: %w", ErrSourceUnavailable)}
	empty := &fakeTier{name: "empty"}
	good := &fakeTier{name: "good", holdings: []Holding{{Ticker: "NVDA", Name: "NVIDIA", Weight: 7.5}}}
	never := &fakeTier{name: "never", holdings: []Holding{{Ticker: "X", Weight: 1}}}

	got := FetchHoldings(context.Background(), cspx, down, empty, good, never)
	if got.Status != Found || got.Tier != "good" || len(got.Value) != 1 {
		t.Errorf("FetchHoldings() = %+v want found by good", got)
	}
	if never.calls != 0 {
		t.Errorf("tier after a success was called %d times", never.calls)
	}
	if got.Err != nil {
		t.Errorf("FetchHoldings().Err = %v want nil on success", got.Err)
	}
}

func TestFetchReturnsPanic(t *testing.T) {
	broken := &fakeTier{name: "broken", panics: true}
	good := &fakeTier{name: "good", returns: Returns{OneYear: R(18.3)}}

	got := FetchReturns(context.Background(), cspx, broken, good)
	if got.Status != Found || got.Tier != "good" {
		t.Fatalf("FetchReturns() = %+v want found by good", got)
	}
	if got.Value.Get(OneYear) != R(18.3) {
		t.Errorf("1Y = %v want +18.3%%", got.Value.Get(OneYear))
	}
}

func TestFetchExhausted(t *testing.T) {
	tests := []struct {
		name  string
		tiers []*fakeTier
		want  Status
		kind  string
	}{
		{"all empty", []*fakeTier{{name: "a"}, {name: "b"}}, Empty, ""},
		{"one failed", []*fakeTier{{name: "a", err: ErrMalformedResponse}, {name: "b"}}, Failed, "MalformedResponse"},
		{"panic", []*fakeTier{{name: "a", panics: true}}, Failed, "MalformedResponse"},
		{"no tiers", nil, Empty, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiers := make([]ReturnsTier, len(tt.tiers))
			for i, f := range tt.tiers {
				tiers[i] = f
			}
			got := FetchReturns(context.Background(), cspx, tiers...)
			if got.Status != tt.want {
				t.Errorf("FetchReturns().Status = %v want %v", got.Status, tt.want)
			}
			if !got.Value.IsEmpty() {
				t.Errorf("FetchReturns().Value = %v want all missing", got.Value)
			}
			if k := Kind(got.Err); k != tt.kind {
				t.Errorf("Kind(FetchReturns().Err) = %q want %q", k, tt.kind)
			}
		})
	}
}

func TestKind(t *testing.T) {
	wrapped := fmt.Errorf("justetf: %w", fmt.Errorf("parse: %w", ErrInvalidNumeric))
	if got := Kind(wrapped); got != "InvalidNumeric" {
		t.Errorf("Kind() = %q want InvalidNumeric", got)
	}
	if got := Kind(errors.New("other")); got != "Unknown" {
		t.Errorf("Kind() = %q want Unknown", got)
	}
}
