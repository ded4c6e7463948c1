package etfup

import "strings"

// Instrument is a fund tracked by the page.
type Instrument struct {
	Code   string `yaml:"code"`   // key in the page, e.g. "CSPX"
	ISIN   string `yaml:"isin"`   // used to query fund data sources
	Symbol string `yaml:"symbol"` // price service symbol, e.g. "CSPX.L"
}

// Stock is an individual equity whose returns are embedded in the page.
type Stock struct {
	Symbol string `yaml:"symbol"`        // price service symbol, e.g. "BRK-B"
	Key    string `yaml:"key,omitempty"` // key in the page when it differs from Symbol, e.g. "BRK_B"
}

// DocKey returns the key under which the stock is stored in the page.
func (s Stock) DocKey() string {
	if s.Key != "" {
		return s.Key
	}
	return s.Symbol
}

// Holding is one line of a fund's top holdings.
type Holding struct {
	Ticker string  `json:"ticker"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"` // in percent, > 0, two decimals
}

// FilterHoldings turns raw source candidates into holdings.
//
// Candidates are kept in source order (sources list them by descending weight).
// Weights are rounded to two decimals and candidates whose rounded weight is not
// positive are dropped. At most topN holdings are returned.
func FilterHoldings(candidates []Holding, topN int) []Holding {
	if topN <= 0 {
		return nil
	}
	holdings := make([]Holding, 0, min(len(candidates), topN))
	for _, c := range candidates {
		if len(holdings) >= topN {
			break
		}
		w := Round(c.Weight, 2)
		if !(w > 0) {
			continue
		}
		holdings = append(holdings, Holding{
			Ticker: strings.TrimSpace(c.Ticker),
			Name:   strings.TrimSpace(c.Name),
			Weight: w,
		})
	}
	return holdings
}
