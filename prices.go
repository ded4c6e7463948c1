package etfup

import (
	"context"
	"fmt"

	"github.com/etnz/etfup/date"
	log "github.com/sirupsen/logrus"
)

// PriceSource is a historical price service returning daily closing prices.
type PriceSource interface {
	Name() string
	// History returns the daily closes of symbol over the last years.
	History(ctx context.Context, symbol string, years int) (*date.History[float64], error)
}

// BatchPriceSource is a PriceSource able to fetch many symbols in a single request.
//
// Batch fails only when the whole batch failed. Symbols it could not serve are
// simply absent from the result.
type BatchPriceSource interface {
	PriceSource
	Batch(ctx context.Context, symbols []string, years int) (map[string]*date.History[float64], error)
}

// PriceReturns is the last-resort returns tier: it computes the returns of an
// instrument from its price history.
type PriceReturns struct {
	Source PriceSource
	Days   map[Period]int
	Years  int
}

func (t PriceReturns) Name() string { return "prices:" + t.Source.Name() }

func (t PriceReturns) Returns(ctx context.Context, inst Instrument) (Returns, error) {
	if inst.Symbol == "" {
		return Returns{}, fmt.Errorf("%s has no price symbol: %w", inst.Code, ErrNoData)
	}
	series, err := t.Source.History(ctx, inst.Symbol, t.Years)
	if err != nil {
		return Returns{}, err
	}
	if series.Len() == 0 {
		return Returns{}, fmt.Errorf("empty price history for %s: %w", inst.Symbol, ErrNoData)
	}
	return PeriodChanges(series, t.Days), nil
}

// StockReturns computes the returns of every stock from its price history.
//
// When src supports it, all histories are fetched in one batch. If the batch
// fails outright, or src has no batch support, histories are fetched one
// symbol at a time. A stock whose history cannot be obtained gets all periods
// missing; it never affects the other stocks.
//
// The result has one entry per stock, keyed by document key.
func StockReturns(ctx context.Context, src PriceSource, stocks []Stock, days map[Period]int, years int) map[string]Returns {
	symbols := make([]string, len(stocks))
	for i, s := range stocks {
		symbols[i] = s.Symbol
	}

	var series map[string]*date.History[float64]
	if b, ok := src.(BatchPriceSource); ok && len(symbols) > 0 {
		var err error
		series, err = b.Batch(ctx, symbols, years)
		if err != nil {
			log.Warnf("batch download from %s failed (%v), falling back to individual requests", src.Name(), err)
			series = nil
		}
	}
	if series == nil {
		series = make(map[string]*date.History[float64], len(symbols))
		for _, sym := range symbols {
			h, err := src.History(ctx, sym, years)
			if err != nil {
				log.WithField("ticker", sym).Warnf("%s: %v", Kind(err), err)
				continue
			}
			series[sym] = h
		}
	}

	results := make(map[string]Returns, len(stocks))
	for _, s := range stocks {
		h := series[s.Symbol]
		if h.Len() == 0 {
			log.WithField("ticker", s.Symbol).Warn("no price history")
			results[s.DocKey()] = Returns{}
			continue
		}
		r := PeriodChanges(h, days)
		log.WithField("ticker", s.Symbol).Debug(r)
		results[s.DocKey()] = r
	}
	return results
}
