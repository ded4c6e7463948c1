package etfup

import "github.com/etnz/etfup/date"

// Snapshot is the complete result set of one run.
//
// It is built incrementally while fetching and consumed once by the
// serializer. It is never persisted as such.
type Snapshot struct {
	AsOf         date.Date
	Holdings     map[string][]Holding // by instrument code
	ETFReturns   map[string]Returns   // by instrument code
	StockReturns map[string]Returns   // by stock document key
}

// NewSnapshot returns an empty snapshot as of a given day.
func NewSnapshot(asOf date.Date) *Snapshot {
	return &Snapshot{
		AsOf:         asOf,
		Holdings:     make(map[string][]Holding),
		ETFReturns:   make(map[string]Returns),
		StockReturns: make(map[string]Returns),
	}
}

// HasHoldings reports whether at least one instrument got holdings.
func (s *Snapshot) HasHoldings() bool {
	for _, h := range s.Holdings {
		if len(h) > 0 {
			return true
		}
	}
	return false
}

// HasETFReturns reports whether at least one instrument got a return.
func (s *Snapshot) HasETFReturns() bool { return anyReturns(s.ETFReturns) }

// HasStockReturns reports whether at least one stock got a return.
func (s *Snapshot) HasStockReturns() bool { return anyReturns(s.StockReturns) }

func anyReturns(m map[string]Returns) bool {
	for _, r := range m {
		if !r.IsEmpty() {
			return true
		}
	}
	return false
}
