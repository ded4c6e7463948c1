package etfup

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Status is the result class of an acquisition attempt.
type Status int

const (
	// Empty means no tier produced data, or the tier ran but found nothing.
	Empty Status = iota
	// Found means a tier produced usable data.
	Found
	// Failed means the tier failed (network, payload, numbers).
	Failed
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Failed:
		return "failed"
	default:
		return "empty"
	}
}

// Outcome is what an acquisition chain hands back to its caller.
//
// Tier names the tier that produced Value (when Found) or the last tier tried.
// An exhausted chain is Failed if any tier failed, Empty otherwise; its Value is
// the zero value. Err holds the last tier error, for reporting only.
type Outcome[T any] struct {
	Status Status
	Value  T
	Tier   string
	Err    error
}

// HoldingsTier is one strategy to acquire the top holdings of an instrument.
type HoldingsTier interface {
	Name() string
	Holdings(ctx context.Context, inst Instrument) ([]Holding, error)
}

// ReturnsTier is one strategy to acquire the trailing returns of an instrument.
type ReturnsTier interface {
	Name() string
	Returns(ctx context.Context, inst Instrument) (Returns, error)
}

// FetchHoldings runs the tiers in order and returns the first non-empty result.
// It never fails: exhausting the chain yields an outcome with no holdings.
func FetchHoldings(ctx context.Context, inst Instrument, tiers ...HoldingsTier) Outcome[[]Holding] {
	steps := make([]step[[]Holding], len(tiers))
	for i, t := range tiers {
		t := t
		steps[i] = step[[]Holding]{t.Name(), func(ctx context.Context) ([]Holding, error) { return t.Holdings(ctx, inst) }}
	}
	return run(ctx, inst.Code, steps, func(h []Holding) bool { return len(h) > 0 })
}

// FetchReturns runs the tiers in order and returns the first result with at least one valid period.
// It never fails: exhausting the chain yields an outcome with all periods missing.
func FetchReturns(ctx context.Context, inst Instrument, tiers ...ReturnsTier) Outcome[Returns] {
	steps := make([]step[Returns], len(tiers))
	for i, t := range tiers {
		t := t
		steps[i] = step[Returns]{t.Name(), func(ctx context.Context) (Returns, error) { return t.Returns(ctx, inst) }}
	}
	return run(ctx, inst.Code, steps, func(r Returns) bool { return !r.IsEmpty() })
}

type step[T any] struct {
	name  string
	fetch func(context.Context) (T, error)
}

// run is the fallback loop shared by every chain.
func run[T any](ctx context.Context, subject string, steps []step[T], usable func(T) bool) (out Outcome[T]) {
	logger := log.WithField("subject", subject)
	for _, s := range steps {
		v, err := attempt(ctx, s)
		out.Tier = s.name
		switch {
		case err != nil:
			logger.WithField("tier", s.name).Warnf("%s: %v", Kind(err), err)
			out.Status, out.Err = Failed, err
		case !usable(v):
			logger.WithField("tier", s.name).Debug("no usable data")
		default:
			logger.WithField("tier", s.name).Debug("found")
			return Outcome[T]{Status: Found, Value: v, Tier: s.name}
		}
	}
	return out
}

// attempt calls a single tier, turning a panic into an error so that one
// broken tier cannot take the chain down.
func attempt[T any](ctx context.Context, s step[T]) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tier %s panicked: %v: %w", s.name, r, ErrMalformedResponse)
		}
	}()
	return s.fetch(ctx)
}
