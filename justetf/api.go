package justetf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/etfup"
	log "github.com/sirupsen/logrus"
)

/*
The servlet answers something like (keys vary across funds and over time):

	{
	    "topHoldings": [
	        {"name": "NVIDIA Corp.", "ticker": "NVDA", "weight": 7.51},
	        ...
	    ],
	    "performance": {"1m": 0.021, "3m": -0.004, "1y": 0.183},
	    ...
	}

Returns are fractions: 0.183 is 18.3%.
*/

// Candidate locations of the data in the payload, by priority.
var (
	holdingsPaths = []string{"$.topHoldings", "$.holdings"}
	returnsPaths  = []string{"$.performance", "$.returns", "$.historicPerformance", "$.totalReturn"}
)

// API is the tier reading the site's JSON servlet.
type API struct{ c *Client }

// NewAPI returns the JSON servlet tier.
func NewAPI(c *Client) API { return API{c} }

func (API) Name() string { return "justetf-api" }

// payload fetches the servlet data of a fund.
func (a API) payload(ctx context.Context, isin string) (map[string]any, error) {
	body, err := a.c.get(ctx, "/servlet/etf-and-index-data", url.Values{
		"isin":     {isin},
		"locale":   {"en"},
		"currency": {"USD"},
	})
	if err != nil {
		return nil, err
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("cannot decode servlet data for %s: %v: %w", isin, err, etfup.ErrMalformedResponse)
	}
	obj, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("servlet data for %s is a %T, not an object: %w", isin, data, etfup.ErrMalformedResponse)
	}
	return obj, nil
}

// lookup returns the value at the first path that exists in data.
func lookup(data any, paths []string, accept func(any) bool) (string, any) {
	for _, path := range paths {
		v, err := jsonpath.Get(path, data)
		if err != nil {
			continue // unknown key
		}
		if accept(v) {
			return path, v
		}
	}
	return "", nil
}

func nonEmptyList(v any) bool {
	l, ok := v.([]any)
	return ok && len(l) > 0
}

// Holdings reads the fund's top holdings.
func (a API) Holdings(ctx context.Context, inst etfup.Instrument) ([]etfup.Holding, error) {
	data, err := a.payload(ctx, inst.ISIN)
	if err != nil {
		return nil, err
	}
	path, v := lookup(data, holdingsPaths, nonEmptyList)
	if v == nil {
		path, v = weightedList(data)
	}
	if v == nil {
		return nil, fmt.Errorf("no holdings in servlet data for %s: %w", inst.Code, etfup.ErrNoData)
	}

	var candidates []etfup.Holding
	var errs error
	for _, item := range v.([]any) {
		h, err := holdingOf(item)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		candidates = append(candidates, h)
	}
	holdings := etfup.FilterHoldings(candidates, a.c.TopN)
	if len(holdings) == 0 {
		if errs != nil {
			return nil, fmt.Errorf("no valid holdings at %s for %s: %w", path, inst.Code, errs)
		}
		return nil, fmt.Errorf("no positive holdings at %s for %s: %w", path, inst.Code, etfup.ErrNoData)
	}
	log.WithField("etf", inst.Code).Debugf("%d holdings from %s", len(holdings), path)
	return holdings, nil
}

// weightedList finds a top-level list that looks like holdings: its first
// item mentions a weight. Keys are scanned in sorted order.
func weightedList(data map[string]any) (string, any) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		l, ok := data[k].([]any)
		if !ok || len(l) == 0 {
			continue
		}
		first, ok := l[0].(map[string]any)
		if !ok {
			continue
		}
		for field := range first {
			if strings.Contains(strings.ToLower(field), "weight") {
				return "$." + k, l
			}
		}
	}
	return "", nil
}

// holdingOf decodes one holdings item.
func holdingOf(item any) (etfup.Holding, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return etfup.Holding{}, fmt.Errorf("holding is a %T: %w", item, etfup.ErrMalformedResponse)
	}
	weight, err := etfup.ToFloat(first(m, "weight", "percentage"))
	if err != nil {
		return etfup.Holding{}, fmt.Errorf("holding %v weight: %w", m["name"], err)
	}
	return etfup.Holding{
		Ticker: firstString(m, "ticker", "symbol", "isin"),
		Name:   firstString(m, "name", "description"),
		Weight: weight,
	}, nil
}

// first returns the first non-nil value among keys.
func first(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstString returns the first non-blank string among keys.
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// Returns reads the fund's trailing returns.
//
// The returns may be an object {"1y": 0.183, ...} or a list of records
// [{"period": "1y", "value": 0.183}, ...]; both are read, the first candidate
// location with at least one known period wins.
//
// A period is set once. In a list the first record wins. In an object the
// canonical spelling ("1Y") wins, then the first label in sorted order.
func (a API) Returns(ctx context.Context, inst etfup.Instrument) (etfup.Returns, error) {
	data, err := a.payload(ctx, inst.ISIN)
	if err != nil {
		return etfup.Returns{}, err
	}
	for _, path := range returnsPaths {
		v, err := jsonpath.Get(path, data)
		if err != nil {
			continue
		}
		var r etfup.Returns
		switch perf := v.(type) {
		case map[string]any:
			for _, label := range labelsOf(perf) {
				setFraction(&r, label, perf[label])
			}
		case []any:
			for _, item := range perf {
				rec, ok := item.(map[string]any)
				if !ok {
					continue
				}
				label, _ := first(rec, "period", "label").(string)
				setFraction(&r, label, first(rec, "value", "return"))
			}
		}
		if !r.IsEmpty() {
			log.WithField("etf", inst.Code).Debugf("returns from %s: %v", path, r)
			return r, nil
		}
	}
	return etfup.Returns{}, fmt.Errorf("no returns in servlet data for %s: %w", inst.Code, etfup.ErrNoData)
}

// labelsOf returns the keys of perf, canonical period spellings first, each
// group in sorted order.
func labelsOf(perf map[string]any) []string {
	var canonical, others []string
	for label := range perf {
		if p, ok := etfup.NormalizeLabel(label); ok && label == p.String() {
			canonical = append(canonical, label)
		} else {
			others = append(others, label)
		}
	}
	slices.Sort(canonical)
	slices.Sort(others)
	return append(canonical, others...)
}

// setFraction records a fraction (0.183) as a percent (18.3) if label is a
// known period not yet set.
func setFraction(r *etfup.Returns, label string, raw any) {
	p, ok := etfup.NormalizeLabel(label)
	if !ok || r.Get(p).Valid {
		return
	}
	v, err := etfup.ToFloat(raw)
	if err != nil {
		return
	}
	r.Set(p, etfup.R(v*100))
}
