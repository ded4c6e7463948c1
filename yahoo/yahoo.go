// Package yahoo reads daily closing prices from Yahoo Finance.
//
// A single symbol is read from the chart endpoint. Many symbols are read in one
// go from the spark endpoint, in chunks fetched concurrently.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/etnz/etfup"
	"github.com/etnz/etfup/date"
	log "github.com/sirupsen/logrus"
)

// DefaultBaseURL is the Yahoo Finance query host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// chunkSize is the number of symbols the spark endpoint accepts per request.
const chunkSize = 20

// Client is a Yahoo Finance price source. It implements etfup.BatchPriceSource.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client using the given http client.
func New(client *http.Client) *Client {
	return &Client{BaseURL: DefaultBaseURL, HTTP: client}
}

func (*Client) Name() string { return "yahoo" }

/*
Both endpoints share the series shape:

	{
	    "meta": {"symbol": "AAPL", "gmtoffset": -14400, ...},
	    "timestamp": [1696253400, ...],
	    "indicators": {
	        "quote": [{"close": [173.75, null, ...]}],
	        "adjclose": [{"adjclose": [172.65, null, ...]}]
	    }
	}
*/
type series struct {
	Meta struct {
		Symbol    string `json:"symbol"`
		GMTOffset int    `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// history converts a series into daily closes.
//
// Adjusted closes are preferred over closes. Null points are skipped. Days are
// taken in the exchange's timezone.
func (s series) history() *date.History[float64] {
	var closes []*float64
	if len(s.Indicators.AdjClose) > 0 && len(s.Indicators.AdjClose[0].AdjClose) == len(s.Timestamp) {
		closes = s.Indicators.AdjClose[0].AdjClose
	} else if len(s.Indicators.Quote) > 0 {
		closes = s.Indicators.Quote[0].Close
	}
	loc := time.FixedZone("exchange", s.Meta.GMTOffset)
	h := new(date.History[float64])
	for i, ts := range s.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		h.Append(date.Of(time.Unix(ts, 0).In(loc)), *closes[i])
	}
	return h
}

func rangeOf(years int) string { return fmt.Sprintf("%dy", years) }

// History reads the daily closes of one symbol from the chart endpoint.
func (c *Client) History(ctx context.Context, symbol string, years int) (*date.History[float64], error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.BaseURL, url.PathEscape(symbol), url.Values{
		"range":    {rangeOf(years)},
		"interval": {"1d"},
	}.Encode())

	var payload struct {
		Chart struct {
			Result []series   `json:"result"`
			Error  *apiError `json:"error"`
		} `json:"chart"`
	}
	if err := etfup.GetJSON(ctx, c.HTTP, addr, &payload); err != nil {
		return nil, err
	}
	if e := payload.Chart.Error; e != nil {
		return nil, fmt.Errorf("yahoo chart %s: %s %s: %w", symbol, e.Code, e.Description, etfup.ErrNoData)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: no result: %w", symbol, etfup.ErrNoData)
	}
	h := payload.Chart.Result[0].history()
	if h.Len() == 0 {
		return nil, fmt.Errorf("yahoo chart %s: empty series: %w", symbol, etfup.ErrNoData)
	}
	return h, nil
}

// Batch reads the daily closes of many symbols from the spark endpoint.
//
// Symbols are split in chunks fetched concurrently. Batch fails only if no
// chunk returned any series; symbols of a failed chunk, or unknown to Yahoo,
// are absent from the result.
func (c *Client) Batch(ctx context.Context, symbols []string, years int) (map[string]*date.History[float64], error) {
	var chunks [][]string
	for start := 0; start < len(symbols); start += chunkSize {
		chunks = append(chunks, symbols[start:min(start+chunkSize, len(symbols))])
	}

	results := make([]map[string]*date.History[float64], len(chunks))
	errs := make([]error, len(chunks))
	var wg sync.WaitGroup
	for i, chunk := range chunks {
		i, chunk := i, chunk
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = c.spark(ctx, chunk, years)
		}()
	}
	wg.Wait()

	all := make(map[string]*date.History[float64], len(symbols))
	var lastErr error
	for i, r := range results {
		if errs[i] != nil {
			log.Warnf("yahoo spark chunk %d/%d failed: %v", i+1, len(chunks), errs[i])
			lastErr = errs[i]
			continue
		}
		for sym, h := range r {
			all[sym] = h
		}
	}
	if len(all) == 0 {
		if lastErr == nil {
			lastErr = fmt.Errorf("yahoo spark: no series for %d symbols: %w", len(symbols), etfup.ErrNoData)
		}
		return nil, lastErr
	}
	return all, nil
}

// spark fetches one chunk of symbols.
func (c *Client) spark(ctx context.Context, symbols []string, years int) (map[string]*date.History[float64], error) {
	addr := fmt.Sprintf("%s/v7/finance/spark?%s", c.BaseURL, url.Values{
		"symbols":  {strings.Join(symbols, ",")},
		"range":    {rangeOf(years)},
		"interval": {"1d"},
	}.Encode())

	var payload struct {
		Spark struct {
			Result []struct {
				Symbol   string   `json:"symbol"`
				Response []series `json:"response"`
			} `json:"result"`
			Error *apiError `json:"error"`
		} `json:"spark"`
	}
	if err := etfup.GetJSON(ctx, c.HTTP, addr, &payload); err != nil {
		return nil, err
	}
	if e := payload.Spark.Error; e != nil {
		return nil, fmt.Errorf("yahoo spark: %s %s: %w", e.Code, e.Description, etfup.ErrMalformedResponse)
	}
	out := make(map[string]*date.History[float64], len(symbols))
	for _, r := range payload.Spark.Result {
		if len(r.Response) == 0 {
			continue
		}
		if h := r.Response[0].history(); h.Len() > 0 {
			out[r.Symbol] = h
		}
	}
	return out, nil
}
