// Package document serializes snapshot data into the blocks embedded in the
// comparison page, and patches those blocks into the page.
//
// A block is a javascript constant whose value is a JSON object literal:
//
//	const ETF_RETURNS = {
//	  "CSPX": { "1M":   2.1, "3M":  null, ... }
//	};
//
// Keeping the value valid JSON makes every block parseable back into data.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/etfup"
)

// Names of the blocks embedded in the page.
const (
	HoldingsBlock     = "RAW_HOLDINGS"
	ETFReturnsBlock   = "ETF_RETURNS"
	StockReturnsBlock = "HOLDING_RETURNS"
)

// Block is a freshly serialized embedded-data block.
type Block struct {
	Name string
	Body string // the whole "const NAME = {...};" statement
}

// IsZero reports whether b carries nothing to patch.
func (b Block) IsZero() bool { return b.Body == "" }

// Encoder serializes snapshot sections in a canonical order.
//
// Keys are always written in the order of Instruments and Stocks, whatever the
// order data was discovered in, so that unchanged data serializes byte for byte
// the same.
type Encoder struct {
	Instruments []string // instrument codes in page order
	Stocks      []string // stock document keys in page order
}

// NewEncoder returns an encoder in the page order of a configuration.
func NewEncoder(cfg etfup.Config) Encoder {
	return Encoder{Instruments: cfg.InstrumentCodes(), Stocks: cfg.StockKeys()}
}

// Holdings serializes the holdings of every instrument. An instrument without holdings is an empty list.
func (e Encoder) Holdings(holdings map[string][]etfup.Holding) Block {
	var b strings.Builder
	fmt.Fprintf(&b, "const %s = {\n", HoldingsBlock)
	for i, code := range e.Instruments {
		hs := holdings[code]
		if len(hs) == 0 {
			fmt.Fprintf(&b, "  %s: []%s\n", quote(code), sep(i, len(e.Instruments)))
			continue
		}
		fmt.Fprintf(&b, "  %s: [\n", quote(code))
		for j, h := range hs {
			fmt.Fprintf(&b, "    { \"ticker\": %s, \"name\": %s, \"weight\": %5.2f }%s\n",
				quote(h.Ticker), quote(h.Name), h.Weight, sep(j, len(hs)))
		}
		fmt.Fprintf(&b, "  ]%s\n", sep(i, len(e.Instruments)))
	}
	b.WriteString("};")
	return Block{Name: HoldingsBlock, Body: b.String()}
}

// ETFReturns serializes the returns of every instrument.
func (e Encoder) ETFReturns(returns map[string]etfup.Returns) Block {
	return Block{Name: ETFReturnsBlock, Body: encodeReturns(ETFReturnsBlock, e.Instruments, returns, 5)}
}

// StockReturns serializes the returns of every stock.
func (e Encoder) StockReturns(returns map[string]etfup.Returns) Block {
	return Block{Name: StockReturnsBlock, Body: encodeReturns(StockReturnsBlock, e.Stocks, returns, 7)}
}

// encodeReturns writes one line per key, with every canonical period. Missing
// values are written as null, padded to the width of a value.
func encodeReturns(name string, keys []string, returns map[string]etfup.Returns, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "const %s = {\n", name)
	for i, key := range keys {
		r := returns[key] // absent keys are all missing
		parts := make([]string, 0, len(etfup.Periods()))
		for _, p := range etfup.Periods() {
			v := r.Get(p)
			if !v.Valid {
				parts = append(parts, fmt.Sprintf("%q: %*s", p, width, "null"))
				continue
			}
			parts = append(parts, fmt.Sprintf("%q: %*.1f", p, width, v.Value))
		}
		fmt.Fprintf(&b, "  %s: { %s }%s\n", quote(key), strings.Join(parts, ", "), sep(i, len(keys)))
	}
	b.WriteString("};")
	return b.String()
}

// quote writes s as a JSON string that is also safe inside an html script:
// '<', '>' and '&' are escaped by encoding/json, '/' is escaped here so that no
// value can ever spell a region placeholder or a closing tag.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(s) // strings always encode
	q := strings.TrimSuffix(buf.String(), "\n")
	return strings.ReplaceAll(q, "/", `\/`)
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}
