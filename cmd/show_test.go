package cmd

import (
	"strings"
	"testing"

	"github.com/etnz/etfup"
)

func TestSummaryLegacyHoldings(t *testing.T) {
	cfg := etfup.DefaultConfig()
	cfg.Instruments = []etfup.Instrument{{Code: "CSPX", ISIN: "IE00B5BMR087"}}
	cfg.Stocks = []etfup.Stock{{Symbol: "NVDA"}}

	// holdings still written with unquoted keys, returns already migrated.
	doc := []byte(`<script>
const RAW_HOLDINGS = {
  CSPX: [ { ticker: "NVDA", name: "NVIDIA", weight: 7.51 } ]
};
/* etfup:begin ETF_RETURNS */
const ETF_RETURNS = {
  "CSPX": { "1M":   2.1, "3M":  null, "6M":  null, "1Y":  18.3, "3Y":  null, "5Y":  null }
};
/* etfup:end ETF_RETURNS */
</script>`)

	got := summary(cfg, doc)
	if strings.Contains(got, "## Holdings") {
		t.Errorf("summary() printed unparsable holdings:\n%s", got)
	}
	for _, want := range []string{"## ETF returns", "| CSPX | +2.1% |", "+18.3%"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary() is missing %q:\n%s", want, got)
		}
	}
}

func TestSummaryHoldings(t *testing.T) {
	cfg := etfup.DefaultConfig()
	cfg.Instruments = []etfup.Instrument{{Code: "CSPX", ISIN: "IE00B5BMR087"}, {Code: "EQQQ", ISIN: "IE0032077012"}}

	doc := []byte(`const RAW_HOLDINGS = {
  "CSPX": [ { "ticker": "NVDA", "name": "NVIDIA", "weight":  7.51 } ],
  "EQQQ": []
};`)
	got := summary(cfg, doc)
	for _, want := range []string{"### CSPX", "| NVDA | NVIDIA | 7.51% |", "### EQQQ\n\nnone"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary() is missing %q:\n%s", want, got)
		}
	}
}
