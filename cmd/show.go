package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/etfup"
	"github.com/etnz/etfup/document"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

type showCmd struct {
	doc string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show the data embedded in the comparison page" }
func (*showCmd) Usage() string {
	return `etfup show [-doc <page>]

Parses the embedded data blocks of the page and prints them.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.doc, "doc", DefaultDocument, "page to read")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		return failure("%v", err)
	}
	doc, err := os.ReadFile(c.doc)
	if err != nil {
		return failure("%v", err)
	}
	fmt.Print(render(summary(cfg, doc)))
	return subcommands.ExitSuccess
}

// summary returns the embedded data of doc as markdown. A block that cannot be
// parsed (a page not yet migrated to quoted keys) is skipped with a warning.
func summary(cfg etfup.Config, doc []byte) string {
	var b strings.Builder
	if body, ok := document.Extract(doc, document.HoldingsBlock); ok {
		holdings, err := document.ParseHoldings(body)
		if err != nil {
			log.Warnf("skipping %s: %v", document.HoldingsBlock, err)
		} else {
			writeHoldings(&b, cfg.InstrumentCodes(), holdings)
		}
	}
	for _, block := range []struct {
		name, title string
		keys        []string
	}{
		{document.ETFReturnsBlock, "ETF returns", cfg.InstrumentCodes()},
		{document.StockReturnsBlock, "Stock returns", cfg.StockKeys()},
	} {
		body, ok := document.Extract(doc, block.name)
		if !ok {
			continue
		}
		returns, err := document.ParseReturns(body)
		if err != nil {
			log.Warnf("skipping %s: %v", block.name, err)
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", block.title)
		writeReturns(&b, block.keys, returns)
	}
	return b.String()
}

// writeHoldings writes one markdown table per instrument.
func writeHoldings(b *strings.Builder, codes []string, holdings map[string][]etfup.Holding) {
	b.WriteString("## Holdings\n\n")
	for _, code := range codes {
		fmt.Fprintf(b, "### %s\n\n", code)
		if len(holdings[code]) == 0 {
			b.WriteString("none\n\n")
			continue
		}
		b.WriteString("| Ticker | Name | Weight |\n|---|---|---:|\n")
		for _, h := range holdings[code] {
			fmt.Fprintf(b, "| %s | %s | %s |\n", h.Ticker, h.Name, etfup.Percent(h.Weight))
		}
		b.WriteString("\n")
	}
}

// writeReturns writes a markdown table of returns, one row per key.
func writeReturns(b *strings.Builder, keys []string, returns map[string]etfup.Returns) {
	b.WriteString("|")
	for _, p := range etfup.Periods() {
		fmt.Fprintf(b, " | %s", p)
	}
	b.WriteString(" |\n|---")
	for range etfup.Periods() {
		b.WriteString("|---:")
	}
	b.WriteString("|\n")
	for _, key := range keys {
		fmt.Fprintf(b, "| %s", key)
		r := returns[key]
		for _, p := range etfup.Periods() {
			fmt.Fprintf(b, " | %s", r.Get(p))
		}
		b.WriteString(" |\n")
	}
	b.WriteString("\n")
}
