package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/etfup"
	"github.com/google/subcommands"
)

type returnsCmd struct {
	priceFlags
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "compute trailing returns of tickers from the price service" }
func (*returnsCmd) Usage() string {
	return `etfup returns [-prices yahoo|eodhd] <symbol...>

Computes the 1M, 3M, 6M, 1Y, 3Y and 5Y returns of any symbol known to the
price service, the same way the page's stock returns are computed.
`
}

func (c *returnsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Println("at least one symbol is required")
		return subcommands.ExitUsageError
	}
	cfg, err := LoadConfig()
	if err != nil {
		return failure("%v", err)
	}
	prices, err := c.source(etfup.NewHTTPClient(cfg.Timeout, c.cache))
	if err != nil {
		return failure("%v", err)
	}

	stocks := make([]etfup.Stock, f.NArg())
	for i, s := range f.Args() {
		stocks[i] = etfup.Stock{Symbol: s}
	}
	returns := etfup.StockReturns(ctx, prices, stocks, cfg.Days(), cfg.LookbackYears)

	var b strings.Builder
	writeReturns(&b, f.Args(), returns)
	fmt.Print(render(b.String()))
	return subcommands.ExitSuccess
}
