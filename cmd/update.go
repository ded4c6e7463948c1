package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/etfup"
	"github.com/etnz/etfup/document"
	"github.com/etnz/etfup/update"
	"github.com/google/subcommands"
)

// DefaultDocument is the page refreshed when -doc is not set.
const DefaultDocument = "ETFComparison.html"

type updateCmd struct {
	priceFlags
	doc    string
	dryRun bool
	report bool
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "refresh the data embedded in the comparison page" }
func (*updateCmd) Usage() string {
	return `etfup update [-doc <page>] [-dry-run] [-report] [-prices yahoo|eodhd]

Fetches fresh data and patches the comparison page in place:

  - holdings:      justetf.com servlet, then justetf.com profile page (top 15 per ETF)
  - ETF returns:   justetf.com servlet, then profile page, then computed from prices
  - stock returns: computed from the price service history

Data that could not be fetched leaves the page as it was. The command only
fails when the page does not exist.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	c.priceFlags.SetFlags(f)
	f.StringVar(&c.doc, "doc", DefaultDocument, "page to update")
	f.BoolVar(&c.dryRun, "dry-run", false, "fetch and patch but do not write the page")
	f.BoolVar(&c.report, "report", false, "print a report of the run")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Println("no arguments expected")
		return subcommands.ExitUsageError
	}
	cfg, err := LoadConfig()
	if err != nil {
		return failure("%v", err)
	}
	client := etfup.NewHTTPClient(cfg.Timeout, c.cache)
	prices, err := c.source(client)
	if err != nil {
		return failure("%v", err)
	}

	u := update.New(cfg, client, prices)
	u.DryRun = c.dryRun
	report, err := u.Run(ctx, c.doc)
	if errors.Is(err, etfup.ErrDocumentNotFound) {
		return failure("%v", err)
	}
	if err != nil {
		return failure("update failed: %v", err)
	}

	if c.report {
		fmt.Print(render(report.Markdown()))
	}
	if report.Written {
		fmt.Printf("%s updated as of %s\n", c.doc, report.AsOf.Format(document.DateLayout))
	}
	return subcommands.ExitSuccess
}

// render renders markdown for the terminal, or returns it as is if it cannot.
func render(md string) string {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
