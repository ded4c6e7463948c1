package update

import (
	"fmt"
	"strings"

	"github.com/etnz/etfup"
	"github.com/etnz/etfup/date"
	"github.com/etnz/etfup/document"
)

// Report summarizes a run.
type Report struct {
	Path          string
	AsOf          date.Date
	Instruments   []InstrumentReport
	Stocks        int      // number of stocks requested
	MissingStocks []string // stocks without any return
	Patch         document.Result
	Written       bool
}

// InstrumentReport tells where the data of one instrument came from.
type InstrumentReport struct {
	Code     string
	Holdings etfup.Outcome[[]etfup.Holding]
	Returns  etfup.Outcome[etfup.Returns]
}

func source[T any](o etfup.Outcome[T]) string {
	if o.Status == etfup.Found {
		return o.Tier
	}
	if o.Err != nil {
		return "missing (" + etfup.Kind(o.Err) + ")"
	}
	return "missing"
}

// Markdown renders the report as a markdown document.
func (r *Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# ETF data update of %s\n\n", r.AsOf.Format(document.DateLayout))

	b.WriteString("## Funds\n\n")
	b.WriteString("| ETF | Holdings | Source | Periods | Returns | Source |\n")
	b.WriteString("|-----|---------:|--------|--------:|---------|--------|\n")
	for _, inst := range r.Instruments {
		returns := "-"
		if inst.Returns.Status == etfup.Found {
			returns = inst.Returns.Value.String()
		}
		fmt.Fprintf(&b, "| %s | %d | %s | %d/%d | %s | %s |\n",
			inst.Code, len(inst.Holdings.Value), source(inst.Holdings),
			inst.Returns.Value.Count(), len(etfup.Periods()), returns, source(inst.Returns))
	}

	fmt.Fprintf(&b, "\n## Stocks\n\n%d of %d tickers have returns.\n", r.Stocks-len(r.MissingStocks), r.Stocks)
	if len(r.MissingStocks) > 0 {
		fmt.Fprintf(&b, "\nMissing: %s\n", strings.Join(r.MissingStocks, ", "))
	}

	b.WriteString("\n## Page\n\n")
	fmt.Fprintf(&b, "- replaced: %s\n", list(r.Patch.Replaced))
	if len(r.Patch.Migrated) > 0 {
		fmt.Fprintf(&b, "- wrapped in placeholders: %s\n", list(r.Patch.Migrated))
	}
	if len(r.Patch.Missing) > 0 {
		fmt.Fprintf(&b, "- not found: %s\n", list(r.Patch.Missing))
	}
	if r.Written {
		fmt.Fprintf(&b, "\n`%s` updated.\n", r.Path)
	} else {
		fmt.Fprintf(&b, "\n`%s` left unchanged (dry run).\n", r.Path)
	}
	return b.String()
}

func list(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
