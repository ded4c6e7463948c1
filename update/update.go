// Package update runs a full refresh of the comparison page: fetch, serialize, patch, write.
package update

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/etnz/etfup"
	"github.com/etnz/etfup/date"
	"github.com/etnz/etfup/document"
	"github.com/etnz/etfup/justetf"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Updater refreshes the data embedded in a page.
//
// Instruments are processed one at a time, holdings then returns, waiting on
// Throttle before each acquisition so that the fund data source is never hit
// faster than once per Config.Delay.
type Updater struct {
	Config   etfup.Config
	Holdings []etfup.HoldingsTier // holdings chain, by priority
	Returns  []etfup.ReturnsTier  // fund returns chain, by priority
	Prices   etfup.PriceSource    // stock prices
	Throttle *rate.Limiter
	DryRun   bool             // do not write the page
	Today    func() date.Date // defaults to date.Today
}

// New returns an Updater with the standard chains:
// justetf servlet, then justetf profile page, then (returns only) price history from prices.
func New(cfg etfup.Config, client *http.Client, prices etfup.PriceSource) *Updater {
	site := justetf.New(client, cfg.TopHoldings)
	api, profile := justetf.NewAPI(site), justetf.NewProfile(site)
	return &Updater{
		Config:   cfg,
		Holdings: []etfup.HoldingsTier{api, profile},
		Returns: []etfup.ReturnsTier{api, profile, etfup.PriceReturns{
			Source: prices,
			Days:   cfg.Days(),
			Years:  cfg.LookbackYears,
		}},
		Prices:   prices,
		Throttle: Throttle(cfg),
	}
}

// Throttle returns a limiter letting one request through every cfg.Delay.
func Throttle(cfg etfup.Config) *rate.Limiter {
	if cfg.Delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(cfg.Delay), 1)
}

// Run refreshes the page at path.
//
// The only error that is not about the run being canceled is a missing page,
// reported before any network activity as etfup.ErrDocumentNotFound. Every
// other failure degrades into missing data: the page gets whatever was
// obtained, and a data kind entirely missing leaves its block untouched.
func (u *Updater) Run(ctx context.Context, path string) (*Report, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, etfup.ErrDocumentNotFound)
	}
	if err != nil {
		return nil, err
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	today := date.Today
	if u.Today != nil {
		today = u.Today
	}
	cfg := u.Config
	snap := etfup.NewSnapshot(today())
	report := &Report{Path: path, AsOf: snap.AsOf, Stocks: len(cfg.Stocks)}

	log.Infof("fetching stock returns for %d tickers from %s", len(cfg.Stocks), u.Prices.Name())
	snap.StockReturns = etfup.StockReturns(ctx, u.Prices, cfg.Stocks, cfg.Days(), cfg.LookbackYears)
	for _, s := range cfg.Stocks {
		if snap.StockReturns[s.DocKey()].IsEmpty() {
			report.MissingStocks = append(report.MissingStocks, s.DocKey())
		}
	}

	for _, inst := range cfg.Instruments {
		logger := log.WithField("etf", inst.Code)

		if err := u.wait(ctx); err != nil {
			return nil, err
		}
		holdings := etfup.FetchHoldings(ctx, inst, u.Holdings...)
		if holdings.Status == etfup.Found {
			snap.Holdings[inst.Code] = holdings.Value
			logger.Infof("%d holdings from %s", len(holdings.Value), holdings.Tier)
		} else {
			logger.Warn("no holdings")
		}

		if err := u.wait(ctx); err != nil {
			return nil, err
		}
		returns := etfup.FetchReturns(ctx, inst, u.Returns...)
		if returns.Status == etfup.Found {
			snap.ETFReturns[inst.Code] = returns.Value
			logger.Infof("returns from %s: %v", returns.Tier, returns.Value)
		} else {
			logger.Warn("no returns")
		}
		report.Instruments = append(report.Instruments, InstrumentReport{
			Code:     inst.Code,
			Holdings: holdings,
			Returns:  returns,
		})
	}

	out, res := document.Patch(doc, snap.AsOf, Blocks(cfg, snap)...)
	report.Patch = res
	for _, name := range res.Missing {
		log.Warnf("block %s not found in %s", name, path)
	}
	if u.DryRun {
		return report, nil
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return report, fmt.Errorf("cannot write %s: %w", path, err)
	}
	report.Written = true
	return report, nil
}

func (u *Updater) wait(ctx context.Context) error {
	if u.Throttle == nil {
		return nil
	}
	return u.Throttle.Wait(ctx)
}

// Blocks serializes the data kinds of snap that obtained at least one value.
func Blocks(cfg etfup.Config, snap *etfup.Snapshot) []document.Block {
	enc := document.NewEncoder(cfg)
	var blocks []document.Block
	if snap.HasHoldings() {
		blocks = append(blocks, enc.Holdings(snap.Holdings))
	}
	if snap.HasETFReturns() {
		blocks = append(blocks, enc.ETFReturns(snap.ETFReturns))
	}
	if snap.HasStockReturns() {
		blocks = append(blocks, enc.StockReturns(snap.StockReturns))
	}
	return blocks
}
