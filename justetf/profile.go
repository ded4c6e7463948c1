package justetf

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/etnz/etfup"
	log "github.com/sirupsen/logrus"
)

// holdingsSelectors locate holdings rows in the profile page, by priority.
// The site changes its markup from time to time; the last one is a catch-all.
var holdingsSelectors = []string{
	"table.etf-holdings tbody tr",
	"div#etf-holdings table tbody tr",
	"div.holdings-table tbody tr",
	"section.etf-holdings-section table tbody tr",
	"table tbody tr",
}

// Profile is the tier scraping the public fund profile page.
type Profile struct{ c *Client }

// NewProfile returns the profile page tier.
func NewProfile(c *Client) Profile { return Profile{c} }

func (Profile) Name() string { return "justetf-profile" }

func (p Profile) document(ctx context.Context, isin string) (*goquery.Document, error) {
	body, err := p.c.get(ctx, "/en/etf-profile.html", url.Values{"isin": {isin}})
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("cannot parse profile page of %s: %v: %w", isin, err, etfup.ErrMalformedResponse)
	}
	return doc, nil
}

// text returns the text of s with whitespace runs collapsed.
func text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// Holdings scrapes the holdings table of the profile page.
//
// Selectors are tried in order and the first one giving holdings wins. In a
// row, the weight is the last cell, the name the second and the ticker the third.
func (p Profile) Holdings(ctx context.Context, inst etfup.Instrument) ([]etfup.Holding, error) {
	doc, err := p.document(ctx, inst.ISIN)
	if err != nil {
		return nil, err
	}
	for _, selector := range holdingsSelectors {
		var candidates []etfup.Holding
		doc.Find(selector).Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td").Map(func(_ int, td *goquery.Selection) string { return text(td) })
			if len(cells) < 3 {
				return
			}
			weight, err := etfup.ParsePercent(cells[len(cells)-1])
			if err != nil {
				return
			}
			candidates = append(candidates, etfup.Holding{Ticker: cells[2], Name: cells[1], Weight: weight})
		})
		if holdings := etfup.FilterHoldings(candidates, p.c.TopN); len(holdings) > 0 {
			log.WithField("etf", inst.Code).Debugf("%d holdings from %q", len(holdings), selector)
			return holdings, nil
		}
	}
	return nil, fmt.Errorf("no holdings table in profile page of %s: %w", inst.Code, etfup.ErrNoData)
}

// Returns scrapes the returns tables of the profile page.
//
// Every table is read: a column whose header is a period label gives that
// period's return in each row.
func (p Profile) Returns(ctx context.Context, inst etfup.Instrument) (etfup.Returns, error) {
	doc, err := p.document(ctx, inst.ISIN)
	if err != nil {
		return etfup.Returns{}, err
	}
	var r etfup.Returns
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		headers := table.Find("th").Map(func(_ int, th *goquery.Selection) string { return strings.ToLower(text(th)) })
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td").Map(func(_ int, td *goquery.Selection) string { return text(td) })
			for i, h := range headers {
				period, ok := etfup.NormalizeLabel(h)
				if !ok || i >= len(cells) {
					continue
				}
				v, err := etfup.ParsePercent(cells[i])
				if err != nil {
					continue
				}
				r.Set(period, etfup.R(v))
			}
		})
	})
	if r.IsEmpty() {
		return etfup.Returns{}, fmt.Errorf("no returns table in profile page of %s: %w", inst.Code, etfup.ErrNoData)
	}
	log.WithField("etf", inst.Code).Debugf("returns from profile: %v", r)
	return r, nil
}
