// Package justetf acquires fund holdings and returns from justetf.com.
//
// Two tiers are provided: API, reading the JSON servlet that feeds the site's
// widgets, and Profile, scraping the public fund profile page. Both identify a
// fund by its ISIN.
package justetf

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/etnz/etfup"
	log "github.com/sirupsen/logrus"
)

// DefaultBaseURL is the root of justetf.com.
const DefaultBaseURL = "https://www.justetf.com"

// Client holds the session shared by the API and Profile tiers.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	TopN    int // number of holdings to keep

	warmup sync.Once
}

// New returns a Client keeping topN holdings per fund.
// The http client should have a cookie jar: the site hands out its session on the home page.
func New(client *http.Client, topN int) *Client {
	return &Client{BaseURL: DefaultBaseURL, HTTP: client, TopN: topN}
}

// get fetches a page of the site. The first call visits the home page to open a session.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	c.warmup.Do(func() {
		if _, err := etfup.GetBody(ctx, c.HTTP, c.BaseURL+"/en/"); err != nil {
			log.Debugf("justetf session warm up failed (ignored): %v", err)
		}
	})
	return etfup.GetBody(ctx, c.HTTP, c.BaseURL+path+"?"+query.Encode())
}
