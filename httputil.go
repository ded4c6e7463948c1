package etfup

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/etfup/date"
	log "github.com/sirupsen/logrus"
)

// contains http utils to deal with remote services

// Fund data pages are served to browsers only.
var browserHeaders = http.Header{
	"User-Agent": {"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/122.0.0.0 Safari/537.36"},
	"Accept-Language": {"en-US,en;q=0.9"},
	"Accept":          {"text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"},
}

// headers sets browser-like headers on every outgoing request.
type headers struct {
	base http.RoundTripper
}

func (h *headers) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range browserHeaders {
		if req.Header.Get(k) == "" {
			req.Header[k] = v
		}
	}
	return h.base.RoundTrip(req)
}

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
	dir  string
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// diskcache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", date.Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("etfup-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debugf("%v %v%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	err = c.put(key, resp)
	if err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o644)
}

// NewHTTPClient returns the client shared by every source of a run.
//
// Requests carry browser-like headers and a cookie jar keeps sessions.
// If cache is true, successful responses are cached on disk until the end of the day,
// which makes development reruns free for the remote services.
func NewHTTPClient(timeout time.Duration, cache bool) *http.Client {
	var transport http.RoundTripper = &headers{base: http.DefaultTransport}
	if cache {
		transport = &diskCache{base: transport, dir: os.TempDir()}
	}
	jar, _ := cookiejar.New(nil) // never fails without options
	return &http.Client{Transport: transport, Jar: jar, Timeout: timeout}
}

// GetBody performs an HTTP GET request and returns the response body.
//
// Network failures and non 200 statuses are reported as ErrSourceUnavailable.
// Errors name the host and path only: query strings may carry credentials.
func GetBody(ctx context.Context, client *http.Client, addr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create http request: %w", unwrapURL(err))
	}
	where := req.URL.Host + req.URL.Path
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot http GET %s: %v: %w", where, unwrapURL(err), ErrSourceUnavailable)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %s: %v: %w", where, resp.Status, ErrSourceUnavailable)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("cannot read http body %s: %v: %w", where, unwrapURL(err), ErrSourceUnavailable)
	}
	return buf.Bytes(), nil
}

// unwrapURL drops the *url.Error wrapper, whose message repeats the full url.
func unwrapURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}

// GetJSON performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
//
// Undecodable payloads are reported as ErrMalformedResponse.
func GetJSON(ctx context.Context, client *http.Client, addr string, data any) error {
	body, err := GetBody(ctx, client, addr)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, data); err != nil {
		u, _ := url.Parse(addr) // GetBody succeeded, addr parses
		return fmt.Errorf("cannot decode json from %s%s: %v: %w", u.Host, u.Path, err, ErrMalformedResponse)
	}
	return nil
}
