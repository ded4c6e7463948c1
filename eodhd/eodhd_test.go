package eodhd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/etnz/etfup"
	"github.com/etnz/etfup/date"
)

func TestTicker(t *testing.T) {
	tests := []struct{ symbol, want string }{
		{"NVDA", "NVDA.US"},
		{"BRK-B", "BRK-B.US"},
		{"XUTC.L", "XUTC.LSE"},
		{"000660.KS", "000660.KO"},
		{"SAP.DE", "SAP.XETRA"},
	}
	for _, tt := range tests {
		got, err := Ticker(tt.symbol)
		if err != nil || got != tt.want {
			t.Errorf("Ticker(%q) = %q, %v want %q", tt.symbol, got, err, tt.want)
		}
	}
	if _, err := Ticker("ABC.ZZ"); etfup.Kind(err) != "NoDataFound" {
		t.Errorf("Ticker(ABC.ZZ) error = %v want NoDataFound", err)
	}
}

func TestHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("api_token") != "secret" {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/eod/XUTC.LSE" || q.Get("fmt") != "json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[
			{"date": "2025-01-03", "close": 10.5, "adjusted_close": 10.4},
			{"date": "2025-01-02", "close": 10.0, "adjusted_close": null},
			{"date": "2025-01-06", "close": null, "adjusted_close": null}
		]`))
	}))
	defer srv.Close()

	c := New(etfup.NewHTTPClient(5*time.Second, false), "secret")
	c.BaseURL = srv.URL
	h, err := c.History(context.Background(), "XUTC.L", 5)
	if err != nil {
		t.Fatalf("History() unexpected error: %v", err)
	}
	if h.Len() != 2 {
		t.Errorf("History().Len() = %d want 2", h.Len())
	}
	if day, v := h.Latest(); day != date.New(2025, 1, 3) || v != 10.4 {
		t.Errorf("Latest() = %v, %v want 2025-01-03, 10.4", day, v)
	}
	if _, v, _ := h.FirstOnOrAfter(date.New(2025, 1, 1)); v != 10 {
		t.Errorf("first close = %v want 10 (close when adjusted is null)", v)
	}

	c.APIKey = "wrong-key"
	_, err = c.History(context.Background(), "XUTC.L", 5)
	if etfup.Kind(err) != "SourceUnavailable" {
		t.Errorf("History() with a bad key error = %v want SourceUnavailable", err)
	}
	if err != nil && strings.Contains(err.Error(), "wrong-key") {
		t.Errorf("History() error %q leaks the api key", err)
	}
}
