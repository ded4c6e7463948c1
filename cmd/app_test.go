package cmd

import (
	"net/http"
	"strings"
	"testing"

	"github.com/etnz/etfup/eodhd"
)

func TestPriceSource(t *testing.T) {
	t.Setenv(eodhd.APIKeyEnv, "")
	tests := []struct {
		flags   priceFlags
		want    string
		wantErr string
	}{
		{priceFlags{prices: "yahoo"}, "yahoo", ""},
		{priceFlags{prices: "eodhd", eodhdApiFlag: "key"}, "eodhd", ""},
		{priceFlags{prices: "eodhd"}, "", "API key is not set"},
		{priceFlags{prices: "bloomberg"}, "", "unknown price service"},
	}
	for _, tt := range tests {
		src, err := tt.flags.source(http.DefaultClient)
		if tt.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("source(%q) error = %v want %q", tt.flags.prices, err, tt.wantErr)
			}
			continue
		}
		if err != nil || src.Name() != tt.want {
			t.Errorf("source(%q) = %v, %v want %s", tt.flags.prices, src, err, tt.want)
		}
	}
}

func TestEodhdApiKey(t *testing.T) {
	t.Setenv(eodhd.APIKeyEnv, "from-env")
	p := priceFlags{}
	if got := p.eodhdApiKey(); got != "from-env" {
		t.Errorf("eodhdApiKey() = %q want from-env", got)
	}
	p = priceFlags{eodhdApiFlag: "from-flag"}
	if got := p.eodhdApiKey(); got != "from-flag" {
		t.Errorf("eodhdApiKey() = %q want from-flag", got)
	}
}
