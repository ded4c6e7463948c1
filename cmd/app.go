// Package cmd implements the CLI application to refresh an ETF comparison page.
package cmd

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/etnz/etfup"
	"github.com/etnz/etfup/eodhd"
	"github.com/etnz/etfup/yahoo"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&updateCmd{}, "")
	c.Register(&showCmd{}, "")
	c.Register(&returnsCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a YAML configuration file overriding the embedded defaults")
var verbose = flag.Bool("v", false, "verbose logging")

// Setup applies the global flags. It must be called after flag.Parse().
func Setup() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// LoadConfig returns the embedded configuration, or the one from -config.
func LoadConfig() (etfup.Config, error) {
	if *configFile == "" {
		return etfup.DefaultConfig(), nil
	}
	return etfup.LoadConfig(*configFile)
}

// priceFlags are the flags selecting the historical price service.
type priceFlags struct {
	prices       string
	eodhdApiFlag string
	cache        bool
}

func (p *priceFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.prices, "prices", "yahoo", "historical price service: yahoo or eodhd")
	f.StringVar(&p.eodhdApiFlag, "eodhd-api-key", "", "EODHD API key to use for consuming EODHD.com API. This flag takes precedence over the "+eodhd.APIKeyEnv+" environment variable. You can get one at https://eodhd.com/")
	f.BoolVar(&p.cache, "cache", false, "cache http responses on disk for the day (development reruns)")
}

// eodhdApiKey retrieves the EODHD API key from the command-line flag or the environment variable.
// It prioritizes the flag over the environment variable.
func (p *priceFlags) eodhdApiKey() string {
	if p.eodhdApiFlag == "" {
		p.eodhdApiFlag = os.Getenv(eodhd.APIKeyEnv)
	}
	return p.eodhdApiFlag
}

// source returns the selected price service.
func (p *priceFlags) source(client *http.Client) (etfup.PriceSource, error) {
	switch p.prices {
	case "yahoo":
		return yahoo.New(client), nil
	case "eodhd":
		key := p.eodhdApiKey()
		if key == "" {
			return nil, fmt.Errorf("EODHD API key is not set. Use -eodhd-api-key flag or %s environment variable", eodhd.APIKeyEnv)
		}
		return eodhd.New(client, key), nil
	default:
		return nil, fmt.Errorf("unknown price service %q, want yahoo or eodhd", p.prices)
	}
}

// failure prints an error and returns the failure status.
func failure(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}
