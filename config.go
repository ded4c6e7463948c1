package etfup

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaultConfig []byte

// Config is the static configuration of a run. It is loaded once and passed by value.
type Config struct {
	TopHoldings   int            `yaml:"top_holdings"`
	Delay         time.Duration  `yaml:"delay"`
	Timeout       time.Duration  `yaml:"timeout"`
	LookbackYears int            `yaml:"lookback_years"`
	PeriodDays    map[string]int `yaml:"periods"`
	Instruments   []Instrument   `yaml:"instruments"`
	Stocks        []Stock        `yaml:"stocks"`
}

// DefaultConfig returns the embedded configuration.
func DefaultConfig() Config {
	c, err := parseConfig(defaultConfig)
	if err != nil {
		panic(fmt.Sprintf("embedded config is invalid: %v", err))
	}
	return c
}

// LoadConfig reads a configuration file. Fields absent from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	c, err := parseConfig(defaultConfig)
	if err != nil {
		return Config{}, err
	}
	// unmarshalling over the defaults keeps absent fields.
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("cannot decode config %q: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return c, nil
}

func parseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	var errs error
	if c.TopHoldings <= 0 {
		errs = errors.Join(errs, fmt.Errorf("top_holdings must be positive, got %d", c.TopHoldings))
	}
	if c.LookbackYears <= 0 {
		errs = errors.Join(errs, fmt.Errorf("lookback_years must be positive, got %d", c.LookbackYears))
	}
	for _, p := range Periods() {
		if d, ok := c.PeriodDays[p.String()]; !ok || d <= 0 {
			errs = errors.Join(errs, fmt.Errorf("missing or invalid day count for period %s", p))
		}
	}
	for k := range c.PeriodDays {
		if _, err := ParsePeriod(k); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	codes := make(map[string]bool)
	for _, inst := range c.Instruments {
		if inst.Code == "" || inst.ISIN == "" {
			errs = errors.Join(errs, fmt.Errorf("instrument %+v needs a code and an isin", inst))
		}
		if codes[inst.Code] {
			errs = errors.Join(errs, fmt.Errorf("duplicate instrument %q", inst.Code))
		}
		codes[inst.Code] = true
	}
	keys := make(map[string]bool)
	for _, s := range c.Stocks {
		if s.Symbol == "" {
			errs = errors.Join(errs, errors.New("stock with an empty symbol"))
		}
		if keys[s.DocKey()] {
			errs = errors.Join(errs, fmt.Errorf("duplicate stock %q", s.DocKey()))
		}
		keys[s.DocKey()] = true
	}
	return errs
}

// Days returns the calendar days of each canonical period.
func (c Config) Days() map[Period]int {
	days := make(map[Period]int, numPeriods)
	for _, p := range Periods() {
		days[p] = c.PeriodDays[p.String()]
	}
	return days
}

// InstrumentCodes returns the instrument codes in page order.
func (c Config) InstrumentCodes() []string {
	codes := make([]string, len(c.Instruments))
	for i, inst := range c.Instruments {
		codes[i] = inst.Code
	}
	return codes
}

// StockKeys returns the stock document keys in page order.
func (c Config) StockKeys() []string {
	keys := make([]string, len(c.Stocks))
	for i, s := range c.Stocks {
		keys[i] = s.DocKey()
	}
	return keys
}
