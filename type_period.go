package etfup

import (
	"fmt"
	"math"
	"strings"
)

// Period is one of the canonical return horizons.
type Period int

const (
	OneMonth Period = iota
	ThreeMonths
	SixMonths
	OneYear
	ThreeYears
	FiveYears

	numPeriods = int(FiveYears) + 1
)

// Periods returns the canonical horizons in their canonical order.
func Periods() []Period {
	return []Period{OneMonth, ThreeMonths, SixMonths, OneYear, ThreeYears, FiveYears}
}

func (p Period) String() string {
	switch p {
	case OneMonth:
		return "1M"
	case ThreeMonths:
		return "3M"
	case SixMonths:
		return "6M"
	case OneYear:
		return "1Y"
	case ThreeYears:
		return "3Y"
	case FiveYears:
		return "5Y"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// ParsePeriod parses the canonical spelling of a period ("1M" ... "5Y").
// Use NormalizeLabel for the loose spellings sources use.
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods() {
		if p.String() == strings.ToUpper(strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return OneMonth, fmt.Errorf("unknown period %q", s)
}

// Return is a percent value rounded to one decimal, or missing.
type Return struct {
	Value float64
	Valid bool
}

// Missing is the explicit missing return.
var Missing = Return{}

// R returns a valid Return rounded to one decimal, or Missing if v is not a finite number.
func R(v float64) Return {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return Missing
	}
	return Return{Value: Round(v, 1), Valid: true}
}

func (r Return) String() string {
	if !r.Valid {
		return "N/A"
	}
	return Percent(r.Value).SignedString()
}

// Returns holds one Return per canonical period.
// Its shape is fixed: every period is always present, possibly missing.
type Returns [numPeriods]Return

// Get returns the value for p.
func (r Returns) Get(p Period) Return { return r[p] }

// Set sets the value for p.
func (r *Returns) Set(p Period, v Return) { r[p] = v }

// IsEmpty reports whether no period has a valid value.
func (r Returns) IsEmpty() bool {
	for _, v := range r {
		if v.Valid {
			return false
		}
	}
	return true
}

// Count returns the number of valid periods.
func (r Returns) Count() (n int) {
	for _, v := range r {
		if v.Valid {
			n++
		}
	}
	return n
}

func (r Returns) String() string {
	parts := make([]string, 0, numPeriods)
	for _, p := range Periods() {
		parts = append(parts, p.String()+":"+r[p].String())
	}
	return strings.Join(parts, "  ")
}
