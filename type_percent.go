package etfup

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Percent is a value expressed in percent (7.5 means 7.5%).
type Percent float64

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	return fmt.Sprintf("%+.1f%%", float64(p))
}

// Round rounds v to the given number of decimal places, half away from zero.
//
// Rounding goes through the shortest decimal representation of v, so 0.125
// rounds to 0.13 and never depends on binary float artifacts. Infinities and
// NaN are returned as is.
func Round(v float64, places int32) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// ParsePercent reads a number the way pages print them: "7,51 %", "-3.2%", "+12.0".
// It fails with ErrInvalidNumeric.
func ParsePercent(s string) (float64, error) {
	raw := s
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, "\u2212", "-") // unicode minus
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimPrefix(strings.TrimSpace(s), "+")
	if s == "" {
		return 0, fmt.Errorf("empty value %q: %w", raw, ErrInvalidNumeric)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("cannot read %q as a number: %w", raw, ErrInvalidNumeric)
	}
	return d.InexactFloat64(), nil
}

// ToFloat converts a decoded json value (number or numeric string) into a float64.
// nil is reported as ErrNoData so callers can tell absence from garbage.
func ToFloat(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, ErrNoData
	case float64:
		return x, nil
	case string:
		return ParsePercent(x)
	default:
		return 0, fmt.Errorf("unexpected %T value %v: %w", v, v, ErrInvalidNumeric)
	}
}
