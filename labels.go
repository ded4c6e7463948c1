package etfup

import "strings"

// labels is the vocabulary of period spellings found in sources, after normalization.
var labels = map[string]Period{
	"1m": OneMonth, "1 month": OneMonth, "1 months": OneMonth, "1-month": OneMonth, "1mo": OneMonth,
	"3m": ThreeMonths, "3 month": ThreeMonths, "3 months": ThreeMonths, "3-month": ThreeMonths, "3mo": ThreeMonths,
	"6m": SixMonths, "6 month": SixMonths, "6 months": SixMonths, "6-month": SixMonths, "6mo": SixMonths,
	"1y": OneYear, "1 year": OneYear, "1 years": OneYear, "1-year": OneYear, "12m": OneYear, "12 months": OneYear,
	"3y": ThreeYears, "3 year": ThreeYears, "3 years": ThreeYears, "3-year": ThreeYears,
	"5y": FiveYears, "5 year": FiveYears, "5 years": FiveYears, "5-year": FiveYears,
}

// NormalizeLabel maps a raw period label ("1Y", "1 year", " 3 Months ") to its
// canonical Period. Unrecognized labels report false and are meant to be dropped.
func NormalizeLabel(raw string) (Period, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	p, ok := labels[key]
	return p, ok
}
