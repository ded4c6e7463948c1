package etfup

import "github.com/etnz/etfup/date"

// PercentChange returns the trailing percent change of a price series over a
// window of calendar days.
//
// The end price is the last observation. The start price is the earliest
// observation on or after the cutoff (last date minus days). The result is
// round((end/start-1)*100, 1).
//
// It returns Missing when the series is empty, when no observation falls on or
// after the cutoff, or when the start price is zero.
func PercentChange(series *date.History[float64], days int) Return {
	if series.Len() == 0 {
		return Missing
	}
	last, end := series.Latest()
	_, start, ok := series.FirstOnOrAfter(last.Add(-days))
	if !ok || start == 0 {
		return Missing
	}
	return R((end/start - 1) * 100)
}

// PeriodChanges computes the percent change of series for every canonical
// period, using the day count of each period.
func PeriodChanges(series *date.History[float64], days map[Period]int) Returns {
	var r Returns
	for _, p := range Periods() {
		r.Set(p, PercentChange(series, days[p]))
	}
	return r
}
