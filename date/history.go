package date

import (
	"slices"
	"sort"
)

// History stores a chronological series of values, each associated with a specific date.
// It ensures that dates are unique and the series is always sorted.
type History[T float32 | float64] struct {
	days   []Date
	values []T
}

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, *new(T)
	}
	return h.days[last], h.values[last]
}

// Len returns the number of items in the history. A nil History is empty.
func (h *History[T]) Len() int {
	if h == nil {
		return 0
	}
	return len(h.days)
}

type chronological[T float32 | float64] struct{ *History[T] }

func (s chronological[T]) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }

func (s chronological[T]) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// Append adds a point to the history.
//
// Existing value at that date are overwritten.
func (h *History[T]) Append(on Date, q T) *History[T] {
	// Providers deliver in chronological order most of the time.
	if n := len(h.days); n == 0 || on.After(h.days[n-1]) {
		h.days, h.values = append(h.days, on), append(h.values, q)
		return h
	}
	if i := slices.Index(h.days, on); i >= 0 {
		h.values[i] = q
		return h
	}
	h.days, h.values = append(h.days, on), append(h.values, q)
	sort.Sort(chronological[T]{h})
	return h
}

// FirstOnOrAfter returns the earliest point whose date is on or after 'day'.
// ok is false when every point is before 'day'.
func (h *History[T]) FirstOnOrAfter(day Date) (on Date, value T, ok bool) {
	i, _ := slices.BinarySearchFunc(h.days, day, Date.Compare)
	if i >= len(h.days) {
		return Date{}, *new(T), false
	}
	return h.days[i], h.values[i], true
}
