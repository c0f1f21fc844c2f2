package stats

import (
	"errors"

	"lifelog/internal/core"
)

// ErrInvalidRange rejects window parameters that are not a real calendar
// range: negative day counts, months outside 1-12, years before the epoch
// the tracker cares about.
var ErrInvalidRange = errors.New("invalid date range")

// TrailingDays returns count calendar dates ending at ref inclusive, in
// ascending order. count == 0 yields an empty window, not an error. Buckets
// exist independently of records; trend composers rely on every requested
// day being present.
func TrailingDays(ref core.Date, count int) ([]core.Date, error) {
	if count < 0 {
		return nil, ErrInvalidRange
	}
	if err := ref.Validate(); err != nil {
		return nil, ErrInvalidRange
	}
	window := make([]core.Date, count)
	for i := 0; i < count; i++ {
		window[i] = ref.AddDays(i - count + 1)
	}
	return window, nil
}

// MonthDays returns every calendar date of the given month, ascending.
func MonthDays(year, month int) ([]core.Date, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, ErrInvalidRange
	}
	first := core.NewDate(year, month, 1)
	days := make([]core.Date, 0, 31)
	for d := first; int(d.Time.Month()) == month; d = d.AddDays(1) {
		days = append(days, d)
	}
	return days, nil
}

// displayDate derives the short presentation label carried on trend points.
// It never participates in ordering or equality.
func displayDate(d core.Date) string {
	return d.Format("01-02")
}
