package stats

import (
	"sort"

	"lifelog/internal/core"
)

type (
	// DayTotal is the per-day expense aggregate. Records keeps the day's
	// entries most-recent-first for detail views.
	DayTotal struct {
		Date    core.Date
		Total   core.Money
		Records []core.ExpenseRecord
	}

	// CategoryStat is one row of the category breakdown. Percentage is
	// relative to the total of the records passed in, and the breakdown
	// only contains categories that were actually spent on.
	CategoryStat struct {
		Category   core.ExpenseCategory `json:"category"`
		Total      core.Money           `json:"total"`
		Count      int                  `json:"count"`
		Percentage float64              `json:"percentage"`
	}

	// ExpenseTrendPoint is one bucket of the expense trend series.
	ExpenseTrendPoint struct {
		Date        core.Date  `json:"-"`
		Day         string     `json:"date"`
		DisplayDate string     `json:"displayDate"`
		Amount      core.Money `json:"amount"`
	}
)

// ExpenseByDay folds records into per-day totals keyed by the canonical
// date key. Malformed records are skipped.
func ExpenseByDay(records []core.ExpenseRecord) map[string]DayTotal {
	byDay := make(map[string]DayTotal)
	for _, r := range records {
		if r.Validate() != nil {
			continue
		}
		key := r.Date.Key()
		day := byDay[key]
		if day.Records == nil {
			day.Date = r.Date
		}
		day.Total.Cents += r.Amount.Cents
		day.Records = append(day.Records, r)
		byDay[key] = day
	}
	for key, day := range byDay {
		sort.SliceStable(day.Records, func(i, j int) bool {
			return day.Records[i].CreatedAt.After(day.Records[j].CreatedAt)
		})
		byDay[key] = day
	}
	return byDay
}

// ExpenseByCategory walks the fixed category enumeration and reports
// totals, counts, and percentages for every category with spend. Categories
// without spend are omitted entirely.
func ExpenseByCategory(records []core.ExpenseRecord) []CategoryStat {
	totals := make(map[core.ExpenseCategory]*CategoryStat)
	var grand int64
	for _, r := range records {
		if r.Validate() != nil {
			continue
		}
		cs, ok := totals[r.Category]
		if !ok {
			cs = &CategoryStat{Category: r.Category}
			totals[r.Category] = cs
		}
		cs.Total.Cents += r.Amount.Cents
		cs.Count++
		grand += r.Amount.Cents
	}

	out := make([]CategoryStat, 0, len(totals))
	for _, cat := range core.ExpenseCategories() {
		cs, ok := totals[cat]
		if !ok || cs.Total.Cents == 0 {
			continue
		}
		if grand > 0 {
			cs.Percentage = float64(cs.Total.Cents) / float64(grand) * 100
		}
		out = append(out, *cs)
	}
	return out
}

// ExpenseTrend aligns per-day totals to the bucket window: one point per
// window date, ascending, zero-filled where nothing was spent.
func ExpenseTrend(records []core.ExpenseRecord, window []core.Date) []ExpenseTrendPoint {
	byDay := ExpenseByDay(records)
	points := make([]ExpenseTrendPoint, len(window))
	for i, d := range window {
		p := ExpenseTrendPoint{Date: d, Day: d.Key(), DisplayDate: displayDate(d)}
		if day, ok := byDay[d.Key()]; ok {
			p.Amount = day.Total
		}
		points[i] = p
	}
	return points
}

// AmountSeries lifts the trend's euro amounts into a Metric series for the
// summary reducer. Zero-spend days are real zeros, not missing data.
func AmountSeries(points []ExpenseTrendPoint) []Metric {
	series := make([]Metric, len(points))
	for i, p := range points {
		series[i] = Value(p.Amount.Euros())
	}
	return series
}
