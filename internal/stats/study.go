package stats

import (
	"sort"

	"lifelog/internal/core"
)

type (
	// StudyCategoryStat is one row of the study breakdown. Percentage is
	// relative to the total minutes across all categories.
	StudyCategoryStat struct {
		Category   string  `json:"category"`
		Minutes    int     `json:"totalMinutes"`
		Count      int     `json:"recordCount"`
		Percentage float64 `json:"percentage"`
	}

	// StudyTrendPoint is one bucket of the study-by-date series.
	StudyTrendPoint struct {
		Date        core.Date `json:"-"`
		Day         string    `json:"date"`
		DisplayDate string    `json:"displayDate"`
		Minutes     int       `json:"totalMinutes"`
		Count       int       `json:"recordCount"`
	}
)

// StudyByCategory folds sessions into per-category totals, longest first.
// With zero total minutes it returns an empty breakdown rather than
// dividing by zero.
func StudyByCategory(records []core.StudyRecord) []StudyCategoryStat {
	totals := make(map[string]*StudyCategoryStat)
	var grand int
	for _, r := range records {
		if r.Validate() != nil {
			continue
		}
		cs, ok := totals[r.Category]
		if !ok {
			cs = &StudyCategoryStat{Category: r.Category}
			totals[r.Category] = cs
		}
		cs.Minutes += r.Minutes
		cs.Count++
		grand += r.Minutes
	}
	if grand == 0 {
		return nil
	}

	out := make([]StudyCategoryStat, 0, len(totals))
	for _, cs := range totals {
		cs.Percentage = float64(cs.Minutes) / float64(grand) * 100
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// StudyByDate aligns sessions to the bucket window, zero-filled for days
// without study.
func StudyByDate(records []core.StudyRecord, window []core.Date) []StudyTrendPoint {
	type dayAgg struct {
		minutes int
		count   int
	}
	byDay := make(map[string]dayAgg)
	for _, r := range records {
		if r.Validate() != nil {
			continue
		}
		agg := byDay[r.Date.Key()]
		agg.minutes += r.Minutes
		agg.count++
		byDay[r.Date.Key()] = agg
	}

	points := make([]StudyTrendPoint, len(window))
	for i, d := range window {
		agg := byDay[d.Key()]
		points[i] = StudyTrendPoint{
			Date:        d,
			Day:         d.Key(),
			DisplayDate: displayDate(d),
			Minutes:     agg.minutes,
			Count:       agg.count,
		}
	}
	return points
}

// MinuteSeries lifts the series' minute totals into Metrics for the
// summary reducer.
func MinuteSeries(points []StudyTrendPoint) []Metric {
	series := make([]Metric, len(points))
	for i, p := range points {
		series[i] = Value(float64(p.Minutes))
	}
	return series
}
