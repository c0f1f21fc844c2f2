package stats

import (
	"math"

	"lifelog/internal/core"
)

type (
	// SleepMonthStats are the headline numbers for one calendar month.
	// Averages of time-of-day fields are circular means over minutes since
	// midnight, so bedtimes straddling midnight average sensibly. With no
	// usable records every average is the no-data sentinel.
	SleepMonthStats struct {
		TotalRecords int    `json:"totalRecords"`
		Skipped      int    `json:"skipped"`
		AvgSleepTime Metric `json:"averageSleepTime"`
		AvgWakeTime  Metric `json:"averageWakeTime"`
		AvgDuration  Metric `json:"averageDuration"`
		AvgQuality   Metric `json:"averageQuality"`
	}

	// SleepTrendPoint is one calendar day of the month trend. Days without
	// a record carry sentinels, distinguishable from real zero values.
	SleepTrendPoint struct {
		Date        core.Date `json:"-"`
		Day         string    `json:"date"`
		DisplayDate string    `json:"displayDate"`
		SleepTime   Metric    `json:"sleepTime"`
		WakeTime    Metric    `json:"wakeTime"`
		Quality     Metric    `json:"quality"`
		Duration    Metric    `json:"duration"`
	}
)

// SleepMonth aggregates the records falling in the given month. Records
// outside the month, nap entries, and malformed records do not contribute;
// malformed ones are counted in Skipped.
func SleepMonth(records []core.SleepRecord, year, month int) (SleepMonthStats, error) {
	if month < 1 || month > 12 || year < 1 {
		return SleepMonthStats{}, ErrInvalidRange
	}

	var out SleepMonthStats
	var sleepMins, wakeMins []int
	var durationSum, qualitySum int
	for _, r := range records {
		if r.Date.Year() != year || r.Date.Month() != month {
			continue
		}
		if r.Validate() != nil {
			out.Skipped++
			continue
		}
		if r.Nap {
			continue
		}
		out.TotalRecords++
		sleepMins = append(sleepMins, int(r.SleepTime))
		wakeMins = append(wakeMins, int(r.WakeTime))
		durationSum += r.EffectiveDuration()
		qualitySum += r.Quality
	}

	if out.TotalRecords == 0 {
		return out, nil
	}
	n := float64(out.TotalRecords)
	out.AvgSleepTime = Value(circularMeanMinutes(sleepMins))
	out.AvgWakeTime = Value(circularMeanMinutes(wakeMins))
	out.AvgDuration = Value(float64(durationSum) / n)
	out.AvgQuality = Value(float64(qualitySum) / n)
	return out, nil
}

// SleepMonthTrend produces one point per calendar day of the month. When a
// day has several records the latest non-nap entry wins.
func SleepMonthTrend(records []core.SleepRecord, year, month int) ([]SleepTrendPoint, error) {
	window, err := MonthDays(year, month)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]core.SleepRecord)
	for _, r := range records {
		if r.Validate() != nil || r.Nap {
			continue
		}
		key := r.Date.Key()
		if prev, ok := byDay[key]; !ok || r.CreatedAt.After(prev.CreatedAt) {
			byDay[key] = r
		}
	}

	points := make([]SleepTrendPoint, len(window))
	for i, d := range window {
		p := SleepTrendPoint{Date: d, Day: d.Key(), DisplayDate: displayDate(d)}
		if r, ok := byDay[d.Key()]; ok {
			p.SleepTime = Value(float64(r.SleepTime))
			p.WakeTime = Value(float64(r.WakeTime))
			p.Quality = Value(float64(r.Quality))
			p.Duration = Value(float64(r.EffectiveDuration()))
		}
		points[i] = p
	}
	return points, nil
}

// DurationSeries lifts the trend's durations into a Metric series.
func DurationSeries(points []SleepTrendPoint) []Metric {
	series := make([]Metric, len(points))
	for i, p := range points {
		series[i] = p.Duration
	}
	return series
}

// circularMeanMinutes averages times of day on the clock circle. A plain
// linear mean would put 23:00 and 01:00 at noon instead of midnight.
func circularMeanMinutes(mins []int) float64 {
	var sx, sy float64
	for _, m := range mins {
		a := 2 * math.Pi * float64(m) / core.MinutesPerDay
		sx += math.Cos(a)
		sy += math.Sin(a)
	}
	a := math.Atan2(sy, sx)
	m := a / (2 * math.Pi) * core.MinutesPerDay
	if m < 0 {
		m += core.MinutesPerDay
	}
	return m
}
