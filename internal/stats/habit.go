package stats

import (
	"lifelog/internal/core"
)

// Attendance thresholds, minutes since midnight.
const (
	checkInDeadline  = 9*60 + 30 // 09:30
	checkOutEarliest = 18 * 60   // 18:00
	leaveEarliest    = 22 * 60   // 22:00
)

type (
	// MealTally is a three-way categorical count for one meal slot.
	MealTally struct {
		Regular   int `json:"regular"`
		Irregular int `json:"irregular"`
		NotEaten  int `json:"notEaten"`
	}

	// MealBreakdown tallies every meal slot across a record set.
	MealBreakdown struct {
		Breakfast MealTally `json:"breakfast"`
		Lunch     MealTally `json:"lunch"`
		Dinner    MealTally `json:"dinner"`
	}

	// AttendanceRates are compliance percentages. Records missing the
	// relevant time are excluded from that rate's denominator, so a rate
	// with no usable records is the no-data sentinel.
	AttendanceRates struct {
		CheckIn  Metric `json:"checkInRate"`
		CheckOut Metric `json:"checkOutRate"`
		Leave    Metric `json:"leaveRate"`
	}

	// HabitStat is one boolean habit's count and share of all records.
	HabitStat struct {
		Name       string  `json:"name"`
		Count      int     `json:"value"`
		Percentage float64 `json:"percentage"`
	}

	// HabitTrendPoint is one bucket of the habit trend. Hours derive from
	// the optional attendance times when present, else stay zero.
	HabitTrendPoint struct {
		Date         core.Date `json:"-"`
		Day          string    `json:"date"`
		DisplayDate  string    `json:"displayDate"`
		Steps        int       `json:"steps"`
		WorkHours    float64   `json:"workHours"`
		CompanyHours float64   `json:"companyHours"`
	}
)

// MealRegularity tallies each meal slot three ways across the record set.
func MealRegularity(records []core.HabitRecord) MealBreakdown {
	var out MealBreakdown
	for _, r := range records {
		if r.Validate() != nil {
			continue
		}
		tallyMeal(&out.Breakfast, r.Breakfast)
		tallyMeal(&out.Lunch, r.Lunch)
		tallyMeal(&out.Dinner, r.Dinner)
	}
	return out
}

func tallyMeal(t *MealTally, s core.MealStatus) {
	switch s {
	case core.MealRegular:
		t.Regular++
	case core.MealIrregular:
		t.Irregular++
	default:
		t.NotEaten++
	}
}

// AttendanceCompliance computes the share of records meeting each
// threshold: check-in at or before 09:30, check-out at or after 18:00,
// leave at or after 22:00.
func AttendanceCompliance(records []core.HabitRecord) AttendanceRates {
	var checkInOK, checkInN, checkOutOK, checkOutN, leaveOK, leaveN int
	for _, r := range records {
		if r.Validate() != nil {
			continue
		}
		if r.CheckIn.Known() {
			checkInN++
			if r.CheckIn <= checkInDeadline {
				checkInOK++
			}
		}
		if r.CheckOut.Known() {
			checkOutN++
			if r.CheckOut >= checkOutEarliest {
				checkOutOK++
			}
		}
		if r.Leave.Known() {
			leaveN++
			if r.Leave >= leaveEarliest {
				leaveOK++
			}
		}
	}
	return AttendanceRates{
		CheckIn:  rate(checkInOK, checkInN),
		CheckOut: rate(checkOutOK, checkOutN),
		Leave:    rate(leaveOK, leaveN),
	}
}

func rate(hits, total int) Metric {
	if total == 0 {
		return NoData
	}
	return Value(float64(hits) / float64(total) * 100)
}

// HabitStats reports each boolean habit's count and percentage over the
// full record set.
func HabitStats(records []core.HabitRecord) []HabitStat {
	var total, laundry, cleaning, shower, skincare int
	for _, r := range records {
		if r.Validate() != nil {
			continue
		}
		total++
		if r.Laundry {
			laundry++
		}
		if r.Cleaning {
			cleaning++
		}
		if r.Shower {
			shower++
		}
		if r.Skincare {
			skincare++
		}
	}

	stats := []HabitStat{
		{Name: "laundry", Count: laundry},
		{Name: "cleaning", Count: cleaning},
		{Name: "shower", Count: shower},
		{Name: "skincare", Count: skincare},
	}
	if total > 0 {
		for i := range stats {
			stats[i].Percentage = float64(stats[i].Count) / float64(total) * 100
		}
	}
	return stats
}

// HabitTrend aligns habit records to the bucket window. When a day has
// several check-ins the latest one wins.
func HabitTrend(records []core.HabitRecord, window []core.Date) []HabitTrendPoint {
	byDay := make(map[string]core.HabitRecord)
	for _, r := range records {
		if r.Validate() != nil {
			continue
		}
		key := r.Date.Key()
		if prev, ok := byDay[key]; !ok || r.CreatedAt.After(prev.CreatedAt) {
			byDay[key] = r
		}
	}

	points := make([]HabitTrendPoint, len(window))
	for i, d := range window {
		p := HabitTrendPoint{Date: d, Day: d.Key(), DisplayDate: displayDate(d)}
		if r, ok := byDay[d.Key()]; ok {
			p.Steps = r.Steps
			p.CompanyHours = spanHours(r.CheckIn, r.CheckOut)
			p.WorkHours = spanHours(r.CheckIn, r.Leave)
		}
		points[i] = p
	}
	return points
}

// StepSeries lifts the trend's step counts into Metrics for the summary
// reducer.
func StepSeries(points []HabitTrendPoint) []Metric {
	series := make([]Metric, len(points))
	for i, p := range points {
		series[i] = Value(float64(p.Steps))
	}
	return series
}

// spanHours is the elapsed hours between two times of day, mod 24h for
// spans crossing midnight; zero when either end is missing.
func spanHours(from, to core.TimeOfDay) float64 {
	if !from.Known() || !to.Known() {
		return 0
	}
	mins := (int(to) - int(from)) % core.MinutesPerDay
	if mins < 0 {
		mins += core.MinutesPerDay
	}
	return float64(mins) / 60
}
