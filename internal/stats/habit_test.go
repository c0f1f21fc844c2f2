package stats

import (
	"math"
	"testing"

	"lifelog/internal/core"
)

func habitDay(day int, mutate func(*core.HabitRecord)) core.HabitRecord {
	r := core.HabitRecord{
		Date:     core.NewDate(2024, 5, day),
		CheckIn:  core.NoTime,
		CheckOut: core.NoTime,
		Leave:    core.NoTime,
	}
	if mutate != nil {
		mutate(&r)
	}
	return r
}

func TestMealRegularity(t *testing.T) {
	records := []core.HabitRecord{
		habitDay(1, func(r *core.HabitRecord) {
			r.Breakfast = core.MealRegular
			r.Lunch = core.MealIrregular
			r.Dinner = core.MealNotEaten
		}),
		habitDay(2, func(r *core.HabitRecord) {
			r.Breakfast = core.MealRegular
			r.Lunch = core.MealRegular
			r.Dinner = core.MealIrregular
		}),
	}
	got := MealRegularity(records)

	if got.Breakfast != (MealTally{Regular: 2}) {
		t.Fatalf("breakfast: %+v", got.Breakfast)
	}
	if got.Lunch != (MealTally{Regular: 1, Irregular: 1}) {
		t.Fatalf("lunch: %+v", got.Lunch)
	}
	if got.Dinner != (MealTally{Irregular: 1, NotEaten: 1}) {
		t.Fatalf("dinner: %+v", got.Dinner)
	}
}

func TestAttendanceCompliance(t *testing.T) {
	records := []core.HabitRecord{
		// On time: 09:00 in, 18:30 out, 22:30 leave.
		habitDay(1, func(r *core.HabitRecord) { r.CheckIn = 540; r.CheckOut = 1110; r.Leave = 1350 }),
		// Late check-in, early check-out, leave not recorded.
		habitDay(2, func(r *core.HabitRecord) { r.CheckIn = 600; r.CheckOut = 1000 }),
		// Boundary values count as compliant.
		habitDay(3, func(r *core.HabitRecord) { r.CheckIn = 570; r.CheckOut = 1080; r.Leave = 1320 }),
	}
	got := AttendanceCompliance(records)

	if !got.CheckIn.Valid || math.Abs(got.CheckIn.Value-2.0/3*100) > 1e-9 {
		t.Fatalf("check-in rate: %+v", got.CheckIn)
	}
	if !got.CheckOut.Valid || math.Abs(got.CheckOut.Value-2.0/3*100) > 1e-9 {
		t.Fatalf("check-out rate: %+v", got.CheckOut)
	}
	// Leave recorded on two records only; missing one is excluded from the
	// denominator, not counted as failure.
	if !got.Leave.Valid || got.Leave.Value != 100 {
		t.Fatalf("leave rate: %+v", got.Leave)
	}
}

func TestAttendanceComplianceNoTimes(t *testing.T) {
	records := []core.HabitRecord{habitDay(1, nil), habitDay(2, nil)}
	got := AttendanceCompliance(records)
	if got.CheckIn.Valid || got.CheckOut.Valid || got.Leave.Valid {
		t.Fatalf("rates without any recorded times must be the sentinel: %+v", got)
	}
}

func TestHabitStats(t *testing.T) {
	records := []core.HabitRecord{
		habitDay(1, func(r *core.HabitRecord) { r.Laundry = true; r.Shower = true }),
		habitDay(2, func(r *core.HabitRecord) { r.Shower = true }),
	}
	stats := HabitStats(records)

	want := map[string]struct {
		count int
		pct   float64
	}{
		"laundry":  {1, 50},
		"cleaning": {0, 0},
		"shower":   {2, 100},
		"skincare": {0, 0},
	}
	if len(stats) != len(want) {
		t.Fatalf("expected %d habits, got %d", len(want), len(stats))
	}
	for _, s := range stats {
		w, ok := want[s.Name]
		if !ok {
			t.Fatalf("unexpected habit %q", s.Name)
		}
		if s.Count != w.count || math.Abs(s.Percentage-w.pct) > 1e-9 {
			t.Fatalf("%s: got %+v, want %+v", s.Name, s, w)
		}
	}
}

func TestHabitTrend(t *testing.T) {
	window, err := TrailingDays(core.NewDate(2024, 5, 3), 3)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	records := []core.HabitRecord{
		// 09:00 -> 18:00 at the company, leaves at 22:00.
		habitDay(1, func(r *core.HabitRecord) {
			r.CheckIn = 540
			r.CheckOut = 1080
			r.Leave = 1320
			r.Steps = 9000
		}),
		// Times not recorded; hours stay zero.
		habitDay(3, func(r *core.HabitRecord) { r.Steps = 4000 }),
	}
	points := HabitTrend(records, window)

	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].Steps != 9000 || points[0].CompanyHours != 9 || points[0].WorkHours != 13 {
		t.Fatalf("2024-05-01: got %+v", points[0])
	}
	if points[1].Steps != 0 || points[1].CompanyHours != 0 {
		t.Fatalf("empty day not zero-filled: %+v", points[1])
	}
	if points[2].Steps != 4000 || points[2].WorkHours != 0 {
		t.Fatalf("2024-05-03: got %+v", points[2])
	}
}
