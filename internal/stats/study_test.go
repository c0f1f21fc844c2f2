package stats

import (
	"math"
	"testing"

	"lifelog/internal/core"
)

func sampleStudy() []core.StudyRecord {
	return []core.StudyRecord{
		{Date: core.NewDate(2024, 5, 1), Category: "math", Minutes: 60},
		{Date: core.NewDate(2024, 5, 1), Category: "english", Minutes: 30},
		{Date: core.NewDate(2024, 5, 3), Category: "math", Minutes: 30},
	}
}

func TestStudyByCategory(t *testing.T) {
	cats := StudyByCategory(sampleStudy())

	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}
	if cats[0].Category != "math" || cats[0].Minutes != 90 || cats[0].Count != 2 {
		t.Fatalf("math: got %+v", cats[0])
	}
	if cats[1].Category != "english" || cats[1].Minutes != 30 {
		t.Fatalf("english: got %+v", cats[1])
	}
	if math.Abs(cats[0].Percentage-75) > 1e-9 || math.Abs(cats[1].Percentage-25) > 1e-9 {
		t.Fatalf("unexpected percentages: %.2f / %.2f", cats[0].Percentage, cats[1].Percentage)
	}
	var sum float64
	for _, c := range cats {
		sum += c.Percentage
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("percentages sum to %.4f", sum)
	}
}

func TestStudyByCategoryZeroMinutes(t *testing.T) {
	// All-zero durations must not divide by zero; the breakdown is empty.
	records := []core.StudyRecord{
		{Date: core.NewDate(2024, 5, 1), Category: "math", Minutes: 0},
	}
	if cats := StudyByCategory(records); len(cats) != 0 {
		t.Fatalf("expected empty breakdown, got %+v", cats)
	}
	if cats := StudyByCategory(nil); len(cats) != 0 {
		t.Fatalf("expected empty breakdown for no records, got %+v", cats)
	}
}

func TestStudyByDateZeroFill(t *testing.T) {
	window, err := MonthDays(2024, 5)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	points := StudyByDate(sampleStudy(), window)

	if len(points) != 31 {
		t.Fatalf("expected 31 points, got %d", len(points))
	}
	for i, p := range points {
		switch p.Day {
		case "2024-05-01":
			if p.Minutes != 90 || p.Count != 2 {
				t.Fatalf("2024-05-01: got %+v", p)
			}
		case "2024-05-03":
			if p.Minutes != 30 || p.Count != 1 {
				t.Fatalf("2024-05-03: got %+v", p)
			}
		default:
			if p.Minutes != 0 || p.Count != 0 {
				t.Fatalf("empty day %s not zero-filled: %+v", p.Day, p)
			}
		}
		if p.Day != window[i].Key() {
			t.Fatalf("point %d out of order", i)
		}
	}
}

func TestStudyByDateEmptyMonth(t *testing.T) {
	window, _ := MonthDays(2024, 4)
	points := StudyByDate(nil, window)
	if len(points) != 30 {
		t.Fatalf("expected one zero entry per calendar day, got %d", len(points))
	}
	for _, p := range points {
		if p.Minutes != 0 {
			t.Fatalf("expected zero minutes on %s", p.Day)
		}
	}
}
