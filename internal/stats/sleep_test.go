package stats

import (
	"errors"
	"math"
	"testing"
	"time"

	"lifelog/internal/core"
)

func TestSleepMonthDerivedDuration(t *testing.T) {
	// 23:00 -> 07:00 crosses midnight: (420-1380) mod 1440 = 480.
	records := []core.SleepRecord{
		{Date: core.NewDate(2024, 5, 10), SleepTime: 1380, WakeTime: 420, Quality: 80},
	}
	got, err := SleepMonth(records, 2024, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalRecords != 1 {
		t.Fatalf("expected 1 record, got %d", got.TotalRecords)
	}
	if !got.AvgDuration.Valid || got.AvgDuration.Value != 480 {
		t.Fatalf("expected duration 480, got %+v", got.AvgDuration)
	}
	if !got.AvgQuality.Valid || got.AvgQuality.Value != 80 {
		t.Fatalf("expected quality 80, got %+v", got.AvgQuality)
	}
}

func TestSleepMonthCircularMean(t *testing.T) {
	// Bedtimes 23:00 and 01:00 average to midnight, not noon.
	records := []core.SleepRecord{
		{Date: core.NewDate(2024, 5, 10), SleepTime: 1380, WakeTime: 420, Quality: 70},
		{Date: core.NewDate(2024, 5, 11), SleepTime: 60, WakeTime: 480, Quality: 70},
	}
	got, err := SleepMonth(records, 2024, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mean := got.AvgSleepTime.Value
	// Accept 0 or a value wrapped right below 1440.
	if mean > 1 && mean < 1439 {
		t.Fatalf("expected mean bedtime at midnight, got %.2f", mean)
	}
}

func TestSleepMonthExcludesOtherMonths(t *testing.T) {
	records := []core.SleepRecord{
		{Date: core.NewDate(2024, 4, 30), SleepTime: 1380, WakeTime: 420, Quality: 50},
		{Date: core.NewDate(2024, 5, 1), SleepTime: 1380, WakeTime: 420, Quality: 90},
	}
	got, err := SleepMonth(records, 2024, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalRecords != 1 || got.AvgQuality.Value != 90 {
		t.Fatalf("april record leaked into may stats: %+v", got)
	}
}

func TestSleepMonthEmpty(t *testing.T) {
	got, err := SleepMonth(nil, 2024, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalRecords != 0 {
		t.Fatalf("expected 0 records, got %d", got.TotalRecords)
	}
	// All averages stay at the sentinel, no NaN computed from an empty set.
	for name, m := range map[string]Metric{
		"sleep":    got.AvgSleepTime,
		"wake":     got.AvgWakeTime,
		"duration": got.AvgDuration,
		"quality":  got.AvgQuality,
	} {
		if m.Valid {
			t.Fatalf("%s average should be the no-data sentinel, got %+v", name, m)
		}
		if math.IsNaN(m.Value) {
			t.Fatalf("%s average is NaN", name)
		}
	}
}

func TestSleepMonthInvalidRange(t *testing.T) {
	if _, err := SleepMonth(nil, 2024, 13); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := SleepMonthTrend(nil, 2024, 0); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestSleepMonthSkipsMalformed(t *testing.T) {
	records := []core.SleepRecord{
		{Date: core.NewDate(2024, 5, 10), SleepTime: 1380, WakeTime: 420, Quality: 80},
		{Date: core.NewDate(2024, 5, 11), SleepTime: 5000, WakeTime: 420, Quality: 80},
	}
	got, err := SleepMonth(records, 2024, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalRecords != 1 || got.Skipped != 1 {
		t.Fatalf("expected 1 used / 1 skipped, got %+v", got)
	}
}

func TestSleepMonthTrendZeroFill(t *testing.T) {
	records := []core.SleepRecord{
		{Date: core.NewDate(2024, 5, 10), SleepTime: 1380, WakeTime: 420, Quality: 80},
	}
	points, err := SleepMonthTrend(records, 2024, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 31 {
		t.Fatalf("expected 31 points for May, got %d", len(points))
	}
	for i, p := range points {
		if p.Day != core.NewDate(2024, 5, i+1).Key() {
			t.Fatalf("point %d out of order: %s", i, p.Day)
		}
		if p.Day == "2024-05-10" {
			if !p.Duration.Valid || p.Duration.Value != 480 {
				t.Fatalf("recorded day carries wrong duration: %+v", p.Duration)
			}
			continue
		}
		// Absent days are sentinels, distinguishable from real zeros.
		if p.SleepTime.Valid || p.WakeTime.Valid || p.Quality.Valid || p.Duration.Valid {
			t.Fatalf("empty day %s carries data: %+v", p.Day, p)
		}
	}
}

func TestSleepMonthTrendLatestRecordWins(t *testing.T) {
	base := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	records := []core.SleepRecord{
		{Date: core.NewDate(2024, 5, 10), CreatedAt: base, SleepTime: 1380, WakeTime: 420, Quality: 50},
		{Date: core.NewDate(2024, 5, 10), CreatedAt: base.Add(time.Hour), SleepTime: 1320, WakeTime: 400, Quality: 90},
	}
	points, err := SleepMonthTrend(records, 2024, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := points[9]
	if !p.Quality.Valid || p.Quality.Value != 90 {
		t.Fatalf("expected the later record's quality, got %+v", p.Quality)
	}
}
