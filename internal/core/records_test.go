package core

import (
	"testing"
	"time"
)

func TestDateKeyRoundTrip(t *testing.T) {
	d := NewDate(2024, 5, 1)
	if d.Key() != "2024-05-01" {
		t.Fatalf("unexpected key %q", d.Key())
	}
	parsed, err := ParseDate("2024-05-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !parsed.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v vs %v", parsed, d)
	}
	if _, err := ParseDate("01/05/2024"); err == nil {
		t.Fatalf("expected error for non-canonical form")
	}
}

func TestDateAddDays(t *testing.T) {
	d := NewDate(2024, 2, 28).AddDays(1)
	if d.Key() != "2024-02-29" {
		t.Fatalf("expected leap day, got %q", d.Key())
	}
	if back := d.AddDays(-1).Key(); back != "2024-02-28" {
		t.Fatalf("expected 2024-02-28, got %q", back)
	}
}

func TestExpenseRecordValidate(t *testing.T) {
	good := ExpenseRecord{
		Date:     NewDate(2024, 5, 1),
		Amount:   Money{Cents: 2000},
		Category: CategoryMeals,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []ExpenseRecord{
		{Date: Date{Time: time.Time{}}, Amount: Money{Cents: 1}, Category: CategoryMeals},
		{Date: NewDate(2024, 5, 1), Amount: Money{Cents: -1}, Category: CategoryMeals},
		{Date: NewDate(2024, 5, 1), Amount: Money{Cents: 1}, Category: "UNKNOWN"},
	}
	for i, r := range bads {
		if err := r.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestSleepRecordValidate(t *testing.T) {
	good := SleepRecord{Date: NewDate(2024, 5, 1), SleepTime: 1380, WakeTime: 420, Quality: 80}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []SleepRecord{
		{Date: NewDate(2024, 5, 1), SleepTime: 1440, WakeTime: 420, Quality: 80},
		{Date: NewDate(2024, 5, 1), SleepTime: 1380, WakeTime: -5, Quality: 80},
		{Date: NewDate(2024, 5, 1), SleepTime: 1380, WakeTime: 420, Quality: 101},
	}
	for i, r := range bads {
		if err := r.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestSleepEffectiveDuration(t *testing.T) {
	cases := []struct {
		rec  SleepRecord
		want int
	}{
		// 23:00 -> 07:00 crosses midnight
		{SleepRecord{SleepTime: 1380, WakeTime: 420}, 480},
		// 01:00 -> 08:30 same day
		{SleepRecord{SleepTime: 60, WakeTime: 510}, 450},
		// explicit duration wins over derived
		{SleepRecord{SleepTime: 1380, WakeTime: 420, Duration: 500}, 500},
	}
	for i, tc := range cases {
		if got := tc.rec.EffectiveDuration(); got != tc.want {
			t.Fatalf("case %d: got %d, want %d", i, got, tc.want)
		}
	}
}

func TestHabitRecordValidate(t *testing.T) {
	good := HabitRecord{
		Date:      NewDate(2024, 5, 1),
		Breakfast: MealRegular,
		Lunch:     MealIrregular,
		Dinner:    MealNotEaten,
		CheckIn:   555,
		CheckOut:  NoTime,
		Leave:     NoTime,
		Steps:     8000,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []HabitRecord{
		{Date: NewDate(2024, 5, 1), Breakfast: MealStatus(7)},
		{Date: NewDate(2024, 5, 1), CheckIn: 2000},
		{Date: NewDate(2024, 5, 1), Steps: -1},
	}
	for i, r := range bads {
		if err := r.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestStudyRecordValidate(t *testing.T) {
	good := StudyRecord{Date: NewDate(2024, 5, 1), Category: "math", Minutes: 45}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (StudyRecord{Date: NewDate(2024, 5, 1), Category: "", Minutes: 45}).Validate(); err == nil {
		t.Fatalf("expected error for empty category")
	}
	if err := (StudyRecord{Date: NewDate(2024, 5, 1), Category: "math", Minutes: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative minutes")
	}
}

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true},
		{"12.346", 1235, true},
		{"0", 0, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q: got %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}
