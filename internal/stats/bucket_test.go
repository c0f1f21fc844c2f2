package stats

import (
	"errors"
	"testing"

	"lifelog/internal/core"
)

func TestTrailingDays(t *testing.T) {
	ref := core.NewDate(2024, 5, 2)
	window, err := TrailingDays(ref, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(window) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(window))
	}
	if window[0].Key() != "2024-04-26" || window[6].Key() != "2024-05-02" {
		t.Fatalf("unexpected bounds: %s .. %s", window[0].Key(), window[6].Key())
	}
	for i := 1; i < len(window); i++ {
		if !window[i].Equal(window[i-1].AddDays(1).Time) {
			t.Fatalf("gap or duplicate at index %d", i)
		}
	}
}

func TestTrailingDaysEmptyWindow(t *testing.T) {
	window, err := TrailingDays(core.NewDate(2024, 5, 2), 0)
	if err != nil {
		t.Fatalf("count=0 must not error: %v", err)
	}
	if len(window) != 0 {
		t.Fatalf("expected empty window, got %d buckets", len(window))
	}
}

func TestTrailingDaysInvalid(t *testing.T) {
	if _, err := TrailingDays(core.NewDate(2024, 5, 2), -1); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := TrailingDays(core.Date{}, 7); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for zero reference, got %v", err)
	}
}

func TestMonthDays(t *testing.T) {
	cases := []struct {
		year, month, days int
	}{
		{2024, 2, 29}, // leap year
		{2023, 2, 28},
		{2024, 5, 31},
		{2024, 4, 30},
		{2024, 12, 31},
	}
	for _, tc := range cases {
		window, err := MonthDays(tc.year, tc.month)
		if err != nil {
			t.Fatalf("%d-%02d: %v", tc.year, tc.month, err)
		}
		if len(window) != tc.days {
			t.Fatalf("%d-%02d: expected %d days, got %d", tc.year, tc.month, tc.days, len(window))
		}
		if window[0].Day() != 1 || window[len(window)-1].Day() != tc.days {
			t.Fatalf("%d-%02d: unexpected bounds %s .. %s",
				tc.year, tc.month, window[0].Key(), window[len(window)-1].Key())
		}
		for i := 1; i < len(window); i++ {
			if !window[i].After(window[i-1].Time) {
				t.Fatalf("%d-%02d: not strictly ascending at %d", tc.year, tc.month, i)
			}
		}
	}
}

func TestMonthDaysInvalid(t *testing.T) {
	for _, tc := range []struct{ year, month int }{{2024, 0}, {2024, 13}, {0, 5}, {2024, -3}} {
		if _, err := MonthDays(tc.year, tc.month); !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("year=%d month=%d: expected ErrInvalidRange, got %v", tc.year, tc.month, err)
		}
	}
}
