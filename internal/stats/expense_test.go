package stats

import (
	"math"
	"reflect"
	"testing"
	"time"

	"lifelog/internal/core"
)

func sampleExpenses() []core.ExpenseRecord {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []core.ExpenseRecord{
		{Date: core.NewDate(2024, 5, 1), CreatedAt: base, Amount: core.Money{Cents: 2000}, Category: core.CategoryMeals},
		{Date: core.NewDate(2024, 5, 1), CreatedAt: base.Add(time.Hour), Amount: core.Money{Cents: 500}, Category: core.CategorySnacks},
		{Date: core.NewDate(2024, 5, 2), CreatedAt: base.Add(24 * time.Hour), Amount: core.Money{Cents: 1000}, Category: core.CategoryMeals},
	}
}

func TestExpenseByDay(t *testing.T) {
	byDay := ExpenseByDay(sampleExpenses())

	if len(byDay) != 2 {
		t.Fatalf("expected 2 days, got %d", len(byDay))
	}
	if got := byDay["2024-05-01"].Total.Cents; got != 2500 {
		t.Fatalf("2024-05-01: expected 2500 cents, got %d", got)
	}
	if got := byDay["2024-05-02"].Total.Cents; got != 1000 {
		t.Fatalf("2024-05-02: expected 1000 cents, got %d", got)
	}
	// Per-day lists are most-recent-first.
	day := byDay["2024-05-01"]
	if len(day.Records) != 2 || day.Records[0].Category != core.CategorySnacks {
		t.Fatalf("expected snacks entry first, got %+v", day.Records)
	}
}

func TestExpenseByDaySkipsMalformed(t *testing.T) {
	records := append(sampleExpenses(), core.ExpenseRecord{
		Date: core.NewDate(2024, 5, 1), Amount: core.Money{Cents: 100}, Category: "BOGUS",
	})
	byDay := ExpenseByDay(records)
	if got := byDay["2024-05-01"].Total.Cents; got != 2500 {
		t.Fatalf("malformed record contributed: got %d cents", got)
	}
}

func TestExpenseByCategory(t *testing.T) {
	cats := ExpenseByCategory(sampleExpenses())

	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}
	// Enumeration order: MEALS before SNACKS.
	if cats[0].Category != core.CategoryMeals || cats[1].Category != core.CategorySnacks {
		t.Fatalf("unexpected order: %+v", cats)
	}
	if cats[0].Total.Cents != 3000 || cats[0].Count != 2 {
		t.Fatalf("meals: got %+v", cats[0])
	}
	if cats[1].Total.Cents != 500 || cats[1].Count != 1 {
		t.Fatalf("snacks: got %+v", cats[1])
	}
	if math.Abs(cats[0].Percentage-85.7) > 0.1 || math.Abs(cats[1].Percentage-14.3) > 0.1 {
		t.Fatalf("unexpected percentages: %.2f / %.2f", cats[0].Percentage, cats[1].Percentage)
	}
	// Percentage closure.
	var sum float64
	for _, c := range cats {
		sum += c.Percentage
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("percentages sum to %.4f, want 100", sum)
	}
}

func TestExpenseByCategoryOmitsZeroSpend(t *testing.T) {
	records := []core.ExpenseRecord{
		{Date: core.NewDate(2024, 5, 1), Amount: core.Money{Cents: 0}, Category: core.CategoryMeals},
		{Date: core.NewDate(2024, 5, 1), Amount: core.Money{Cents: 100}, Category: core.CategoryOther},
	}
	cats := ExpenseByCategory(records)
	if len(cats) != 1 || cats[0].Category != core.CategoryOther {
		t.Fatalf("zero-spend category must be omitted: %+v", cats)
	}
}

func TestExpenseByCategoryEmpty(t *testing.T) {
	if cats := ExpenseByCategory(nil); len(cats) != 0 {
		t.Fatalf("expected empty breakdown, got %+v", cats)
	}
}

func TestExpenseTrendZeroFill(t *testing.T) {
	window, err := TrailingDays(core.NewDate(2024, 5, 2), 4)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	points := ExpenseTrend(sampleExpenses(), window)

	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}
	wantCents := []int64{0, 0, 2500, 1000}
	for i, p := range points {
		if p.Amount.Cents != wantCents[i] {
			t.Fatalf("point %d (%s): got %d cents, want %d", i, p.Day, p.Amount.Cents, wantCents[i])
		}
		if p.Day != window[i].Key() {
			t.Fatalf("point %d out of order: %s vs %s", i, p.Day, window[i].Key())
		}
	}
}

func TestExpenseAggregationIdempotent(t *testing.T) {
	records := sampleExpenses()
	window, _ := TrailingDays(core.NewDate(2024, 5, 2), 7)

	first := ExpenseTrend(records, window)
	second := ExpenseTrend(records, window)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("trend not idempotent")
	}
	if !reflect.DeepEqual(ExpenseByCategory(records), ExpenseByCategory(records)) {
		t.Fatalf("category breakdown not idempotent")
	}
}

func TestExpenseTrendDoesNotMutateInput(t *testing.T) {
	records := sampleExpenses()
	snapshot := make([]core.ExpenseRecord, len(records))
	copy(snapshot, records)

	window, _ := TrailingDays(core.NewDate(2024, 5, 2), 7)
	_ = ExpenseTrend(records, window)
	_ = ExpenseByDay(records)

	if !reflect.DeepEqual(records, snapshot) {
		t.Fatalf("input records were mutated")
	}
}
