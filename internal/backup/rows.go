package backup

import (
	"fmt"
	"time"

	"lifelog/internal/core"
)

// SheetFor maps a record domain to its backup sheet base name. Adapters may
// prefix the year, so callers should treat this as a base, not a final name.
func SheetFor(domain core.Domain) string {
	switch domain {
	case core.DomainExpenses:
		return "Expenses"
	case core.DomainSleep:
		return "Sleep"
	case core.DomainStudy:
		return "Study"
	case core.DomainHabits:
		return "Habits"
	}
	return "Records"
}

// ExpenseRow flattens an expense for its backup sheet.
func ExpenseRow(rec core.ExpenseRecord) Row {
	return Row{
		rec.Date.Key(),
		rec.CreatedAt.UTC().Format(time.RFC3339),
		rec.Amount.Euros(),
		string(rec.Category),
		rec.Description,
	}
}

// SleepRow flattens a sleep log. Times go out as HH:MM so the sheet stays
// readable; the derived duration is included so formulas are unnecessary.
func SleepRow(rec core.SleepRecord) Row {
	return Row{
		rec.Date.Key(),
		rec.CreatedAt.UTC().Format(time.RFC3339),
		formatTimeOfDay(rec.SleepTime),
		formatTimeOfDay(rec.WakeTime),
		rec.Quality,
		rec.EffectiveDuration(),
		rec.Nap,
	}
}

// StudyRow flattens a study session.
func StudyRow(rec core.StudyRecord) Row {
	return Row{
		rec.Date.Key(),
		rec.CreatedAt.UTC().Format(time.RFC3339),
		rec.Category,
		rec.Minutes,
		rec.Title,
	}
}

// HabitRow flattens a daily habit check-in.
func HabitRow(rec core.HabitRecord) Row {
	return Row{
		rec.Date.Key(),
		rec.CreatedAt.UTC().Format(time.RFC3339),
		mealLabel(rec.Breakfast),
		mealLabel(rec.Lunch),
		mealLabel(rec.Dinner),
		rec.Laundry,
		rec.Cleaning,
		rec.Shower,
		rec.Skincare,
		formatTimeOfDay(rec.CheckIn),
		formatTimeOfDay(rec.CheckOut),
		formatTimeOfDay(rec.Leave),
		rec.Steps,
	}
}

func formatTimeOfDay(t core.TimeOfDay) string {
	if !t.Known() {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func mealLabel(s core.MealStatus) string {
	switch s {
	case core.MealRegular:
		return "regular"
	case core.MealIrregular:
		return "irregular"
	default:
		return "not eaten"
	}
}
