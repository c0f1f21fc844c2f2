package core

import (
	"errors"
	"time"
)

// Expense categories form a fixed enumeration; stats iterate it in this order.
const (
	CategoryMeals     ExpenseCategory = "MEALS"
	CategorySnacks    ExpenseCategory = "SNACKS"
	CategoryTransport ExpenseCategory = "TRANSPORT"
	CategoryHousing   ExpenseCategory = "HOUSING"
	CategoryHealth    ExpenseCategory = "HEALTH"
	CategoryLeisure   ExpenseCategory = "LEISURE"
	CategoryEducation ExpenseCategory = "EDUCATION"
	CategoryOther     ExpenseCategory = "OTHER"
)

// MinutesPerDay bounds a TimeOfDay value.
const MinutesPerDay = 1440

// NoTime marks an optional time-of-day field that was not recorded.
const NoTime TimeOfDay = -1

// Meal status levels, ordered from worst to best.
const (
	MealNotEaten MealStatus = iota
	MealIrregular
	MealRegular
)

type (
	ExpenseCategory string

	// TimeOfDay is a time expressed as minutes since midnight, 0-1439.
	TimeOfDay int

	// MealStatus is the three-level outcome of a meal slot.
	MealStatus int

	Money struct {
		Cents int64 `json:"cents"`
	}

	// ExpenseRecord is a single dated expense.
	ExpenseRecord struct {
		Date        Date
		CreatedAt   time.Time
		Amount      Money
		Category    ExpenseCategory
		Description string
	}

	// SleepRecord is one night of sleep. Duration is explicit minutes when
	// positive; otherwise it is derived from SleepTime/WakeTime, handling
	// sleep that crosses midnight.
	SleepRecord struct {
		Date      Date
		CreatedAt time.Time
		SleepTime TimeOfDay
		WakeTime  TimeOfDay
		Quality   int // 0-100
		Duration  int // minutes; <= 0 means derive
		Nap       bool
	}

	// StudyRecord is a single study session.
	StudyRecord struct {
		Date      Date
		CreatedAt time.Time
		Category  string
		Minutes   int
		Title     string
	}

	// HabitRecord is the daily habit check-in: meal slots, chore booleans,
	// optional attendance times, and an optional step count.
	HabitRecord struct {
		Date      Date
		CreatedAt time.Time

		Breakfast MealStatus
		Lunch     MealStatus
		Dinner    MealStatus

		Laundry  bool
		Cleaning bool
		Shower   bool
		Skincare bool

		CheckIn  TimeOfDay // NoTime when not recorded
		CheckOut TimeOfDay
		Leave    TimeOfDay

		Steps int
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidTimeOfDay  = errors.New("time of day out of range")
	ErrInvalidQuality    = errors.New("quality out of range")
	ErrNegativeMinutes   = errors.New("negative minutes")
	ErrEmptyCategory     = errors.New("empty category")
	ErrInvalidMealStatus = errors.New("invalid meal status")
	ErrNegativeSteps     = errors.New("negative step count")
	ErrUnknownDomain     = errors.New("unknown record domain")
)

// ExpenseCategories returns the fixed enumeration in display order.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		CategoryMeals,
		CategorySnacks,
		CategoryTransport,
		CategoryHousing,
		CategoryHealth,
		CategoryLeisure,
		CategoryEducation,
		CategoryOther,
	}
}

func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Known reports whether the optional field was recorded at all.
func (t TimeOfDay) Known() bool {
	return t != NoTime
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

func (s MealStatus) Valid() bool {
	return s >= MealNotEaten && s <= MealRegular
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r ExpenseRecord) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if !r.Category.Valid() {
		return ErrInvalidCategory
	}
	if len(r.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (r SleepRecord) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if !r.SleepTime.Valid() || !r.WakeTime.Valid() {
		return ErrInvalidTimeOfDay
	}
	if r.Quality < 0 || r.Quality > 100 {
		return ErrInvalidQuality
	}
	return nil
}

// EffectiveDuration returns explicit minutes when set, otherwise
// (wake - sleep) mod 1440 so nights crossing midnight come out positive.
func (r SleepRecord) EffectiveDuration() int {
	if r.Duration > 0 {
		return r.Duration
	}
	d := (int(r.WakeTime) - int(r.SleepTime)) % MinutesPerDay
	if d < 0 {
		d += MinutesPerDay
	}
	return d
}

func (r StudyRecord) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if r.Category == "" {
		return ErrEmptyCategory
	}
	if r.Minutes < 0 {
		return ErrNegativeMinutes
	}
	return nil
}

func (r HabitRecord) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	for _, s := range []MealStatus{r.Breakfast, r.Lunch, r.Dinner} {
		if !s.Valid() {
			return ErrInvalidMealStatus
		}
	}
	for _, t := range []TimeOfDay{r.CheckIn, r.CheckOut, r.Leave} {
		if t.Known() && !t.Valid() {
			return ErrInvalidTimeOfDay
		}
	}
	if r.Steps < 0 {
		return ErrNegativeSteps
	}
	return nil
}
