package pipeline

import (
	"fmt"
	"strings"
	"time"
)

// DateColumn picks the date column of a table: the first column named
// "date" or "datum" (any case), else "date".
func DateColumn(t *Table) string {
	for _, c := range t.Columns {
		switch strings.ToLower(c.Name) {
		case "date", "datum":
			return c.Name
		}
	}
	return "date"
}

// ByDates keeps the rows whose date lies in r, inclusive. Dates are
// compared as ISO day strings.
func ByDates(t *Table, r DateRange) (*Table, error) {
	col := DateColumn(t)
	i := t.ColumnIndex(col)
	if i < 0 {
		return nil, fmt.Errorf("%w: table has no %q column", ErrDataIntegrity, col)
	}
	var bad error
	out := t.Filter(func(row []any) bool {
		d, err := cellDate(row[i])
		if err != nil {
			bad = err
			return false
		}
		return r.Contains(d)
	})
	if bad != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, bad)
	}
	return out, nil
}

// InRange keeps the rows whose day lies in r, preserving order.
func InRange[T Dated](rows []T, r DateRange) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if r.Contains(row.Day()) {
			out = append(out, row)
		}
	}
	return out
}

// MealSelector restricts meals to a slot.
type MealSelector string

const (
	MealsAll       MealSelector = "all"
	MealsBreakfast MealSelector = "breakfast"
	MealsLunch     MealSelector = "lunch"
	MealsDinner    MealSelector = "dinner"
)

// ParseMealSelector validates a meal selector; empty means inactive.
func ParseMealSelector(s string) (MealSelector, error) {
	switch m := MealSelector(strings.TrimSpace(s)); m {
	case "", MealsAll, MealsBreakfast, MealsLunch, MealsDinner:
		return m, nil
	default:
		return "", fmt.Errorf("%w: meal %q", ErrInvalidSelector, s)
	}
}

func (m MealSelector) match(slot MealSlot) bool {
	switch m {
	case MealsAll:
		return slot == SlotBreakfast || slot == SlotLunch || slot == SlotDinner
	case MealsBreakfast:
		return slot == SlotBreakfast
	case MealsLunch:
		return slot == SlotLunch
	case MealsDinner:
		return slot == SlotDinner
	}
	return true
}

// SymptomSelector restricts meals by how they relate to symptom days.
type SymptomSelector string

const (
	SymptomAllDays   SymptomSelector = "all"
	SymptomFreeDays  SymptomSelector = "symptom_free"
	SymptomDays      SymptomSelector = "symptom"
	SymptomDayBefore SymptomSelector = "before_symptom"
)

// ParseSymptomSelector validates a symptom selector; empty means inactive.
func ParseSymptomSelector(s string) (SymptomSelector, error) {
	switch v := SymptomSelector(strings.TrimSpace(s)); v {
	case "", SymptomAllDays, SymptomFreeDays, SymptomDays, SymptomDayBefore:
		return v, nil
	default:
		return "", fmt.Errorf("%w: symptom %q", ErrInvalidSelector, s)
	}
}

func (s SymptomSelector) match(m EnrichedMeal) bool {
	switch s {
	case SymptomFreeDays:
		return !m.SymptomSameDay
	case SymptomDays:
		return m.SymptomSameDay
	case SymptomDayBefore:
		return m.SymptomNextDay
	}
	return true
}

// Palette names the colour scale charts use for the selected days.
func (s SymptomSelector) Palette() string {
	switch s {
	case SymptomFreeDays:
		return "greens"
	case SymptomDays:
		return "reds"
	case SymptomDayBefore:
		return "oranges"
	}
	return "blues"
}

// MaxGrade is the top of the symptom severity scale.
const MaxGrade = 10

// Selectors combines the active filters. Zero fields are inactive.
type Selectors struct {
	Meal    MealSelector
	Symptom SymptomSelector
	// MinGrade keeps meals whose average symptom grade is at least this value.
	MinGrade int
}

// Validate rejects values outside each selector's enumeration.
func (s Selectors) Validate() error {
	if _, err := ParseMealSelector(string(s.Meal)); err != nil {
		return err
	}
	if _, err := ParseSymptomSelector(string(s.Symptom)); err != nil {
		return err
	}
	if s.MinGrade < 0 || s.MinGrade > MaxGrade {
		return fmt.Errorf("%w: grade %d outside 1..%d", ErrInvalidSelector, s.MinGrade, MaxGrade)
	}
	return nil
}

// BySelectors keeps the meals matching every active selector.
func BySelectors(meals []EnrichedMeal, sel Selectors) ([]EnrichedMeal, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	out := make([]EnrichedMeal, 0, len(meals))
	for _, m := range meals {
		if !sel.Meal.match(m.Slot) || !sel.Symptom.match(m) {
			continue
		}
		if sel.MinGrade > 0 && (m.AvgGrade == nil || *m.AvgGrade < float64(sel.MinGrade)) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// SymptomDates returns the set of days with at least one report.
func SymptomDates(symptoms []SymptomReport) map[time.Time]struct{} {
	days := make(map[time.Time]struct{}, len(symptoms))
	for _, s := range symptoms {
		days[toDay(s.Date)] = struct{}{}
	}
	return days
}
