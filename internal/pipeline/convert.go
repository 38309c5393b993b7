package pipeline

import (
	"fmt"
	"time"
)

var mealColumns = []Column{
	{Name: "account_id", Type: TypeInt},
	{Name: "date", Type: TypeDate},
	{Name: "meal_id", Type: TypeInt},
	{Name: "meal", Type: TypeString},
	{Name: "name", Type: TypeString},
	{Name: "weekday", Type: TypeInt},
	{Name: "name_normalized", Type: TypeString},
	{Name: "symptom_same_day", Type: TypeBool},
	{Name: "symptom_next_day", Type: TypeBool},
	{Name: "symptoms", Type: TypeString},
	{Name: "avg_grade", Type: TypeFloat},
}

var symptomColumns = []Column{
	{Name: "account_id", Type: TypeInt},
	{Name: "date", Type: TypeDate},
	{Name: "timing", Type: TypeString},
	{Name: "symptom", Type: TypeString},
	{Name: "grade", Type: TypeInt},
}

// MealsTable converts enriched meals into a table.
func MealsTable(meals []EnrichedMeal) *Table {
	t := NewTable(mealColumns...)
	for _, m := range meals {
		t.Append(m.AccountID, m.Date, m.MealID, string(m.Slot), m.Name, m.Weekday,
			m.NameNormalized, m.SymptomSameDay, m.SymptomNextDay, m.Symptoms, m.AvgGrade)
	}
	return t
}

// MealsFromTable reads back a table written by MealsTable.
func MealsFromTable(t *Table) ([]EnrichedMeal, error) {
	idx, err := requireColumns(t, "account_id", "date", "meal_id", "meal", "name", "weekday",
		"name_normalized", "symptom_same_day", "symptom_next_day", "symptoms", "avg_grade")
	if err != nil {
		return nil, err
	}
	meals := make([]EnrichedMeal, 0, len(t.Rows))
	for r, row := range t.Rows {
		var m EnrichedMeal
		var e cellErrors
		m.AccountID = e.toInt(row[idx[0]])
		m.Date = e.toDate(row[idx[1]])
		m.MealID = e.toInt(row[idx[2]])
		if s := e.optString(row[idx[3]]); s != nil {
			m.Slot = MealSlot(*s)
		}
		m.Name = e.optString(row[idx[4]])
		m.Weekday = int(e.toInt(row[idx[5]]))
		m.NameNormalized = e.optString(row[idx[6]])
		m.SymptomSameDay = e.toBool(row[idx[7]])
		m.SymptomNextDay = e.toBool(row[idx[8]])
		m.Symptoms = e.optString(row[idx[9]])
		m.AvgGrade = e.optFloat(row[idx[10]])
		if e.err != nil {
			return nil, fmt.Errorf("%w: meal row %d: %v", ErrDataIntegrity, r, e.err)
		}
		meals = append(meals, m)
	}
	return meals, nil
}

// SymptomsTable converts symptom reports into a table.
func SymptomsTable(symptoms []SymptomReport) *Table {
	t := NewTable(symptomColumns...)
	for _, s := range symptoms {
		t.Append(s.AccountID, s.Date, string(s.Timing), s.Symptom, s.Grade)
	}
	return t
}

// SymptomsFromTable reads back a table written by SymptomsTable.
func SymptomsFromTable(t *Table) ([]SymptomReport, error) {
	idx, err := requireColumns(t, "account_id", "date", "timing", "symptom", "grade")
	if err != nil {
		return nil, err
	}
	reports := make([]SymptomReport, 0, len(t.Rows))
	for r, row := range t.Rows {
		var s SymptomReport
		var e cellErrors
		s.AccountID = e.toInt(row[idx[0]])
		s.Date = e.toDate(row[idx[1]])
		if v := e.optString(row[idx[2]]); v != nil {
			s.Timing = Timing(*v)
		}
		if v := e.optString(row[idx[3]]); v != nil {
			s.Symptom = *v
		}
		s.Grade = int(e.toInt(row[idx[4]]))
		if e.err != nil {
			return nil, fmt.Errorf("%w: symptom row %d: %v", ErrDataIntegrity, r, e.err)
		}
		reports = append(reports, s)
	}
	return reports, nil
}

// cellErrors keeps the first conversion error so row decoding stays flat.
type cellErrors struct{ err error }

func (e *cellErrors) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *cellErrors) toInt(v any) int64 {
	n, err := cellInt(v)
	if err != nil {
		e.fail(err)
	}
	return n
}

func (e *cellErrors) toDate(v any) time.Time {
	d, err := cellDate(v)
	if err != nil {
		e.fail(err)
	}
	return d
}

func (e *cellErrors) toBool(v any) bool {
	b, ok := v.(bool)
	if !ok {
		e.fail(fmt.Errorf("expected bool, got %T", v))
	}
	return b
}

func (e *cellErrors) optString(v any) *string {
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		e.fail(fmt.Errorf("expected string, got %T", v))
		return nil
	}
	return &s
}

func (e *cellErrors) optFloat(v any) *float64 {
	switch f := v.(type) {
	case nil:
		return nil
	case float64:
		return &f
	case int64:
		x := float64(f)
		return &x
	default:
		e.fail(fmt.Errorf("expected number, got %T", v))
		return nil
	}
}
