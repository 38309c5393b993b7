package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	isoDate,
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// NormalizeHeaders returns a copy of t whose column names are lower-cased
// with spaces replaced by underscores.
func NormalizeHeaders(t *Table) *Table {
	out := &Table{Columns: make([]Column, len(t.Columns)), Rows: t.Rows}
	for i, c := range t.Columns {
		out.Columns[i] = Column{
			Name: strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c.Name)), " ", "_"),
			Type: c.Type,
		}
	}
	return out
}

// CleanMeals turns the raw meal rows into typed entries. Duplicate rows on
// (account_id, date, meal_id, meal, name) are dropped, first one wins.
func CleanMeals(raw *Table) ([]MealEntry, error) {
	t := NormalizeHeaders(raw)
	idx, err := requireColumns(t, "account_id", "date", "meal_id", "meal|meal_slot", "name|foodstuff_name")
	if err != nil {
		return nil, err
	}

	type dedupKey struct {
		account int64
		date    string
		mealID  int64
		slot    MealSlot
		name    string
		hasName bool
	}
	seen := make(map[dedupKey]struct{}, len(t.Rows))
	meals := make([]MealEntry, 0, len(t.Rows))

	for r, row := range t.Rows {
		account, err := cellInt(row[idx[0]])
		if err != nil {
			return nil, rowError(r, "account_id", err)
		}
		date, err := cellDate(row[idx[1]])
		if err != nil {
			return nil, rowError(r, "date", err)
		}
		mealID, err := cellInt(row[idx[2]])
		if err != nil {
			return nil, rowError(r, "meal_id", err)
		}
		slot, _ := cellString(row[idx[3]])
		name, hasName := cellString(row[idx[4]])

		key := dedupKey{account, dayKey(date), mealID, MealSlot(slot), name, hasName}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		entry := MealEntry{AccountID: account, Date: date, MealID: mealID, Slot: MealSlot(slot)}
		if hasName {
			entry.Name = strPtr(name)
		}
		meals = append(meals, entry)
	}
	return meals, nil
}

// CleanSymptoms turns the raw report rows into typed symptom reports.
func CleanSymptoms(raw *Table) ([]SymptomReport, error) {
	t := NormalizeHeaders(raw)
	idx, err := requireColumns(t, "account_id", "date", "timing", "symptom", "grade")
	if err != nil {
		return nil, err
	}

	reports := make([]SymptomReport, 0, len(t.Rows))
	for r, row := range t.Rows {
		account, err := cellInt(row[idx[0]])
		if err != nil {
			return nil, rowError(r, "account_id", err)
		}
		date, err := cellDate(row[idx[1]])
		if err != nil {
			return nil, rowError(r, "date", err)
		}
		timing, _ := cellString(row[idx[2]])
		symptom, _ := cellString(row[idx[3]])
		var grade int64
		if row[idx[4]] != nil {
			if grade, err = cellInt(row[idx[4]]); err != nil {
				return nil, rowError(r, "grade", err)
			}
		}
		reports = append(reports, SymptomReport{
			AccountID: account,
			Date:      date,
			Timing:    Timing(timing),
			Symptom:   symptom,
			Grade:     int(grade),
		})
	}
	return reports, nil
}

// requireColumns resolves each wanted column (alternatives separated by
// "|") to its index.
func requireColumns(t *Table, wanted ...string) ([]int, error) {
	idx := make([]int, len(wanted))
	for i, w := range wanted {
		idx[i] = -1
		for _, name := range strings.Split(w, "|") {
			if j := t.ColumnIndex(name); j >= 0 {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 {
			return nil, fmt.Errorf("%w: missing column %q", ErrDataIntegrity, w)
		}
	}
	for r, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrDataIntegrity, r, len(row), len(t.Columns))
		}
	}
	return idx, nil
}

func rowError(row int, column string, err error) error {
	return fmt.Errorf("%w: row %d column %s: %v", ErrDataIntegrity, row, column, err)
}

func cellDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return toDay(d), nil
	case string:
		return parseDate(d)
	case []byte:
		return parseDate(string(d))
	case nil:
		return time.Time{}, fmt.Errorf("date is null")
	default:
		return time.Time{}, fmt.Errorf("unsupported date value %T", v)
	}
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return toDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}

func cellInt(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		return int64(n), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
	case nil:
		return 0, fmt.Errorf("value is null")
	default:
		return 0, fmt.Errorf("unsupported integer value %T", v)
	}
}

func cellString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case nil:
		return "", false
	default:
		return fmt.Sprint(s), true
	}
}
