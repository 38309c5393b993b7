package pipeline

import (
	"testing"
	"time"
)

func day(t testing.TB, s string) time.Time {
	t.Helper()
	d, err := time.Parse(isoDate, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func meal(t testing.TB, date string, mealID int64, slot MealSlot, name string) MealEntry {
	t.Helper()
	return MealEntry{AccountID: 1, Date: day(t, date), MealID: mealID, Slot: slot, Name: strPtr(name)}
}

func report(t testing.TB, date string, timing Timing, symptom string, grade int) SymptomReport {
	t.Helper()
	return SymptomReport{AccountID: 1, Date: day(t, date), Timing: timing, Symptom: symptom, Grade: grade}
}
