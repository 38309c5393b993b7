package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbablyBadFoods(t *testing.T) {
	entries := []MealEntry{
		meal(t, "2023-06-01", 1, SlotBreakfast, "Milch"),
		meal(t, "2023-06-01", 1, SlotBreakfast, "Brot"),
		meal(t, "2023-06-02", 2, SlotBreakfast, "Brot"),
		meal(t, "2023-06-03", 3, SlotBreakfast, "Milch"),
		meal(t, "2023-06-03", 3, SlotBreakfast, "Käse"),
	}
	symptoms := []SymptomReport{
		report(t, "2023-06-01", TimingAfterBreakfast, "Bauchweh", 5),
		report(t, "2023-06-03", TimingAfterBreakfast, "Bauchweh", 5),
	}
	meals, _ := Enrich(entries, symptoms)

	got := ProbablyBadFoods(meals, 5)
	assert.Equal(t, []string{"Milch", "Käse"}, got)
	assert.NotContains(t, got, "Brot")
}

func TestProbablyBadFoodsFallsBackToSymptomDayFoods(t *testing.T) {
	entries := []MealEntry{
		meal(t, "2023-06-01", 1, SlotLunch, "Reis"),
		meal(t, "2023-06-02", 2, SlotLunch, "Reis"),
		meal(t, "2023-06-02", 2, SlotLunch, "Huhn"),
		meal(t, "2023-06-03", 3, SlotLunch, "Huhn"),
	}
	symptoms := []SymptomReport{report(t, "2023-06-02", TimingAfterLunch, "Übelkeit", 4)}
	meals, _ := Enrich(entries, symptoms)

	// Reis: same day 1, next day 1. Huhn: same day 1, next day 0.
	assert.Equal(t, []string{"Reis", "Huhn"}, ProbablyBadFoods(meals, 5))
}

func TestProbablyBadFoodsWithoutSymptoms(t *testing.T) {
	meals, _ := Enrich([]MealEntry{meal(t, "2023-06-01", 1, SlotLunch, "Reis")}, nil)
	assert.Empty(t, ProbablyBadFoods(meals, 5))
}

func TestProbablyBadFoodsLimit(t *testing.T) {
	var entries []MealEntry
	var symptoms []SymptomReport
	for i, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		date := []string{"2023-06-01", "2023-06-02", "2023-06-03", "2023-06-04", "2023-06-05", "2023-06-06", "2023-06-07"}[i]
		entries = append(entries, meal(t, date, int64(i), SlotLunch, name))
		symptoms = append(symptoms, report(t, date, TimingAfterLunch, "x", 1))
	}
	meals, _ := Enrich(entries, symptoms)
	got := ProbablyBadFoods(meals, 5)
	assert.Len(t, got, 5)
}
