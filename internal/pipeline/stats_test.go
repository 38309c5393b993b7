package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsageStatistics(t *testing.T) {
	// Mon 2023-01-02 .. Fri 2023-01-06 share one ISO week.
	entries := []MealEntry{
		meal(t, "2023-01-02", 1, SlotBreakfast, "Brot"),
		meal(t, "2023-01-02", 2, SlotLunch, "Reis"),
		meal(t, "2023-01-03", 3, SlotBreakfast, "Brot"),
		meal(t, "2023-01-04", 4, SlotDinner, "Suppe"),
		meal(t, "2023-01-05", 5, SlotBreakfast, "Müsli"),
		meal(t, "2023-01-06", 6, SlotBreakfast, "Müsli"),
	}
	symptoms := []SymptomReport{
		report(t, "2023-01-03", TimingAfterBreakfast, "Bauchweh", 3),
		report(t, "2023-01-03", TimingAfterLunch, "Bauchweh", 5),
		report(t, "2023-01-05", TimingUnknown, "Kopfweh", 2),
	}
	meals, _ := Enrich(entries, symptoms)

	stats := UsageStatistics(meals, symptoms)
	assert.Equal(t, 5, stats.UsageDays)
	assert.Equal(t, 3, stats.SymptomCount)
	assert.Equal(t, 2, stats.SymptomDays)
	assert.Equal(t, 40.0, stats.SymptomDaysPerc)
	assert.Equal(t, 2.0, stats.SymptomDaysPerWeek)
	assert.Equal(t, 80.0, stats.BreakfastRate)
	assert.Equal(t, 20.0, stats.LunchRate)
	assert.Equal(t, 20.0, stats.DinnerRate)
}

func TestUsageStatisticsWeeksWithoutSymptomsCountAsZero(t *testing.T) {
	entries := []MealEntry{
		meal(t, "2023-01-02", 1, SlotBreakfast, "Brot"),
		meal(t, "2023-01-09", 2, SlotBreakfast, "Brot"),
		meal(t, "2023-01-16", 3, SlotBreakfast, "Brot"),
	}
	symptoms := []SymptomReport{
		report(t, "2023-01-02", TimingAfterBreakfast, "Bauchweh", 3),
		report(t, "2023-01-03", TimingAfterBreakfast, "Bauchweh", 3),
	}
	meals, _ := Enrich(entries, symptoms)

	stats := UsageStatistics(meals, symptoms)
	assert.Equal(t, 0.7, stats.SymptomDaysPerWeek)
	assert.Equal(t, 50.0, stats.SymptomDaysPerc)
}

func TestUsageStatisticsEmpty(t *testing.T) {
	stats := UsageStatistics(nil, nil)
	assert.Equal(t, Statistics{}, stats)

	tbl := stats.Table(DefaultOptions().Labels)
	assert.Equal(t, 8, tbl.Len())
	assert.Equal(t, "0.0%", tbl.Rows[3][1])
}

func TestStatisticsTable(t *testing.T) {
	stats := Statistics{UsageDays: 5, SymptomCount: 3, SymptomDays: 2, SymptomDaysPerc: 40, SymptomDaysPerWeek: 1.5, BreakfastRate: 100}
	tbl := stats.Table(DefaultOptions().Labels)

	assert.Equal(t, []string{"Überschrift", "Werte"}, tbl.ColumnNames())
	assert.Equal(t, []any{"Dokumentierte Tage", "5"}, tbl.Rows[0])
	assert.Equal(t, []any{"Tage mit Symptomen (Anteil)", "40.0%"}, tbl.Rows[3])
	assert.Equal(t, []any{"Tage mit Symptomen pro Woche (⌀)", "1.5"}, tbl.Rows[4])
	assert.Equal(t, []any{"Häufigkeit Frühstück", "100.0%"}, tbl.Rows[5])
}
