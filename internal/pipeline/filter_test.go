package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByDates(t *testing.T) {
	tbl := NewTable(Column{Name: "Datum", Type: TypeDate}, Column{Name: "value", Type: TypeInt})
	for i, d := range []string{"2023-01-01", "2023-01-05", "2023-01-10", "2023-01-11"} {
		tbl.Append(day(t, d), i)
	}
	r := DateRange{Start: day(t, "2023-01-05"), End: day(t, "2023-01-10")}

	out, err := ByDates(tbl, r)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, int64(1), out.Rows[0][1])
	assert.Equal(t, int64(2), out.Rows[1][1])

	again, err := ByDates(out, r)
	require.NoError(t, err)
	assert.Equal(t, out, again)

	for _, row := range out.Rows {
		assert.True(t, r.Contains(row[0].(time.Time)))
	}
}

func TestByDatesMissingColumn(t *testing.T) {
	tbl := NewTable(Column{Name: "when", Type: TypeDate})
	_, err := ByDates(tbl, DateRange{})
	assert.ErrorIs(t, err, ErrDataIntegrity)
}

func TestDateColumn(t *testing.T) {
	assert.Equal(t, "DATE", DateColumn(NewTable(Column{Name: "x"}, Column{Name: "DATE"})))
	assert.Equal(t, "Datum", DateColumn(NewTable(Column{Name: "Datum"})))
	assert.Equal(t, "date", DateColumn(NewTable(Column{Name: "x"})))
}

func TestInRange(t *testing.T) {
	symptoms := []SymptomReport{
		report(t, "2023-02-01", TimingUnknown, "a", 1),
		report(t, "2023-02-02", TimingUnknown, "b", 1),
		report(t, "2023-02-03", TimingUnknown, "c", 1),
	}
	out := InRange(symptoms, DateRange{Start: day(t, "2023-02-02")})
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].Symptom)
}

func selectorFixture(t *testing.T) []EnrichedMeal {
	grade := func(f float64) *float64 { return &f }
	return []EnrichedMeal{
		{MealEntry: meal(t, "2023-01-01", 1, SlotBreakfast, "Brot"), SymptomSameDay: true, AvgGrade: grade(7)},
		{MealEntry: meal(t, "2023-01-01", 2, SlotLunch, "Reis"), SymptomSameDay: true, AvgGrade: grade(2)},
		{MealEntry: meal(t, "2023-01-02", 3, SlotDinner, "Suppe"), SymptomNextDay: true},
		{MealEntry: meal(t, "2023-01-03", 4, "SNACK", "Apfel")},
	}
}

func TestBySelectors(t *testing.T) {
	meals := selectorFixture(t)

	tests := []struct {
		name     string
		sel      Selectors
		expected []int64
	}{
		{"inactive selectors pass everything", Selectors{}, []int64{1, 2, 3, 4}},
		{"all meals excludes other slots", Selectors{Meal: MealsAll}, []int64{1, 2, 3}},
		{"breakfast", Selectors{Meal: MealsBreakfast}, []int64{1}},
		{"symptom-free days", Selectors{Symptom: SymptomFreeDays}, []int64{3, 4}},
		{"symptom days", Selectors{Symptom: SymptomDays}, []int64{1, 2}},
		{"day before symptoms", Selectors{Symptom: SymptomDayBefore}, []int64{3}},
		{"grade threshold", Selectors{MinGrade: 5}, []int64{1}},
		{"selectors are combined", Selectors{Meal: MealsLunch, Symptom: SymptomDays, MinGrade: 2}, []int64{2}},
		{"empty result is fine", Selectors{Meal: MealsDinner, Symptom: SymptomDays}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := BySelectors(meals, tt.sel)
			require.NoError(t, err)
			ids := []int64{}
			for _, m := range out {
				ids = append(ids, m.MealID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestBySelectorsRejectsUnknownValues(t *testing.T) {
	meals := selectorFixture(t)
	for _, sel := range []Selectors{
		{Meal: "brunch"},
		{Symptom: "E"},
		{MinGrade: 11},
		{MinGrade: -1},
	} {
		_, err := BySelectors(meals, sel)
		assert.ErrorIs(t, err, ErrInvalidSelector, "%+v", sel)
	}
}

func TestParseSelectors(t *testing.T) {
	m, err := ParseMealSelector(" dinner ")
	require.NoError(t, err)
	assert.Equal(t, MealsDinner, m)

	_, err = ParseMealSelector("A")
	assert.ErrorIs(t, err, ErrInvalidSelector)

	s, err := ParseSymptomSelector("before_symptom")
	require.NoError(t, err)
	assert.Equal(t, SymptomDayBefore, s)
	assert.Equal(t, "oranges", s.Palette())
	assert.Equal(t, "blues", SymptomSelector("").Palette())
}
