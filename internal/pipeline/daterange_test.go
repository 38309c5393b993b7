package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataRange(t *testing.T) {
	meals := []MealEntry{
		meal(t, "2023-03-05", 1, SlotLunch, "Reis"),
		meal(t, "2023-03-02", 2, SlotLunch, "Reis"),
	}
	symptoms := []SymptomReport{report(t, "2023-03-09", TimingUnknown, "x", 1)}

	r, ok := DataRange(meals, symptoms)
	require.True(t, ok)
	assert.Equal(t, day(t, "2023-03-02"), r.Start)
	assert.Equal(t, day(t, "2023-03-09"), r.End)

	r, ok = DataRange(meals, []SymptomReport(nil))
	require.True(t, ok)
	assert.Equal(t, day(t, "2023-03-05"), r.End)

	_, ok = DataRange([]MealEntry(nil), []SymptomReport(nil))
	assert.False(t, ok)
}

func TestLastDays(t *testing.T) {
	r := LastDays(day(t, "2023-03-29"), 28)
	assert.Equal(t, day(t, "2023-03-01"), r.Start)
	assert.Equal(t, day(t, "2023-03-29"), r.End)
}

func TestResolveTimespan(t *testing.T) {
	data := DateRange{Start: day(t, "2022-01-01"), End: day(t, "2023-03-29")}

	tests := []struct {
		name     string
		ts       Timespan
		picked   DateRange
		expected DateRange
	}{
		{"whole range", TimespanAll, DateRange{}, data},
		{"one week", TimespanOneWeek, DateRange{}, DateRange{Start: day(t, "2023-03-22"), End: day(t, "2023-03-29")}},
		{"four weeks", TimespanFourWeeks, DateRange{}, DateRange{Start: day(t, "2023-03-01"), End: day(t, "2023-03-29")}},
		{"three months", TimespanThreeMonths, DateRange{}, DateRange{Start: day(t, "2023-01-04"), End: day(t, "2023-03-29")}},
		{"custom", TimespanCustom, DateRange{Start: day(t, "2022-06-01"), End: day(t, "2022-06-30")}, DateRange{Start: day(t, "2022-06-01"), End: day(t, "2022-06-30")}},
		{"custom open end", TimespanCustom, DateRange{Start: day(t, "2022-06-01")}, DateRange{Start: day(t, "2022-06-01"), End: data.End}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTimespan(tt.ts, tt.picked, data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ResolveTimespan("E", DateRange{}, data)
	assert.ErrorIs(t, err, ErrInvalidSelector)

	_, err = ResolveTimespan(TimespanCustom, DateRange{Start: day(t, "2023-01-02"), End: day(t, "2023-01-01")}, data)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2023-01-01T00:00:00", "2023-01-31")
	require.NoError(t, err)
	assert.Equal(t, day(t, "2023-01-01"), r.Start)
	assert.Equal(t, day(t, "2023-01-31"), r.End)

	r, err = ParseDateRange("", "")
	require.NoError(t, err)
	assert.True(t, r.IsZero())

	_, err = ParseDateRange("01/02/2023", "")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = ParseDateRange("2023-02-01", "2023-01-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestParseTimespan(t *testing.T) {
	ts, err := ParseTimespan("")
	require.NoError(t, err)
	assert.Equal(t, TimespanCustom, ts)

	ts, err = ParseTimespan("four_weeks")
	require.NoError(t, err)
	assert.Equal(t, 28, ts.Days())

	_, err = ParseTimespan("B")
	assert.ErrorIs(t, err, ErrInvalidSelector)
}

func TestDateRangeDays(t *testing.T) {
	days := DateRange{Start: day(t, "2023-02-27"), End: day(t, "2023-03-02")}.Days()
	require.Len(t, days, 4)
	assert.Equal(t, day(t, "2023-03-01"), days[2])
	assert.Nil(t, DateRange{}.Days())
}

func TestDateRangeMarshalJSON(t *testing.T) {
	b, err := json.Marshal(DateRange{Start: day(t, "2024-03-04")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-03-04","end":null}`, string(b))

	b, err = json.Marshal(DateRange{Start: day(t, "2024-03-04"), End: day(t, "2024-03-06")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-03-04","end":"2024-03-06"}`, string(b))
}
