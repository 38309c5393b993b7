package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/symptom-diary/backend/internal/mocks"
	"github.com/pageza/symptom-diary/backend/internal/pipeline"
	"github.com/pageza/symptom-diary/backend/internal/service"
	"github.com/pageza/symptom-diary/backend/internal/testhelpers"
)

func newDashboard(t *testing.T) (*service.DashboardService, string) {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	testhelpers.SeedSample(t, db, 1)

	svc := service.NewDashboardService(
		service.NewAccountService(db, nil),
		service.NewMemorySessionStore(),
		pipeline.DefaultOptions(),
		nil,
	)
	res, err := svc.Search(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, service.AccountReady, res.Status)
	require.NotEmpty(t, res.SessionID)
	return svc, res.SessionID
}

func TestSearch(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	testhelpers.SeedSample(t, db, 1)
	sessions := service.NewMemorySessionStore()
	svc := service.NewDashboardService(service.NewAccountService(db, nil), sessions, pipeline.DefaultOptions(), nil)
	ctx := context.Background()

	res, err := svc.Search(ctx, " 1 ")
	require.NoError(t, err)
	assert.Equal(t, "Informationen über Konto 1", res.Message)
	require.NotNil(t, res.Range)
	assert.Equal(t, testhelpers.Day(t, "2024-03-04"), res.Range.Start)
	assert.Equal(t, testhelpers.Day(t, "2024-03-06"), res.Range.End)
	assert.Equal(t, []string{"Milch", "Nudeln", "Tomatensoße"}, res.Suspects)

	snapshot, err := sessions.Get(ctx, res.SessionID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snapshot.AccountID)
	assert.Equal(t, 10, snapshot.Meals.Len())
	assert.Equal(t, 3, snapshot.Symptoms.Len())

	res, err = svc.Search(ctx, "77")
	require.NoError(t, err)
	assert.Equal(t, service.AccountNotFound, res.Status)
	assert.Equal(t, "Konto 77 nicht gefunden", res.Message)
	assert.Empty(t, res.SessionID)

	_, err = svc.Search(ctx, "eins")
	assert.ErrorIs(t, err, service.ErrInvalidAccountInput)
	assert.True(t, service.IsClientError(err))
}

func TestSearchPropagatesStoreErrors(t *testing.T) {
	accounts := new(mocks.MockAccountService)
	accounts.On("Lookup", mock.Anything, int64(3)).Return(service.AccountReady, nil)
	accounts.On("FetchMeals", mock.Anything, int64(3)).Return(nil, errors.New("connection reset"))

	svc := service.NewDashboardService(accounts, service.NewMemorySessionStore(), pipeline.DefaultOptions(), nil)
	_, err := svc.Search(context.Background(), "3")
	assert.EqualError(t, err, "connection reset")
	assert.False(t, service.IsClientError(err))
	accounts.AssertExpectations(t)
}

func TestSearchRejectsMalformedRows(t *testing.T) {
	broken := pipeline.NewTable(pipeline.Column{Name: "account_id", Type: pipeline.TypeAny})
	broken.Append(int64(3))

	accounts := new(mocks.MockAccountService)
	accounts.On("Lookup", mock.Anything, int64(3)).Return(service.AccountReady, nil)
	accounts.On("FetchMeals", mock.Anything, int64(3)).Return(broken, nil)
	accounts.On("FetchSymptoms", mock.Anything, int64(3)).Return(broken, nil)

	svc := service.NewDashboardService(accounts, service.NewMemorySessionStore(), pipeline.DefaultOptions(), nil)
	_, err := svc.Search(context.Background(), "3")
	assert.ErrorIs(t, err, pipeline.ErrDataIntegrity)
}

func TestViewsRequireSession(t *testing.T) {
	svc, _ := newDashboard(t)
	_, err := svc.Statistics(context.Background(), "missing", service.ViewFilter{})
	assert.ErrorIs(t, err, service.ErrSessionNotFound)
}

func TestRange(t *testing.T) {
	svc, id := newDashboard(t)
	ctx := context.Background()

	v, err := svc.Range(ctx, id, service.ViewFilter{Timespan: pipeline.TimespanOneWeek})
	require.NoError(t, err)
	assert.Equal(t, testhelpers.Day(t, "2024-02-28"), v.Window.Start)
	assert.Equal(t, testhelpers.Day(t, "2024-03-06"), v.Window.End)
	assert.Equal(t, testhelpers.Day(t, "2024-03-04"), v.Data.Start)

	v, err = svc.Range(ctx, id, service.ViewFilter{Range: pipeline.DateRange{Start: testhelpers.Day(t, "2024-03-05")}})
	require.NoError(t, err)
	assert.Equal(t, pipeline.TimespanCustom, v.Timespan)
	assert.Equal(t, testhelpers.Day(t, "2024-03-05"), v.Window.Start)
	assert.Equal(t, testhelpers.Day(t, "2024-03-06"), v.Window.End)

	_, err = svc.Range(ctx, id, service.ViewFilter{Range: pipeline.DateRange{
		Start: testhelpers.Day(t, "2024-03-07"),
		End:   testhelpers.Day(t, "2024-03-01"),
	}})
	assert.ErrorIs(t, err, pipeline.ErrInvalidDateRange)
}

func TestStatistics(t *testing.T) {
	svc, id := newDashboard(t)
	ctx := context.Background()

	v, err := svc.Statistics(ctx, id, service.ViewFilter{Timespan: pipeline.TimespanAll})
	require.NoError(t, err)
	assert.Equal(t, pipeline.Statistics{
		UsageDays:          3,
		SymptomCount:       3,
		SymptomDays:        2,
		SymptomDaysPerc:    66.7,
		SymptomDaysPerWeek: 2.0,
		BreakfastRate:      100,
		LunchRate:          33.3,
		DinnerRate:         66.7,
	}, v.Statistics)
	assert.Len(t, v.Records, 8)

	day := testhelpers.Day(t, "2024-03-05")
	v, err = svc.Statistics(ctx, id, service.ViewFilter{Range: pipeline.DateRange{Start: day, End: day}})
	require.NoError(t, err)
	assert.Equal(t, 1, v.Statistics.UsageDays)
	assert.Zero(t, v.Statistics.SymptomDays)
}

func TestDiary(t *testing.T) {
	svc, id := newDashboard(t)

	v, err := svc.Diary(context.Background(), id, service.ViewFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Datum", "Zeit", "Lebensmittel", "Symptome", "Symptomstärke"}, v.Table.ColumnNames())
	require.NotEmpty(t, v.Records)
	assert.Equal(t, "04/03/2024", v.Records[0]["Datum"])
	assert.Equal(t, "Frühstück", v.Records[0]["Zeit"])

	require.Len(t, v.Timeline, 3)
	assert.True(t, v.Timeline[0].Symptom)
	assert.False(t, v.Timeline[1].Symptom)
	assert.Equal(t, "Suppe", v.Timeline[1].Dinner)
}

func TestTopFoods(t *testing.T) {
	svc, id := newDashboard(t)
	ctx := context.Background()

	v, err := svc.TopFoods(ctx, id, service.ViewFilter{})
	require.NoError(t, err)
	assert.Equal(t, "blues", v.Palette)
	require.GreaterOrEqual(t, len(v.Foods), 2)
	assert.Equal(t, pipeline.FoodCount{Name: "Brot", Count: 3}, v.Foods[0])
	assert.Equal(t, pipeline.FoodCount{Name: "Milch", Count: 2}, v.Foods[1])

	v, err = svc.TopFoods(ctx, id, service.ViewFilter{Selectors: pipeline.Selectors{Symptom: pipeline.SymptomFreeDays}})
	require.NoError(t, err)
	assert.Equal(t, "greens", v.Palette)
	assert.ElementsMatch(t, []pipeline.FoodCount{{Name: "Brot", Count: 1}, {Name: "Butter", Count: 1}, {Name: "Suppe", Count: 1}}, v.Foods)

	_, err = svc.TopFoods(ctx, id, service.ViewFilter{Selectors: pipeline.Selectors{Meal: "brunch"}})
	assert.ErrorIs(t, err, pipeline.ErrInvalidSelector)
}

func TestFoodsBeforeSymptoms(t *testing.T) {
	svc, id := newDashboard(t)
	ctx := context.Background()

	v, err := svc.FoodsBeforeSymptoms(ctx, id, service.ViewFilter{})
	require.NoError(t, err)
	assert.Equal(t, "reds", v.Palette)
	assert.ElementsMatch(t, []pipeline.FoodCount{{Name: "Brot", Count: 2}, {Name: "Milch", Count: 2}}, v.Foods)

	v, err = svc.FoodsBeforeSymptoms(ctx, id, service.ViewFilter{Selectors: pipeline.Selectors{MinGrade: 5}})
	require.NoError(t, err)
	assert.Empty(t, v.Foods)

	v, err = svc.FoodsBeforeSymptoms(ctx, id, service.ViewFilter{Selectors: pipeline.Selectors{Meal: pipeline.MealsLunch}})
	require.NoError(t, err)
	assert.Empty(t, v.Foods)

	_, err = svc.FoodsBeforeSymptoms(ctx, id, service.ViewFilter{Selectors: pipeline.Selectors{Meal: pipeline.MealsAll}})
	assert.ErrorIs(t, err, pipeline.ErrInvalidSelector)

	_, err = svc.FoodsBeforeSymptoms(ctx, id, service.ViewFilter{Selectors: pipeline.Selectors{MinGrade: 11}})
	assert.ErrorIs(t, err, pipeline.ErrInvalidSelector)
}

func TestTypicalMeals(t *testing.T) {
	svc, id := newDashboard(t)

	v, err := svc.TypicalMeals(context.Background(), id, service.ViewFilter{})
	require.NoError(t, err)
	assert.Equal(t, []pipeline.TypicalMeal{{Foods: []string{"Brot", "Milch"}, Count: 2}}, v.Meals)
	assert.Equal(t, 1, v.Rows)
	assert.Equal(t, 1, v.Columns)
	assert.Equal(t, "blues", v.Palette)
}

func TestCombinations(t *testing.T) {
	svc, id := newDashboard(t)
	ctx := context.Background()

	v, err := svc.Combinations(ctx, id, service.ViewFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, v.Size)
	require.NotEmpty(t, v.Combinations)
	assert.Equal(t, pipeline.Combination{Items: []string{"Brot", "Milch"}, Count: 2}, v.Combinations[0])
	assert.Equal(t, "Brot, Milch", v.Labels[0])
	assert.Zero(t, v.Skipped)

	v, err = svc.Combinations(ctx, id, service.ViewFilter{CombinationSize: 3})
	require.NoError(t, err)
	assert.Empty(t, v.Combinations)

	_, err = svc.Combinations(ctx, id, service.ViewFilter{CombinationSize: 6})
	assert.ErrorIs(t, err, pipeline.ErrInvalidSelector)
}

func TestSuspects(t *testing.T) {
	svc, id := newDashboard(t)

	v, err := svc.Suspects(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Milch", "Nudeln", "Tomatensoße"}, v.Foods)
	assert.Equal(t, []map[string]any{{"name": "Milch"}, {"name": "Nudeln"}, {"name": "Tomatensoße"}}, v.Records)
}
