package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/symptom-diary/backend/internal/logging"
	"github.com/pageza/symptom-diary/backend/internal/pipeline"
)

// Combination sizes offered by the combinations view.
const (
	MinCombinationSize = 2
	MaxCombinationSize = 5
)

// ViewFilter carries every filter a dashboard view can be asked for.
// Zero values are inactive; each view fills in its own defaults.
type ViewFilter struct {
	Range           pipeline.DateRange
	Timespan        pipeline.Timespan
	Selectors       pipeline.Selectors
	CombinationSize int
}

// SearchResult is the answer to an account search.
type SearchResult struct {
	Status    AccountStatus       `json:"status"`
	AccountID int64               `json:"account_id"`
	Message   string              `json:"message"`
	SessionID string              `json:"session_id,omitempty"`
	Range     *pipeline.DateRange `json:"range,omitempty"`
	Suspects  []string            `json:"suspects,omitempty"`
}

// RangeView is the data window and the window selected by the filter.
type RangeView struct {
	Data     pipeline.DateRange `json:"data"`
	Window   pipeline.DateRange `json:"window"`
	Timespan pipeline.Timespan  `json:"timespan"`
}

// StatisticsView holds the usage statistics of the selected window.
type StatisticsView struct {
	Window     pipeline.DateRange  `json:"window"`
	Statistics pipeline.Statistics `json:"statistics"`
	Table      *pipeline.Table     `json:"table"`
	Records    []map[string]any    `json:"records"`
}

// DiaryView holds the diary table and the timeline chart data.
type DiaryView struct {
	Window   pipeline.DateRange     `json:"window"`
	Table    *pipeline.Table        `json:"table"`
	Records  []map[string]any       `json:"records"`
	Timeline []pipeline.TimelineDay `json:"timeline"`
}

// FoodsView is a food frequency chart.
type FoodsView struct {
	Window  pipeline.DateRange   `json:"window"`
	Foods   []pipeline.FoodCount `json:"foods"`
	Palette string               `json:"palette"`
}

// TypicalMealsView lists the usual meal compositions and how to lay them out.
type TypicalMealsView struct {
	Window  pipeline.DateRange     `json:"window"`
	Meals   []pipeline.TypicalMeal `json:"meals"`
	Rows    int                    `json:"rows"`
	Columns int                    `json:"columns"`
	Palette string                 `json:"palette"`
}

// CombinationsView lists the most common food combinations.
type CombinationsView struct {
	Window       pipeline.DateRange     `json:"window"`
	Size         int                    `json:"size"`
	Combinations []pipeline.Combination `json:"combinations"`
	Labels       []string               `json:"labels"`
	Skipped      int                    `json:"skipped"`
	Palette      string                 `json:"palette"`
}

// SuspectsView lists the foods most likely linked to symptoms.
type SuspectsView struct {
	Foods   []string         `json:"foods"`
	Records []map[string]any `json:"records"`
}

// DashboardService derives every dashboard view from a session snapshot
type DashboardService struct {
	accounts IAccountService
	sessions ISessionStore
	opts     pipeline.Options
	logger   *zap.Logger
}

// Ensure DashboardService implements IDashboardService
var _ IDashboardService = (*DashboardService)(nil)

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(accounts IAccountService, sessions ISessionStore, opts pipeline.Options, logger *zap.Logger) *DashboardService {
	return &DashboardService{accounts: accounts, sessions: sessions, opts: opts, logger: logging.OrNop(logger)}
}

// Options returns the labels and limits the service was built with.
func (s *DashboardService) Options() pipeline.Options {
	return s.opts
}

// Search validates the account id, loads and enriches the account's diary
// and opens a session on it. Accounts that are missing or empty yield a
// result without a session.
func (s *DashboardService) Search(ctx context.Context, rawAccountID string) (*SearchResult, error) {
	accountID, err := ParseAccountID(rawAccountID)
	if err != nil {
		return nil, err
	}

	status, err := s.accounts.Lookup(ctx, accountID)
	if err != nil {
		return nil, err
	}
	result := &SearchResult{Status: status, AccountID: accountID, Message: status.Message(accountID)}
	if status != AccountReady {
		return result, nil
	}

	meals, symptoms, err := s.load(ctx, accountID)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		AccountID: accountID,
		Heading:   result.Message,
		Meals:     pipeline.MealsTable(meals),
		Symptoms:  pipeline.SymptomsTable(symptoms),
	}
	id, err := s.sessions.Create(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	result.SessionID = id
	if r, ok := pipeline.DataRange(meals, symptoms); ok {
		result.Range = &r
	}
	result.Suspects = pipeline.ProbablyBadFoods(meals, s.opts.SuspectFoods)

	s.logger.Info("dashboard session created",
		zap.Int64("account_id", accountID),
		zap.Int("meals", len(meals)),
		zap.Int("symptoms", len(symptoms)))
	return result, nil
}

// load fetches, cleans and enriches the diary of an account.
func (s *DashboardService) load(ctx context.Context, accountID int64) ([]pipeline.EnrichedMeal, []pipeline.SymptomReport, error) {
	rawMeals, err := s.accounts.FetchMeals(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	rawSymptoms, err := s.accounts.FetchSymptoms(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}

	meals, err := pipeline.CleanMeals(rawMeals)
	if err != nil {
		return nil, nil, fmt.Errorf("account %d: %w", accountID, err)
	}
	symptoms, err := pipeline.CleanSymptoms(rawSymptoms)
	if err != nil {
		return nil, nil, fmt.Errorf("account %d: %w", accountID, err)
	}

	enriched, symptoms := pipeline.Enrich(meals, symptoms)
	return enriched, symptoms, nil
}

// view is a snapshot cut down to the filter's date window.
type view struct {
	snapshot *Snapshot
	data     pipeline.DateRange
	window   pipeline.DateRange
	meals    []pipeline.EnrichedMeal
	symptoms []pipeline.SymptomReport
}

func (s *DashboardService) view(ctx context.Context, sessionID string, filter ViewFilter) (*view, error) {
	snapshot, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if snapshot.Meals == nil || snapshot.Symptoms == nil {
		return nil, fmt.Errorf("%w: session %s holds no tables", pipeline.ErrDataIntegrity, sessionID)
	}

	allMeals, err := pipeline.MealsFromTable(snapshot.Meals)
	if err != nil {
		return nil, err
	}
	allSymptoms, err := pipeline.SymptomsFromTable(snapshot.Symptoms)
	if err != nil {
		return nil, err
	}
	data, _ := pipeline.DataRange(allMeals, allSymptoms)

	window, err := pipeline.ResolveTimespan(filter.Timespan, filter.Range, data)
	if err != nil {
		return nil, err
	}

	mealRows, err := pipeline.ByDates(snapshot.Meals, window)
	if err != nil {
		return nil, err
	}
	symptomRows, err := pipeline.ByDates(snapshot.Symptoms, window)
	if err != nil {
		return nil, err
	}
	meals, err := pipeline.MealsFromTable(mealRows)
	if err != nil {
		return nil, err
	}
	symptoms, err := pipeline.SymptomsFromTable(symptomRows)
	if err != nil {
		return nil, err
	}

	return &view{snapshot: snapshot, data: data, window: window, meals: meals, symptoms: symptoms}, nil
}

// Range resolves the filter's timespan against the session's data.
func (s *DashboardService) Range(ctx context.Context, sessionID string, filter ViewFilter) (*RangeView, error) {
	v, err := s.view(ctx, sessionID, filter)
	if err != nil {
		return nil, err
	}
	ts := filter.Timespan
	if ts == "" {
		ts = pipeline.TimespanCustom
	}
	return &RangeView{Data: v.data, Window: v.window, Timespan: ts}, nil
}

// Statistics computes the usage statistics of the window.
func (s *DashboardService) Statistics(ctx context.Context, sessionID string, filter ViewFilter) (*StatisticsView, error) {
	v, err := s.view(ctx, sessionID, filter)
	if err != nil {
		return nil, err
	}
	stats := pipeline.UsageStatistics(v.meals, v.symptoms)
	table := stats.Table(s.opts.Labels)
	return &StatisticsView{Window: v.window, Statistics: stats, Table: table, Records: table.Records()}, nil
}

// Diary builds the diary table and timeline of the window.
func (s *DashboardService) Diary(ctx context.Context, sessionID string, filter ViewFilter) (*DiaryView, error) {
	v, err := s.view(ctx, sessionID, filter)
	if err != nil {
		return nil, err
	}
	rows := pipeline.BuildDiary(v.meals, v.symptoms)
	table := pipeline.PrettifyDiary(rows, s.opts.Labels)
	return &DiaryView{
		Window:   v.window,
		Table:    table,
		Records:  table.Records(),
		Timeline: pipeline.DiaryTimeline(v.meals, v.symptoms),
	}, nil
}

// TopFoods counts the most eaten foods. Meal and symptom selectors default
// to all.
func (s *DashboardService) TopFoods(ctx context.Context, sessionID string, filter ViewFilter) (*FoodsView, error) {
	sel := pipeline.Selectors{
		Meal:    withDefault(filter.Selectors.Meal, pipeline.MealsAll),
		Symptom: withDefault(filter.Selectors.Symptom, pipeline.SymptomAllDays),
	}
	v, meals, err := s.selected(ctx, sessionID, filter, sel)
	if err != nil {
		return nil, err
	}
	return &FoodsView{
		Window:  v.window,
		Foods:   pipeline.TopFoods(meals, s.opts.TopFoods),
		Palette: sel.Symptom.Palette(),
	}, nil
}

// FoodsBeforeSymptoms counts the foods of single meals followed by
// symptoms of at least the given grade. It defaults to breakfast and
// grade 1.
func (s *DashboardService) FoodsBeforeSymptoms(ctx context.Context, sessionID string, filter ViewFilter) (*FoodsView, error) {
	sel := pipeline.Selectors{
		Meal:     withDefault(filter.Selectors.Meal, pipeline.MealsBreakfast),
		MinGrade: filter.Selectors.MinGrade,
	}
	if sel.Meal == pipeline.MealsAll {
		return nil, fmt.Errorf("%w: a single meal is required", pipeline.ErrInvalidSelector)
	}
	if sel.MinGrade == 0 {
		sel.MinGrade = 1
	}
	v, meals, err := s.selected(ctx, sessionID, filter, sel)
	if err != nil {
		return nil, err
	}
	return &FoodsView{
		Window:  v.window,
		Foods:   pipeline.TopFoods(meals, s.opts.TopFoods),
		Palette: pipeline.SymptomDays.Palette(),
	}, nil
}

// TypicalMeals finds the usual compositions of one meal. It defaults to
// breakfast on all days.
func (s *DashboardService) TypicalMeals(ctx context.Context, sessionID string, filter ViewFilter) (*TypicalMealsView, error) {
	sel := pipeline.Selectors{
		Meal:    withDefault(filter.Selectors.Meal, pipeline.MealsBreakfast),
		Symptom: withDefault(filter.Selectors.Symptom, pipeline.SymptomAllDays),
	}
	if sel.Meal == pipeline.MealsAll {
		return nil, fmt.Errorf("%w: a single meal is required", pipeline.ErrInvalidSelector)
	}
	v, meals, err := s.selected(ctx, sessionID, filter, sel)
	if err != nil {
		return nil, err
	}
	typical := pipeline.TypicalMeals(meals, s.opts.TypicalMeals)
	rows, cols := pipeline.GridShape(len(typical), s.opts.GridColumns)
	return &TypicalMealsView{
		Window:  v.window,
		Meals:   typical,
		Rows:    rows,
		Columns: cols,
		Palette: sel.Symptom.Palette(),
	}, nil
}

// Combinations counts which foods are eaten together, size defaulting to 2.
func (s *DashboardService) Combinations(ctx context.Context, sessionID string, filter ViewFilter) (*CombinationsView, error) {
	size := filter.CombinationSize
	if size == 0 {
		size = MinCombinationSize
	}
	if size < MinCombinationSize || size > MaxCombinationSize {
		return nil, fmt.Errorf("%w: combination size %d outside %d..%d",
			pipeline.ErrInvalidSelector, size, MinCombinationSize, MaxCombinationSize)
	}
	sel := pipeline.Selectors{
		Meal:    withDefault(filter.Selectors.Meal, pipeline.MealsAll),
		Symptom: withDefault(filter.Selectors.Symptom, pipeline.SymptomAllDays),
	}
	v, meals, err := s.selected(ctx, sessionID, filter, sel)
	if err != nil {
		return nil, err
	}

	counter := pipeline.CountCombinations(pipeline.MealSets(meals), size, s.opts.MaxCombinationSetSize)
	if counter.Skipped > 0 {
		s.logger.Warn("meal sets too large to enumerate",
			zap.Int("skipped", counter.Skipped), zap.Int("max_set_size", s.opts.MaxCombinationSetSize))
	}
	top := counter.MostCommon(s.opts.TopCombinations)
	labels := make([]string, len(top))
	for i, c := range top {
		labels[i] = c.Label()
	}
	return &CombinationsView{
		Window:       v.window,
		Size:         size,
		Combinations: top,
		Labels:       labels,
		Skipped:      counter.Skipped,
		Palette:      sel.Symptom.Palette(),
	}, nil
}

// Suspects ranks the probably bad foods over the whole history.
func (s *DashboardService) Suspects(ctx context.Context, sessionID string) (*SuspectsView, error) {
	v, err := s.view(ctx, sessionID, ViewFilter{Timespan: pipeline.TimespanAll})
	if err != nil {
		return nil, err
	}
	foods := pipeline.ProbablyBadFoods(v.meals, s.opts.SuspectFoods)
	return &SuspectsView{
		Foods:   foods,
		Records: pipeline.NamesTable("name", foods).Records(),
	}, nil
}

func (s *DashboardService) selected(ctx context.Context, sessionID string, filter ViewFilter, sel pipeline.Selectors) (*view, []pipeline.EnrichedMeal, error) {
	if err := sel.Validate(); err != nil {
		return nil, nil, err
	}
	v, err := s.view(ctx, sessionID, filter)
	if err != nil {
		return nil, nil, err
	}
	meals, err := pipeline.BySelectors(v.meals, sel)
	if err != nil {
		return nil, nil, err
	}
	return v, meals, nil
}

func withDefault[T ~string](v, def T) T {
	if v == "" {
		return def
	}
	return v
}

// IsClientError reports whether err stems from bad request input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidAccountInput) ||
		errors.Is(err, pipeline.ErrInvalidSelector) ||
		errors.Is(err, pipeline.ErrInvalidDateRange)
}
