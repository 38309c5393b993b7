package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/symptom-diary/backend/internal/service"
)

// MockDashboardService is a mock implementation of the IDashboardService interface
type MockDashboardService struct {
	mock.Mock
}

var _ service.IDashboardService = (*MockDashboardService)(nil)

func (m *MockDashboardService) Search(ctx context.Context, rawAccountID string) (*service.SearchResult, error) {
	args := m.Called(ctx, rawAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SearchResult), args.Error(1)
}

func (m *MockDashboardService) Range(ctx context.Context, sessionID string, filter service.ViewFilter) (*service.RangeView, error) {
	args := m.Called(ctx, sessionID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RangeView), args.Error(1)
}

func (m *MockDashboardService) Statistics(ctx context.Context, sessionID string, filter service.ViewFilter) (*service.StatisticsView, error) {
	args := m.Called(ctx, sessionID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StatisticsView), args.Error(1)
}

func (m *MockDashboardService) Diary(ctx context.Context, sessionID string, filter service.ViewFilter) (*service.DiaryView, error) {
	args := m.Called(ctx, sessionID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DiaryView), args.Error(1)
}

func (m *MockDashboardService) TopFoods(ctx context.Context, sessionID string, filter service.ViewFilter) (*service.FoodsView, error) {
	args := m.Called(ctx, sessionID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FoodsView), args.Error(1)
}

func (m *MockDashboardService) FoodsBeforeSymptoms(ctx context.Context, sessionID string, filter service.ViewFilter) (*service.FoodsView, error) {
	args := m.Called(ctx, sessionID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FoodsView), args.Error(1)
}

func (m *MockDashboardService) TypicalMeals(ctx context.Context, sessionID string, filter service.ViewFilter) (*service.TypicalMealsView, error) {
	args := m.Called(ctx, sessionID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TypicalMealsView), args.Error(1)
}

func (m *MockDashboardService) Combinations(ctx context.Context, sessionID string, filter service.ViewFilter) (*service.CombinationsView, error) {
	args := m.Called(ctx, sessionID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CombinationsView), args.Error(1)
}

func (m *MockDashboardService) Suspects(ctx context.Context, sessionID string) (*service.SuspectsView, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SuspectsView), args.Error(1)
}

// MockExportService is a mock implementation of the IExportService interface
type MockExportService struct {
	mock.Mock
}

var _ service.IExportService = (*MockExportService)(nil)

func (m *MockExportService) Export(ctx context.Context, sessionID string, filter service.ViewFilter) (*service.ExportResult, error) {
	args := m.Called(ctx, sessionID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}
