package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/symptom-diary/backend/internal/pipeline"
	"github.com/pageza/symptom-diary/backend/internal/service"
)

// MockAccountService is a mock implementation of the IAccountService interface
type MockAccountService struct {
	mock.Mock
}

var _ service.IAccountService = (*MockAccountService)(nil)

func (m *MockAccountService) Lookup(ctx context.Context, accountID int64) (service.AccountStatus, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(service.AccountStatus), args.Error(1)
}

func (m *MockAccountService) FetchMeals(ctx context.Context, accountID int64) (*pipeline.Table, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Table), args.Error(1)
}

func (m *MockAccountService) FetchSymptoms(ctx context.Context, accountID int64) (*pipeline.Table, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Table), args.Error(1)
}
