package service

import (
	"context"
	"time"

	"github.com/pageza/symptom-diary/backend/internal/pipeline"
)

// IAccountService defines the interface for diary account access
type IAccountService interface {
	Lookup(ctx context.Context, accountID int64) (AccountStatus, error)
	FetchMeals(ctx context.Context, accountID int64) (*pipeline.Table, error)
	FetchSymptoms(ctx context.Context, accountID int64) (*pipeline.Table, error)
}

// ISessionStore defines the interface for dashboard session storage
type ISessionStore interface {
	Create(ctx context.Context, snapshot *Snapshot) (string, error)
	Get(ctx context.Context, id string) (*Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// IDashboardService defines the interface for the dashboard views
type IDashboardService interface {
	Search(ctx context.Context, rawAccountID string) (*SearchResult, error)
	Range(ctx context.Context, sessionID string, filter ViewFilter) (*RangeView, error)
	Statistics(ctx context.Context, sessionID string, filter ViewFilter) (*StatisticsView, error)
	Diary(ctx context.Context, sessionID string, filter ViewFilter) (*DiaryView, error)
	TopFoods(ctx context.Context, sessionID string, filter ViewFilter) (*FoodsView, error)
	FoodsBeforeSymptoms(ctx context.Context, sessionID string, filter ViewFilter) (*FoodsView, error)
	TypicalMeals(ctx context.Context, sessionID string, filter ViewFilter) (*TypicalMealsView, error)
	Combinations(ctx context.Context, sessionID string, filter ViewFilter) (*CombinationsView, error)
	Suspects(ctx context.Context, sessionID string) (*SuspectsView, error)
}

// IExportService defines the interface for dashboard exports
type IExportService interface {
	Export(ctx context.Context, sessionID string, filter ViewFilter) (*ExportResult, error)
}

// ObjectStore is where exports are written. config.S3Config satisfies it.
type ObjectStore interface {
	Upload(ctx context.Context, objectKey string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}
