package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pageza/symptom-diary/backend/internal/logging"
	"github.com/pageza/symptom-diary/backend/internal/models"
	"github.com/pageza/symptom-diary/backend/internal/pipeline"
)

// ErrExportDisabled is returned when no export bucket is configured.
var ErrExportDisabled = errors.New("dashboard export is disabled")

// ExportLinkTTL is how long an export download link stays valid.
const ExportLinkTTL = 15 * time.Minute

// ExportDocument is the JSON written for an export.
type ExportDocument struct {
	AccountID   int64               `json:"account_id"`
	Heading     string              `json:"heading"`
	Window      pipeline.DateRange  `json:"window"`
	Statistics  pipeline.Statistics `json:"statistics"`
	Diary       *pipeline.Table     `json:"diary"`
	Suspects    []string            `json:"suspects"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// ExportResult points at a written export.
type ExportResult struct {
	ID        uuid.UUID `json:"id"`
	ObjectKey string    `json:"object_key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExportService writes dashboard snapshots to object storage
type ExportService struct {
	dashboard *DashboardService
	store     ObjectStore
	db        *gorm.DB
	logger    *zap.Logger
	now       func() time.Time
}

// Ensure ExportService implements IExportService
var _ IExportService = (*ExportService)(nil)

// NewExportService creates a new ExportService instance. A nil store
// disables exports.
func NewExportService(dashboard *DashboardService, store ObjectStore, db *gorm.DB, logger *zap.Logger) *ExportService {
	return &ExportService{dashboard: dashboard, store: store, db: db, logger: logging.OrNop(logger), now: time.Now}
}

// Document renders the filtered view of a session: usage statistics and
// diary of the window, suspects over the whole history. GeneratedAt is
// left for the caller.
func (s *DashboardService) Document(ctx context.Context, sessionID string, filter ViewFilter) (*ExportDocument, error) {
	v, err := s.view(ctx, sessionID, filter)
	if err != nil {
		return nil, err
	}
	allMeals, err := pipeline.MealsFromTable(v.snapshot.Meals)
	if err != nil {
		return nil, err
	}
	return &ExportDocument{
		AccountID:  v.snapshot.AccountID,
		Heading:    v.snapshot.Heading,
		Window:     v.window,
		Statistics: pipeline.UsageStatistics(v.meals, v.symptoms),
		Diary:      pipeline.DiaryTable(pipeline.BuildDiary(v.meals, v.symptoms), s.opts.Labels),
		Suspects:   pipeline.ProbablyBadFoods(allMeals, s.opts.SuspectFoods),
	}, nil
}

// Export renders the filtered view of a session, uploads it and returns a
// presigned download link.
func (s *ExportService) Export(ctx context.Context, sessionID string, filter ViewFilter) (*ExportResult, error) {
	if s.store == nil {
		return nil, ErrExportDisabled
	}

	doc, err := s.dashboard.Document(ctx, sessionID, filter)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	doc.GeneratedAt = now

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}

	id := uuid.New()
	key := fmt.Sprintf("exports/%d/%s.json", doc.AccountID, id)
	if err := s.store.Upload(ctx, key, body, "application/json"); err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	record := models.DashboardExport{
		ID:        id,
		AccountID: doc.AccountID,
		ObjectKey: key,
		StartDate: datatypes.Date(doc.Window.Start),
		EndDate:   datatypes.Date(doc.Window.End),
		CreatedAt: now,
	}
	if s.db != nil {
		if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, fmt.Errorf("failed to record export: %w", err)
		}
	}

	url, err := s.store.GeneratePresignedURL(ctx, key, ExportLinkTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign export: %w", err)
	}

	s.logger.Info("dashboard exported", zap.Int64("account_id", doc.AccountID), zap.String("key", key))
	return &ExportResult{ID: id, ObjectKey: key, URL: url, ExpiresAt: now.Add(ExportLinkTTL)}, nil
}
