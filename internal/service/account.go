package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/symptom-diary/backend/internal/logging"
	"github.com/pageza/symptom-diary/backend/internal/models"
	"github.com/pageza/symptom-diary/backend/internal/pipeline"
)

// ErrInvalidAccountInput is returned for account ids that are not positive integers.
var ErrInvalidAccountInput = errors.New("invalid account input")

// AccountStatus is the result of an account lookup.
type AccountStatus string

const (
	AccountReady    AccountStatus = "ready"
	AccountNotFound AccountStatus = "not_found"
	AccountNoData   AccountStatus = "no_data"
)

// User facing messages.
const (
	MessageInvalidInput = "Ungültige Eingabe"
	messageNotFound     = "Konto %d nicht gefunden"
	messageNoData       = "Keine Informationen für Konto %d vorhanden"
	messageHeading      = "Informationen über Konto %d"
)

// Message returns the text shown for a lookup outcome.
func (s AccountStatus) Message(accountID int64) string {
	switch s {
	case AccountNotFound:
		return fmt.Sprintf(messageNotFound, accountID)
	case AccountNoData:
		return fmt.Sprintf(messageNoData, accountID)
	default:
		return fmt.Sprintf(messageHeading, accountID)
	}
}

// ParseAccountID validates user input as an account id.
func ParseAccountID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAccountInput, raw)
	}
	return id, nil
}

const mealsQuery = `
SELECT l.account_id, l.date, l.meal_id, l.meal, rr.name, r.foodstuff_id
FROM meal l
	LEFT JOIN meal_foodstuff r ON l.meal_id = r.meal_id
	LEFT JOIN foodstuff rr ON r.foodstuff_id = rr.foodstuff_id
WHERE l.account_id = ?
ORDER BY l.date,
	CASE
		WHEN l.meal = 'BREAKFAST' THEN 1
		WHEN l.meal = 'LUNCH' THEN 2
		WHEN l.meal = 'DINNER' THEN 3
		ELSE 4
	END,
	l.meal_id`

const symptomsQuery = `
SELECT account_id, date, timing, symptom, grade
FROM report
WHERE account_id = ?
ORDER BY date,
	CASE
		WHEN timing = 'AFTER_GETTING_UP' THEN 1
		WHEN timing = 'AFTER_BREAKFAST' THEN 2
		WHEN timing = 'AFTER_LUNCH' THEN 3
		WHEN timing = 'AFTER_DINNER' THEN 4
		WHEN timing = 'UNKNOWN' THEN 5
		ELSE 6
	END,
	report_id`

// AccountService reads diary data for an account
type AccountService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Ensure AccountService implements IAccountService
var _ IAccountService = (*AccountService)(nil)

// NewAccountService creates a new AccountService instance
func NewAccountService(db *gorm.DB, logger *zap.Logger) *AccountService {
	return &AccountService{db: db, logger: logging.OrNop(logger)}
}

// Lookup reports whether the account exists and has any meal or symptom entry.
func (s *AccountService) Lookup(ctx context.Context, accountID int64) (AccountStatus, error) {
	db := s.db.WithContext(ctx)

	var accounts int64
	if err := db.Model(&models.Account{}).Where("account_id = ?", accountID).Count(&accounts).Error; err != nil {
		return "", fmt.Errorf("failed to look up account: %w", err)
	}
	if accounts == 0 {
		return AccountNotFound, nil
	}

	var meals, reports int64
	if err := db.Model(&models.Meal{}).Where("account_id = ?", accountID).Count(&meals).Error; err != nil {
		return "", fmt.Errorf("failed to count meals: %w", err)
	}
	if err := db.Model(&models.Report{}).Where("account_id = ?", accountID).Count(&reports).Error; err != nil {
		return "", fmt.Errorf("failed to count reports: %w", err)
	}
	if meals == 0 && reports == 0 {
		return AccountNoData, nil
	}
	return AccountReady, nil
}

// FetchMeals returns one row per (meal, foodstuff), ordered by date and slot.
func (s *AccountService) FetchMeals(ctx context.Context, accountID int64) (*pipeline.Table, error) {
	t, err := s.query(ctx, mealsQuery, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meals: %w", err)
	}
	s.logger.Debug("fetched meals", zap.Int64("account_id", accountID), zap.Int("rows", t.Len()))
	return t, nil
}

// FetchSymptoms returns the account's symptom reports, ordered by date,
// timing and entry order.
func (s *AccountService) FetchSymptoms(ctx context.Context, accountID int64) (*pipeline.Table, error) {
	t, err := s.query(ctx, symptomsQuery, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch symptoms: %w", err)
	}
	s.logger.Debug("fetched symptoms", zap.Int64("account_id", accountID), zap.Int("rows", t.Len()))
	return t, nil
}

// query runs a raw query and collects the result into an untyped table.
func (s *AccountService) query(ctx context.Context, query string, args ...any) (*pipeline.Table, error) {
	rows, err := s.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTable(rows)
}

func scanTable(rows *sql.Rows) (*pipeline.Table, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	columns := make([]pipeline.Column, len(names))
	for i, n := range names {
		columns[i] = pipeline.Column{Name: n, Type: pipeline.TypeAny}
	}
	t := pipeline.NewTable(columns...)

	for rows.Next() {
		cells := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		t.Append(cells...)
	}
	return t, rows.Err()
}
