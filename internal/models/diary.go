package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Account is a diary owner.
type Account struct {
	AccountID int64     `gorm:"primaryKey;autoIncrement:false" json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the Account model
func (Account) TableName() string { return "account" }

// Meal is one logged meal. Meal holds the slot (BREAKFAST, LUNCH, DINNER, ...).
type Meal struct {
	MealID    int64          `gorm:"primaryKey" json:"meal_id"`
	AccountID int64          `gorm:"not null;index" json:"account_id"`
	Date      datatypes.Date `gorm:"not null;index" json:"date"`
	Meal      string         `gorm:"size:32;not null" json:"meal"`
}

// TableName returns the table name for the Meal model
func (Meal) TableName() string { return "meal" }

// Foodstuff is a free-text food name as the user typed it.
type Foodstuff struct {
	FoodstuffID int64  `gorm:"primaryKey" json:"foodstuff_id"`
	Name        string `gorm:"not null" json:"name"`
}

// TableName returns the table name for the Foodstuff model
func (Foodstuff) TableName() string { return "foodstuff" }

// MealFoodstuff links meals to the foods eaten in them.
type MealFoodstuff struct {
	MealID      int64 `gorm:"primaryKey;autoIncrement:false" json:"meal_id"`
	FoodstuffID int64 `gorm:"primaryKey;autoIncrement:false" json:"foodstuff_id"`
}

// TableName returns the table name for the MealFoodstuff model
func (MealFoodstuff) TableName() string { return "meal_foodstuff" }

// Report is a symptom report.
type Report struct {
	ReportID  int64          `gorm:"primaryKey" json:"report_id"`
	AccountID int64          `gorm:"not null;index" json:"account_id"`
	Date      datatypes.Date `gorm:"not null;index" json:"date"`
	Timing    string         `gorm:"size:32;not null" json:"timing"`
	Symptom   string         `gorm:"not null" json:"symptom"`
	Grade     int            `gorm:"not null;default:0" json:"grade"`
}

// TableName returns the table name for the Report model
func (Report) TableName() string { return "report" }

// DashboardExport records a dashboard snapshot written to object storage.
type DashboardExport struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	AccountID int64          `gorm:"not null;index" json:"account_id"`
	ObjectKey string         `gorm:"not null" json:"object_key"`
	StartDate datatypes.Date `json:"start_date"`
	EndDate   datatypes.Date `json:"end_date"`
	CreatedAt time.Time      `json:"created_at"`
}

// TableName returns the table name for the DashboardExport model
func (DashboardExport) TableName() string { return "dashboard_export" }

// DiaryModels lists every model of the diary schema, in migration order.
func DiaryModels() []any {
	return []any{&Account{}, &Meal{}, &Foodstuff{}, &MealFoodstuff{}, &Report{}, &DashboardExport{}}
}
