package testhelpers

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/symptom-diary/backend/internal/database"
)

// Day parses a YYYY-MM-DD date or fails the test.
func Day(t testing.TB, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

// SampleDiary is a small diary: milk on two breakfasts, both followed by
// symptoms, and a symptom free day in between.
func SampleDiary(t testing.TB, accountID int64) database.SeedDiary {
	return database.SeedDiary{
		AccountID: accountID,
		Meals: []database.SeedMeal{
			{Date: Day(t, "2024-03-04"), Slot: "BREAKFAST", Foods: []string{"Brot", "Milch"}},
			{Date: Day(t, "2024-03-04"), Slot: "LUNCH", Foods: []string{"Nudeln", "Tomatensoße"}},
			{Date: Day(t, "2024-03-05"), Slot: "BREAKFAST", Foods: []string{"Brot", "Butter"}},
			{Date: Day(t, "2024-03-05"), Slot: "DINNER", Foods: []string{"Suppe"}},
			{Date: Day(t, "2024-03-06"), Slot: "BREAKFAST", Foods: []string{"Brot", "Milch"}},
			{Date: Day(t, "2024-03-06"), Slot: "DINNER"},
		},
		Reports: []database.SeedReport{
			{Date: Day(t, "2024-03-04"), Timing: "AFTER_BREAKFAST", Symptom: "Bauchschmerzen", Grade: 4},
			{Date: Day(t, "2024-03-06"), Timing: "AFTER_BREAKFAST", Symptom: "Bauchschmerzen", Grade: 6},
			{Date: Day(t, "2024-03-06"), Timing: "AFTER_BREAKFAST", Symptom: "Übelkeit", Grade: 3},
		},
	}
}

// SeedSample seeds SampleDiary for accountID.
func SeedSample(t testing.TB, db *gorm.DB, accountID int64) database.SeedDiary {
	t.Helper()
	d := SampleDiary(t, accountID)
	if err := database.Seed(context.Background(), db, d); err != nil {
		t.Fatalf("failed to seed diary: %v", err)
	}
	return d
}
