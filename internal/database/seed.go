package database

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pageza/symptom-diary/backend/internal/models"
)

// SeedMeal is one meal to insert.
type SeedMeal struct {
	Date  time.Time
	Slot  string
	Foods []string
}

// SeedReport is one symptom report to insert.
type SeedReport struct {
	Date    time.Time
	Timing  string
	Symptom string
	Grade   int
}

// SeedDiary is the complete diary of one account.
type SeedDiary struct {
	AccountID int64
	Meals     []SeedMeal
	Reports   []SeedReport
}

// Seed inserts diaries in a single transaction. Foodstuffs are shared by
// name across meals and accounts.
func Seed(ctx context.Context, db *gorm.DB, diaries ...SeedDiary) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foods := make(map[string]int64)

		foodID := func(name string) (int64, error) {
			if id, ok := foods[name]; ok {
				return id, nil
			}
			var f models.Foodstuff
			if err := tx.Where(models.Foodstuff{Name: name}).FirstOrCreate(&f).Error; err != nil {
				return 0, fmt.Errorf("failed to create foodstuff %q: %w", name, err)
			}
			foods[name] = f.FoodstuffID
			return f.FoodstuffID, nil
		}

		for _, d := range diaries {
			account := models.Account{AccountID: d.AccountID}
			if err := tx.FirstOrCreate(&account, models.Account{AccountID: d.AccountID}).Error; err != nil {
				return fmt.Errorf("failed to create account %d: %w", d.AccountID, err)
			}

			for _, m := range d.Meals {
				meal := models.Meal{AccountID: d.AccountID, Date: datatypes.Date(m.Date), Meal: m.Slot}
				if err := tx.Create(&meal).Error; err != nil {
					return fmt.Errorf("failed to create meal: %w", err)
				}
				for _, name := range m.Foods {
					id, err := foodID(name)
					if err != nil {
						return err
					}
					link := models.MealFoodstuff{MealID: meal.MealID, FoodstuffID: id}
					if err := tx.FirstOrCreate(&link, link).Error; err != nil {
						return fmt.Errorf("failed to link foodstuff: %w", err)
					}
				}
			}

			for _, r := range d.Reports {
				report := models.Report{
					AccountID: d.AccountID,
					Date:      datatypes.Date(r.Date),
					Timing:    r.Timing,
					Symptom:   r.Symptom,
					Grade:     r.Grade,
				}
				if err := tx.Create(&report).Error; err != nil {
					return fmt.Errorf("failed to create report: %w", err)
				}
			}
		}
		return nil
	})
}

var demoMenus = map[string][][]string{
	"BREAKFAST": {
		{"2 Scheiben Brot", "Butter", "Marmelade"},
		{"Haferflocken", "Milch", "Banane"},
		{"Müsli", "Joghurt"},
		{"1 Tasse Kaffee", "Croissant"},
	},
	"LUNCH": {
		{"Nudeln", "Tomatensoße"},
		{"Reis", "Hähnchen", "Brokkoli"},
		{"Salat", "halbe Gurke", "Feta"},
		{"Kartoffeln", "Quark"},
	},
	"DINNER": {
		{"Brot", "Käse"},
		{"Pizza"},
		{"Suppe", "Brot"},
		{"Rührei", "Speck", "Toast"},
	},
}

var demoTriggers = map[string]string{
	"Milch":   "Bauchschmerzen",
	"Käse":    "Blähungen",
	"Pizza":   "Übelkeit",
	"Joghurt": "Bauchschmerzen",
}

var slotTimings = map[string]string{
	"BREAKFAST": "AFTER_BREAKFAST",
	"LUNCH":     "AFTER_LUNCH",
	"DINNER":    "AFTER_DINNER",
}

// DemoDiary generates a reproducible diary over days starting at start.
// Some meals are skipped; eating a trigger food produces a report after
// that meal.
func DemoDiary(accountID int64, start time.Time, days int, seed int64) SeedDiary {
	rng := rand.New(rand.NewSource(seed))
	d := SeedDiary{AccountID: accountID}

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		for _, slot := range []string{"BREAKFAST", "LUNCH", "DINNER"} {
			if rng.Intn(10) == 0 {
				continue
			}
			menu := demoMenus[slot][rng.Intn(len(demoMenus[slot]))]
			d.Meals = append(d.Meals, SeedMeal{Date: date, Slot: slot, Foods: menu})

			for _, food := range menu {
				if symptom, ok := demoTriggers[food]; ok && rng.Intn(3) > 0 {
					d.Reports = append(d.Reports, SeedReport{
						Date:    date,
						Timing:  slotTimings[slot],
						Symptom: symptom,
						Grade:   1 + rng.Intn(10),
					})
				}
			}
		}
		if rng.Intn(14) == 0 {
			d.Reports = append(d.Reports, SeedReport{Date: date, Timing: "AFTER_GETTING_UP", Symptom: "Kopfschmerzen", Grade: 1 + rng.Intn(5)})
		}
	}
	return d
}
