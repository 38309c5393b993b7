package pipeline

import "time"

// MealSlot is the slot a meal was eaten in. The store knows BREAKFAST,
// LUNCH and DINNER; any other value is carried through untouched.
type MealSlot string

const (
	SlotGettingUp MealSlot = "GETTING_UP"
	SlotBreakfast MealSlot = "BREAKFAST"
	SlotLunch     MealSlot = "LUNCH"
	SlotDinner    MealSlot = "DINNER"
	SlotUnknown   MealSlot = "UNKNOWN"
)

// MainSlots are the three meal slots used for fuzzy timing matching,
// in alphabetical order.
var MainSlots = []MealSlot{SlotBreakfast, SlotDinner, SlotLunch}

// Timing says when a symptom was felt, relative to the day's meals.
type Timing string

const (
	TimingAfterGettingUp Timing = "AFTER_GETTING_UP"
	TimingAfterBreakfast Timing = "AFTER_BREAKFAST"
	TimingAfterLunch     Timing = "AFTER_LUNCH"
	TimingAfterDinner    Timing = "AFTER_DINNER"
	TimingUnknown        Timing = "UNKNOWN"
)

// fallbackTimingSlots is used by Enrich when the fuzzy timing match fails.
var fallbackTimingSlots = map[Timing]MealSlot{
	TimingAfterBreakfast: SlotBreakfast,
	TimingAfterLunch:     SlotLunch,
	TimingAfterDinner:    SlotDinner,
}

// diaryTimingSlots places every known timing into a diary row.
var diaryTimingSlots = map[Timing]MealSlot{
	TimingAfterGettingUp: SlotGettingUp,
	TimingAfterBreakfast: SlotBreakfast,
	TimingAfterLunch:     SlotLunch,
	TimingAfterDinner:    SlotDinner,
	TimingUnknown:        SlotUnknown,
}

// MealEntry is one (meal, foodstuff) row as fetched from the store.
type MealEntry struct {
	AccountID int64
	Date      time.Time
	MealID    int64
	Slot      MealSlot
	// Name is nil for a meal that has no foodstuff attached.
	Name *string
}

// Day returns the calendar date of the entry.
func (m MealEntry) Day() time.Time { return m.Date }

// SymptomReport is one symptom reported by an account on a day.
type SymptomReport struct {
	AccountID int64
	Date      time.Time
	Timing    Timing
	Symptom   string
	Grade     int
}

// Day returns the calendar date of the report.
func (s SymptomReport) Day() time.Time { return s.Date }

// EnrichedMeal is a meal entry with the derived columns added by Enrich.
type EnrichedMeal struct {
	MealEntry
	// Weekday counts from Monday = 0.
	Weekday        int
	NameNormalized *string
	SymptomSameDay bool
	SymptomNextDay bool
	// Symptoms and AvgGrade are set when symptoms were mapped onto this
	// meal's (date, slot).
	Symptoms *string
	AvgGrade *float64
}

// Dated is anything that lives on a calendar date.
type Dated interface {
	Day() time.Time
}

// FoodName returns the normalized name if present, otherwise the raw one.
func (m EnrichedMeal) FoodName() (string, bool) {
	if m.NameNormalized != nil {
		return *m.NameNormalized, true
	}
	if m.Name != nil {
		return *m.Name, true
	}
	return "", false
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
