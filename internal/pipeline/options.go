package pipeline

// Labels holds every piece of user-facing text the table builders emit.
type Labels struct {
	Slots map[MealSlot]string

	DiaryDate     string
	DiarySlot     string
	DiaryFoods    string
	DiarySymptoms string
	DiaryGrade    string

	StatsHeading string
	StatsValue   string
	Stats        StatisticsLabels
}

// StatisticsLabels are the row captions of the usage statistics table.
type StatisticsLabels struct {
	UsageDays          string
	SymptomCount       string
	SymptomDays        string
	SymptomDaysPerc    string
	SymptomDaysPerWeek string
	BreakfastRate      string
	LunchRate          string
	DinnerRate         string
}

// Options configures the table builders. The zero value is not useful;
// start from DefaultOptions.
type Options struct {
	Labels Labels

	TopFoods        int
	SuspectFoods    int
	TypicalMeals    int
	TopCombinations int
	// MaxCombinationSetSize bounds subset enumeration per meal set.
	MaxCombinationSetSize int
	GridColumns           int
}

// DefaultOptions returns the German labels and limits the dashboard ships with.
func DefaultOptions() Options {
	return Options{
		Labels: Labels{
			Slots: map[MealSlot]string{
				SlotGettingUp: "Nach dem Aufstehen",
				SlotBreakfast: "Frühstück",
				SlotLunch:     "Mittagessen",
				SlotDinner:    "Abendessen",
				SlotUnknown:   "Unbekannt",
			},
			DiaryDate:     "Datum",
			DiarySlot:     "Zeit",
			DiaryFoods:    "Lebensmittel",
			DiarySymptoms: "Symptome",
			DiaryGrade:    "Symptomstärke",
			StatsHeading:  "Überschrift",
			StatsValue:    "Werte",
			Stats: StatisticsLabels{
				UsageDays:          "Dokumentierte Tage",
				SymptomCount:       "Dokumentierte Symptome (Anzahl)",
				SymptomDays:        "Tage mit Symptomen (Anzahl)",
				SymptomDaysPerc:    "Tage mit Symptomen (Anteil)",
				SymptomDaysPerWeek: "Tage mit Symptomen pro Woche (⌀)",
				BreakfastRate:      "Häufigkeit Frühstück",
				LunchRate:          "Häufigkeit Mittagessen",
				DinnerRate:         "Häufigkeit Abendessen",
			},
		},
		TopFoods:              10,
		SuspectFoods:          5,
		TypicalMeals:          3,
		TopCombinations:       5,
		MaxCombinationSetSize: 12,
		GridColumns:           4,
	}
}

// SlotLabel returns the display name of a slot, or the raw slot value
// when no label is configured.
func (l Labels) SlotLabel(slot MealSlot) string {
	if label, ok := l.Slots[slot]; ok {
		return label
	}
	return string(slot)
}
