package pipeline

import "strconv"

// Statistics summarises how the diary was used over a window.
type Statistics struct {
	UsageDays          int     `json:"usage_days"`
	SymptomCount       int     `json:"symptom_count"`
	SymptomDays        int     `json:"symptom_days"`
	SymptomDaysPerc    float64 `json:"symptom_days_perc"`
	SymptomDaysPerWeek float64 `json:"symptom_days_per_week"`
	BreakfastRate      float64 `json:"breakfast_rate"`
	LunchRate          float64 `json:"lunch_rate"`
	DinnerRate         float64 `json:"dinner_rate"`
}

type isoWeek struct{ year, week int }

// UsageStatistics computes the usage figures. Percentages are relative to
// the usage days (days with any meal or symptom entry). The weekly average
// runs over the ISO weeks that contain a meal, counting weeks without
// symptoms as zero.
func UsageStatistics(meals []EnrichedMeal, symptoms []SymptomReport) Statistics {
	usage := make(map[string]struct{})
	symptomDays := make(map[string]struct{})
	symptomDaysByWeek := make(map[isoWeek]map[string]struct{})

	for _, s := range symptoms {
		key := dayKey(s.Date)
		usage[key] = struct{}{}
		symptomDays[key] = struct{}{}
		y, w := s.Date.ISOWeek()
		wk := isoWeek{y, w}
		if symptomDaysByWeek[wk] == nil {
			symptomDaysByWeek[wk] = make(map[string]struct{})
		}
		symptomDaysByWeek[wk][key] = struct{}{}
	}

	var weeks []isoWeek
	seenWeek := make(map[isoWeek]struct{})
	slotDays := map[MealSlot]map[string]struct{}{
		SlotBreakfast: {},
		SlotLunch:     {},
		SlotDinner:    {},
	}
	for _, m := range meals {
		key := dayKey(m.Date)
		usage[key] = struct{}{}
		if days, ok := slotDays[m.Slot]; ok {
			days[key] = struct{}{}
		}
		y, w := m.Date.ISOWeek()
		wk := isoWeek{y, w}
		if _, ok := seenWeek[wk]; !ok {
			seenWeek[wk] = struct{}{}
			weeks = append(weeks, wk)
		}
	}

	var weeklyTotal int64
	for _, wk := range weeks {
		weeklyTotal += int64(len(symptomDaysByWeek[wk]))
	}

	usageDays := int64(len(usage))
	return Statistics{
		UsageDays:          len(usage),
		SymptomCount:       len(symptoms),
		SymptomDays:        len(symptomDays),
		SymptomDaysPerc:    percent(int64(len(symptomDays)), usageDays),
		SymptomDaysPerWeek: round1(weeklyTotal, int64(len(weeks))),
		BreakfastRate:      percent(int64(len(slotDays[SlotBreakfast])), usageDays),
		LunchRate:          percent(int64(len(slotDays[SlotLunch])), usageDays),
		DinnerRate:         percent(int64(len(slotDays[SlotDinner])), usageDays),
	}
}

// Table renders the statistics as a two-column caption/value table.
func (s Statistics) Table(labels Labels) *Table {
	t := NewTable(
		Column{Name: labels.StatsHeading, Type: TypeString},
		Column{Name: labels.StatsValue, Type: TypeString},
	)
	l := labels.Stats
	t.Append(l.UsageDays, strconv.Itoa(s.UsageDays))
	t.Append(l.SymptomCount, strconv.Itoa(s.SymptomCount))
	t.Append(l.SymptomDays, strconv.Itoa(s.SymptomDays))
	t.Append(l.SymptomDaysPerc, formatOneDecimal(s.SymptomDaysPerc)+"%")
	t.Append(l.SymptomDaysPerWeek, formatOneDecimal(s.SymptomDaysPerWeek))
	t.Append(l.BreakfastRate, formatOneDecimal(s.BreakfastRate)+"%")
	t.Append(l.LunchRate, formatOneDecimal(s.LunchRate)+"%")
	t.Append(l.DinnerRate, formatOneDecimal(s.DinnerRate)+"%")
	return t
}
