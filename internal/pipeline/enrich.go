package pipeline

import (
	"strings"
	"time"
)

// Enrich derives weekday, normalized name, same-day/next-day symptom flags
// and the per-slot symptom aggregate for every meal row. The meal row count
// is preserved; symptoms are returned unchanged.
func Enrich(meals []MealEntry, symptoms []SymptomReport) ([]EnrichedMeal, []SymptomReport) {
	symptomDays := make(map[string]struct{}, len(symptoms))
	for _, s := range symptoms {
		symptomDays[dayKey(s.Date)] = struct{}{}
	}

	aggregates := aggregateSymptoms(symptoms, MapTimings(symptoms))

	enriched := make([]EnrichedMeal, len(meals))
	for i, m := range meals {
		e := EnrichedMeal{MealEntry: m, Weekday: weekday(m.Date)}
		if m.Name != nil {
			e.NameNormalized = strPtr(NormalizeFoodName(*m.Name))
		}
		_, e.SymptomSameDay = symptomDays[dayKey(m.Date)]
		_, e.SymptomNextDay = symptomDays[dayKey(m.Date.AddDate(0, 0, 1))]
		if agg, ok := aggregates[slotKey{dayKey(m.Date), m.Slot}]; ok {
			e.Symptoms = strPtr(strings.Join(agg.symptoms, ", "))
			e.AvgGrade = floatPtr(float64(agg.gradeSum) / float64(len(agg.symptoms)))
		}
		enriched[i] = e
	}
	return enriched, symptoms
}

// MapTimings maps symptom timings onto meal slots. Each main slot is matched
// against the distinct timing values (in order of first appearance) by
// case-insensitive substring. The match is only trusted when every slot
// finds its own timing; otherwise the fixed table is returned.
func MapTimings(symptoms []SymptomReport) map[Timing]MealSlot {
	var timings []Timing
	seen := make(map[Timing]struct{})
	for _, s := range symptoms {
		if _, ok := seen[s.Timing]; !ok {
			seen[s.Timing] = struct{}{}
			timings = append(timings, s.Timing)
		}
	}

	mapping := make(map[Timing]MealSlot, len(MainSlots))
	for _, slot := range MainSlots {
		needle := strings.ToLower(string(slot))
		matched := false
		for _, t := range timings {
			if strings.Contains(strings.ToLower(string(t)), needle) {
				if _, taken := mapping[t]; taken {
					return fallbackMapping()
				}
				mapping[t] = slot
				matched = true
				break
			}
		}
		if !matched {
			return fallbackMapping()
		}
	}
	return mapping
}

func fallbackMapping() map[Timing]MealSlot {
	m := make(map[Timing]MealSlot, len(fallbackTimingSlots))
	for k, v := range fallbackTimingSlots {
		m[k] = v
	}
	return m
}

type slotKey struct {
	day  string
	slot MealSlot
}

type symptomAggregate struct {
	symptoms []string
	gradeSum int
}

func aggregateSymptoms(symptoms []SymptomReport, mapping map[Timing]MealSlot) map[slotKey]*symptomAggregate {
	out := make(map[slotKey]*symptomAggregate)
	for _, s := range symptoms {
		slot, ok := mapping[s.Timing]
		if !ok {
			continue
		}
		key := slotKey{dayKey(s.Date), slot}
		agg, ok := out[key]
		if !ok {
			agg = &symptomAggregate{}
			out[key] = agg
		}
		agg.symptoms = append(agg.symptoms, s.Symptom)
		agg.gradeSum += s.Grade
	}
	return out
}

// weekday counts from Monday = 0.
func weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
