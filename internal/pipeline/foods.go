package pipeline

import (
	"math"
	"sort"
	"strings"
	"time"
)

// FoodCount is how often a food was eaten.
type FoodCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TopFoods counts meal rows per food name and returns the limit most
// frequent ones, ties in order of first appearance.
func TopFoods(meals []EnrichedMeal, limit int) []FoodCount {
	counts := make([]FoodCount, 0)
	index := make(map[string]int)
	for _, m := range meals {
		name, ok := m.FoodName()
		if !ok {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(counts)
			index[name] = i
			counts = append(counts, FoodCount{Name: name})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if limit >= 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// MealSets returns the distinct foods of every meal, one set per (day, slot)
// in order of first appearance. Meals without any named food are left out.
func MealSets(meals []EnrichedMeal) [][]string {
	var keys []slotKey
	sets := make(map[slotKey][]string)
	seen := make(map[slotKey]map[string]struct{})
	for _, m := range meals {
		name, ok := m.FoodName()
		if !ok {
			continue
		}
		key := slotKey{dayKey(m.Date), m.Slot}
		if _, ok := seen[key]; !ok {
			seen[key] = make(map[string]struct{})
			keys = append(keys, key)
		}
		if _, dup := seen[key][name]; dup {
			continue
		}
		seen[key][name] = struct{}{}
		sets[key] = append(sets[key], name)
	}
	out := make([][]string, len(keys))
	for i, k := range keys {
		out[i] = sets[k]
	}
	return out
}

// TypicalMeal is a food set that was eaten as a whole meal more than once.
type TypicalMeal struct {
	Foods []string `json:"foods"`
	Count int      `json:"count"`
}

// TypicalMeals finds the limit most frequent meal compositions, then orders
// them by count and, for equal counts, shorter sets first. Compositions seen
// only once are dropped. Foods within a meal are sorted alphabetically.
func TypicalMeals(meals []EnrichedMeal, limit int) []TypicalMeal {
	counted := make([]TypicalMeal, 0)
	index := make(map[string]int)
	for _, set := range MealSets(meals) {
		foods := append([]string(nil), set...)
		sort.Strings(foods)
		key := strings.Join(foods, keySep)
		i, ok := index[key]
		if !ok {
			i = len(counted)
			index[key] = i
			counted = append(counted, TypicalMeal{Foods: foods})
		}
		counted[i].Count++
	}

	sort.SliceStable(counted, func(i, j int) bool { return counted[i].Count > counted[j].Count })
	if limit >= 0 && len(counted) > limit {
		counted = counted[:limit]
	}
	sort.SliceStable(counted, func(i, j int) bool {
		if counted[i].Count != counted[j].Count {
			return counted[i].Count > counted[j].Count
		}
		return len(counted[i].Foods) < len(counted[j].Foods)
	})

	out := counted[:0]
	for _, tm := range counted {
		if tm.Count > 1 {
			out = append(out, tm)
		}
	}
	return out
}

// GridShape arranges n charts in a grid of at most maxCols columns, growing
// to a square grid once n exceeds maxCols².
func GridShape(n, maxCols int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	cols = maxCols
	if n > maxCols*maxCols {
		cols = int(math.Ceil(math.Sqrt(float64(n))))
	}
	if cols > n {
		cols = n
	}
	rows = (n + cols - 1) / cols
	return rows, cols
}

// TimelineDay is one calendar day of the diary timeline chart.
type TimelineDay struct {
	Date      time.Time `json:"date"`
	Symptom   bool      `json:"symptom"`
	Breakfast string    `json:"breakfast,omitempty"`
	Lunch     string    `json:"lunch,omitempty"`
	Dinner    string    `json:"dinner,omitempty"`
}

// DiaryTimeline lays the diary out day by day over the whole span of the
// data, including days without entries.
func DiaryTimeline(meals []EnrichedMeal, symptoms []SymptomReport) []TimelineDay {
	span, ok := DataRange(meals, symptoms)
	if !ok {
		return []TimelineDay{}
	}

	foods := make(map[slotKey][]string)
	for _, m := range meals {
		name, ok := m.FoodName()
		if !ok {
			continue
		}
		key := slotKey{dayKey(m.Date), m.Slot}
		foods[key] = append(foods[key], name)
	}
	symptomDays := SymptomDates(symptoms)

	days := span.Days()
	out := make([]TimelineDay, len(days))
	for i, d := range days {
		key := dayKey(d)
		_, sick := symptomDays[d]
		out[i] = TimelineDay{
			Date:      d,
			Symptom:   sick,
			Breakfast: strings.Join(foods[slotKey{key, SlotBreakfast}], ", "),
			Lunch:     strings.Join(foods[slotKey{key, SlotLunch}], ", "),
			Dinner:    strings.Join(foods[slotKey{key, SlotDinner}], ", "),
		}
	}
	return out
}
