package pipeline

import "sort"

// ProbablyBadFoods lists the foods most associated with symptoms: foods eaten
// on symptom days but never on symptom-free days (or every symptom-day food
// when no such food exists), ranked by how often they were followed by a
// symptom on the same or the next day. At most limit names are returned.
func ProbablyBadFoods(meals []EnrichedMeal, limit int) []string {
	type tally struct {
		name     string
		sameDay  int
		nextDay  int
		symptom  bool
		symptom0 bool
	}
	tallies := make(map[string]*tally)
	for _, m := range meals {
		name, ok := m.FoodName()
		if !ok {
			continue
		}
		t, ok := tallies[name]
		if !ok {
			t = &tally{name: name}
			tallies[name] = t
		}
		if m.SymptomSameDay {
			t.sameDay++
			t.symptom = true
		} else {
			t.symptom0 = true
		}
		if m.SymptomNextDay {
			t.nextDay++
		}
	}

	var candidates []*tally
	for _, t := range tallies {
		if t.symptom && !t.symptom0 {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		for _, t := range tallies {
			if t.symptom {
				candidates = append(candidates, t)
			}
		}
	}

	ranked := candidates[:0]
	for _, t := range candidates {
		if t.sameDay+t.nextDay > 0 {
			ranked = append(ranked, t)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if ta, tb := a.sameDay+a.nextDay, b.sameDay+b.nextDay; ta != tb {
			return ta > tb
		}
		if a.sameDay != b.sameDay {
			return a.sameDay > b.sameDay
		}
		if a.nextDay != b.nextDay {
			return a.nextDay > b.nextDay
		}
		return a.name < b.name
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	names := make([]string, len(ranked))
	for i, t := range ranked {
		names[i] = t.name
	}
	return names
}

// NamesTable wraps a list of names in a single-column table.
func NamesTable(column string, names []string) *Table {
	t := NewTable(Column{Name: column, Type: TypeString})
	for _, n := range names {
		t.Append(n)
	}
	return t
}
