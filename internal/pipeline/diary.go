package pipeline

import (
	"sort"
	"strings"
	"time"
)

// DiaryRow is one (day, slot) line of the food and symptom diary.
type DiaryRow struct {
	Date     time.Time
	Slot     MealSlot
	Foods    string
	Symptoms string
	// Grade is the rounded mean symptom grade, blank without symptoms.
	Grade string
}

var diarySlotRank = map[MealSlot]int{
	SlotGettingUp: 0,
	SlotBreakfast: 1,
	SlotLunch:     2,
	SlotDinner:    3,
	SlotUnknown:   4,
}

func slotRank(slot MealSlot) int {
	if r, ok := diarySlotRank[slot]; ok {
		return r
	}
	return len(diarySlotRank)
}

// BuildDiary merges the foods eaten and the symptoms reported per day and
// slot. Rows are ordered by day, then slot rank.
func BuildDiary(meals []EnrichedMeal, symptoms []SymptomReport) []DiaryRow {
	type diaryGroup struct {
		date     time.Time
		slot     MealSlot
		foods    []string
		symptoms []string
		gradeSum int64
		hasMeal  bool
	}
	groups := make(map[slotKey]*diaryGroup)
	group := func(date time.Time, slot MealSlot) *diaryGroup {
		key := slotKey{dayKey(date), slot}
		g, ok := groups[key]
		if !ok {
			g = &diaryGroup{date: toDay(date), slot: slot}
			groups[key] = g
		}
		return g
	}

	for _, m := range meals {
		g := group(m.Date, m.Slot)
		g.hasMeal = true
		if m.Name != nil {
			g.foods = append(g.foods, *m.Name)
		}
	}
	for _, s := range symptoms {
		slot, ok := diaryTimingSlots[s.Timing]
		if !ok {
			slot = MealSlot(s.Timing)
		}
		g := group(s.Date, slot)
		g.symptoms = append(g.symptoms, s.Symptom)
		g.gradeSum += int64(s.Grade)
	}

	rows := make([]DiaryRow, 0, len(groups))
	for _, g := range groups {
		row := DiaryRow{
			Date:     g.date,
			Slot:     g.slot,
			Foods:    strings.Join(g.foods, ", "),
			Symptoms: strings.Join(g.symptoms, ", "),
		}
		if n := int64(len(g.symptoms)); n > 0 {
			row.Grade = ratio(g.gradeSum, n).Round(0).String()
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if ra, rb := slotRank(a.Slot), slotRank(b.Slot); ra != rb {
			return ra < rb
		}
		return a.Slot < b.Slot
	})
	return rows
}

// DiaryTable renders diary rows with typed dates and slot labels.
func DiaryTable(rows []DiaryRow, labels Labels) *Table {
	t := NewTable(
		Column{Name: "date", Type: TypeDate},
		Column{Name: "meal", Type: TypeString},
		Column{Name: "name", Type: TypeString},
		Column{Name: "symptom", Type: TypeString},
		Column{Name: "grade", Type: TypeString},
	)
	for _, r := range rows {
		t.Append(r.Date, labels.SlotLabel(r.Slot), r.Foods, r.Symptoms, r.Grade)
	}
	return t
}

// PrettifyDiary renders the diary for display: dates as DD/MM/YYYY, shown
// only on the first row of each day, under localized headers.
func PrettifyDiary(rows []DiaryRow, labels Labels) *Table {
	t := NewTable(
		Column{Name: labels.DiaryDate, Type: TypeString},
		Column{Name: labels.DiarySlot, Type: TypeString},
		Column{Name: labels.DiaryFoods, Type: TypeString},
		Column{Name: labels.DiarySymptoms, Type: TypeString},
		Column{Name: labels.DiaryGrade, Type: TypeString},
	)
	shown := make(map[string]struct{})
	for _, r := range rows {
		date := r.Date.Format("02/01/2006")
		if _, ok := shown[date]; ok {
			date = ""
		} else {
			shown[date] = struct{}{}
		}
		t.Append(date, labels.SlotLabel(r.Slot), r.Foods, r.Symptoms, r.Grade)
	}
	return t
}
