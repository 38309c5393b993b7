package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateRange is an inclusive range of calendar days. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the day of t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	key := dayKey(t)
	if !r.Start.IsZero() && key < dayKey(r.Start) {
		return false
	}
	if !r.End.IsZero() && key > dayKey(r.End) {
		return false
	}
	return true
}

// IsZero reports whether both bounds are open.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// MarshalJSON renders the bounds as ISO days, open bounds as null.
func (r DateRange) MarshalJSON() ([]byte, error) {
	bound := func(t time.Time) *string {
		if t.IsZero() {
			return nil
		}
		s := dayKey(t)
		return &s
	}
	return json.Marshal(struct {
		Start *string `json:"start"`
		End   *string `json:"end"`
	}{bound(r.Start), bound(r.End)})
}

// Days returns every calendar day of a closed range, oldest first.
func (r DateRange) Days() []time.Time {
	if r.Start.IsZero() || r.End.IsZero() {
		return nil
	}
	var days []time.Time
	for d := toDay(r.Start); !d.After(toDay(r.End)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ParseDay parses an ISO date. Anything after the first ten characters
// (a time component) is ignored.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(isoDate) {
		s = s[:len(isoDate)]
	}
	d, err := time.Parse(isoDate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateRange, s)
	}
	return d, nil
}

// ParseDateRange parses optional start and end bounds.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	var err error
	if strings.TrimSpace(start) != "" {
		if r.Start, err = ParseDay(start); err != nil {
			return DateRange{}, err
		}
	}
	if strings.TrimSpace(end) != "" {
		if r.End, err = ParseDay(end); err != nil {
			return DateRange{}, err
		}
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.Start.After(r.End) {
		return DateRange{}, fmt.Errorf("%w: start %s after end %s", ErrInvalidDateRange, dayKey(r.Start), dayKey(r.End))
	}
	return r, nil
}

// DataRange returns the earliest and latest day found in either input.
// ok is false when both are empty.
func DataRange[M Dated, S Dated](meals []M, symptoms []S) (r DateRange, ok bool) {
	visit := func(t time.Time) {
		d := toDay(t)
		if !ok || d.Before(r.Start) {
			r.Start = d
		}
		if !ok || d.After(r.End) {
			r.End = d
		}
		ok = true
	}
	for _, m := range meals {
		visit(m.Day())
	}
	for _, s := range symptoms {
		visit(s.Day())
	}
	return r, ok
}

// LastDays returns the range ending at latest and starting the given
// number of days before it.
func LastDays(latest time.Time, days int) DateRange {
	end := toDay(latest)
	return DateRange{Start: end.AddDate(0, 0, -days), End: end}
}

// Timespan selects the window shown by the dashboard.
type Timespan string

const (
	TimespanCustom      Timespan = "custom"
	TimespanAll         Timespan = "all"
	TimespanThreeMonths Timespan = "three_months"
	TimespanFourWeeks   Timespan = "four_weeks"
	TimespanOneWeek     Timespan = "one_week"
)

// ParseTimespan validates a timespan value; empty means custom.
func ParseTimespan(s string) (Timespan, error) {
	switch ts := Timespan(strings.TrimSpace(s)); ts {
	case "":
		return TimespanCustom, nil
	case TimespanCustom, TimespanAll, TimespanThreeMonths, TimespanFourWeeks, TimespanOneWeek:
		return ts, nil
	default:
		return "", fmt.Errorf("%w: timespan %q", ErrInvalidSelector, s)
	}
}

// Days returns the length of a relative timespan, or 0.
func (ts Timespan) Days() int {
	switch ts {
	case TimespanThreeMonths:
		return 84
	case TimespanFourWeeks:
		return 28
	case TimespanOneWeek:
		return 7
	}
	return 0
}

// ResolveTimespan turns a timespan choice into a closed range. Relative
// spans end at the last day with data; a custom range falls back to the
// data bounds for any open side.
func ResolveTimespan(ts Timespan, picked, data DateRange) (DateRange, error) {
	switch ts {
	case TimespanAll:
		return data, nil
	case TimespanThreeMonths, TimespanFourWeeks, TimespanOneWeek:
		if data.End.IsZero() {
			return data, nil
		}
		return LastDays(data.End, ts.Days()), nil
	case TimespanCustom, "":
		r := picked
		if r.Start.IsZero() {
			r.Start = data.Start
		}
		if r.End.IsZero() {
			r.End = data.End
		}
		if !r.Start.IsZero() && !r.End.IsZero() && r.Start.After(r.End) {
			return DateRange{}, fmt.Errorf("%w: start %s after end %s", ErrInvalidDateRange, dayKey(r.Start), dayKey(r.End))
		}
		return r, nil
	default:
		return DateRange{}, fmt.Errorf("%w: timespan %q", ErrInvalidSelector, ts)
	}
}

func toDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.Format(isoDate)
}
