package core

import "time"

const (
	RangeAll    DateRange = "all"
	RangeWeek   DateRange = "week"
	RangeMonth  DateRange = "month"
	RangeYear   DateRange = "year"
	RangeCustom DateRange = "custom"
)

type (
	// DateRange selects the time window a filter applies.
	DateRange string

	// FilterSpec is the user's currently selected filter criteria.
	// An empty Category means no category filter. Start and End only
	// take effect for RangeCustom, and only when both are set.
	FilterSpec struct {
		Category string    `json:"category"`
		Range    DateRange `json:"date_range"`
		Start    Date      `json:"start_date"`
		End      Date      `json:"end_date"`
	}

	// FilterPatch carries a partial FilterSpec update. Nil fields are
	// left untouched by Apply.
	FilterPatch struct {
		Category *string
		Range    *DateRange
		Start    *Date
		End      *Date
	}
)

// DefaultFilters returns the all-time, all-categories spec.
func DefaultFilters() FilterSpec {
	return FilterSpec{Range: RangeAll}
}

func (r DateRange) IsValid() bool {
	switch r {
	case RangeAll, RangeWeek, RangeMonth, RangeYear, RangeCustom:
		return true
	}
	return false
}

// Apply shallow-merges the patch into the spec and returns the result.
func (s FilterSpec) Apply(p FilterPatch) FilterSpec {
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Range != nil {
		s.Range = *p.Range
	}
	if p.Start != nil {
		s.Start = *p.Start
	}
	if p.End != nil {
		s.End = *p.End
	}
	return s
}

// WeekStart returns the Monday of the ISO week containing t, at UTC midnight.
func WeekStart(t time.Time) Date {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	day := NewDate(t.Year(), int(t.Month()), t.Day())
	return Date{Time: day.AddDate(0, 0, -offset)}
}

// Window resolves the inclusive [start, end] day interval for the spec
// relative to now. ok is false when no date filtering applies (RangeAll,
// an unknown range, or a custom range missing either endpoint).
func (s FilterSpec) Window(now time.Time) (start, end Date, ok bool) {
	now = now.UTC()
	switch s.Range {
	case RangeWeek:
		start = WeekStart(now)
		end = Date{Time: start.AddDate(0, 0, 6)}
	case RangeMonth:
		start = NewDate(now.Year(), int(now.Month()), 1)
		end = Date{Time: start.AddDate(0, 1, -1)}
	case RangeYear:
		start = NewDate(now.Year(), 1, 1)
		end = NewDate(now.Year(), 12, 31)
	case RangeCustom:
		if s.Start.IsZero() || s.End.IsZero() {
			return Date{}, Date{}, false
		}
		start, end = s.Start, s.End
	default:
		return Date{}, Date{}, false
	}
	return start, end, true
}

// Filter returns the records matching the spec, preserving input order.
// The date and category criteria are independent AND conditions, so the
// result does not depend on any application order. The input is never
// mutated; now supplies the reference moment for relative ranges.
func Filter(records []Record, spec FilterSpec, now time.Time) []Record {
	start, end, dateFiltered := spec.Window(now)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if dateFiltered && (r.Date.Before(start.Time) || r.Date.After(end.Time)) {
			continue
		}
		if spec.Category != "" && r.Category != spec.Category {
			continue
		}
		out = append(out, r)
	}
	return out
}

// RangeLabel renders a human label for the spec's window, e.g.
// "Mar 04 - Mar 10, 2024" for the current week or "All Time" when no
// date filter applies.
func (s FilterSpec) RangeLabel(now time.Time) string {
	switch s.Range {
	case RangeWeek:
		start, end, _ := s.Window(now)
		return start.Format("Jan 02") + " - " + end.Format("Jan 02, 2006")
	case RangeMonth:
		return now.UTC().Format("January 2006")
	case RangeYear:
		return now.UTC().Format("2006")
	case RangeCustom:
		if start, end, ok := s.Window(now); ok {
			return start.Format("Jan 02, 2006") + " - " + end.Format("Jan 02, 2006")
		}
	}
	return "All Time"
}
