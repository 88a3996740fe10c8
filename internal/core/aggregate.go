package core

import (
	"sort"
	"time"
)

type (
	// Bucket is an aggregation result grouping records by a shared key
	// with a computed total and count. Keys are category names or period
	// starts ("2006-01" for months, "2006-01-02" for weeks).
	Bucket struct {
		Key   string
		Label string
		Total Money
		Count int
	}

	// Overview holds the headline totals shown on the dashboard.
	Overview struct {
		Total      Money
		ThisWeek   Money
		ThisMonth  Money
		ThisYear   Money
		Count      int
		WeekCount  int
		MonthCount int
		YearCount  int
	}
)

// Total sums the amounts of all records. An empty collection totals zero.
func Total(records []Record) Money {
	var sum Money
	for _, r := range records {
		sum = sum.Add(r.Amount)
	}
	return sum
}

// CategoryTotals groups records by exact category string and returns one
// bucket per category, sorted by total descending. Categories with equal
// totals keep their first-seen order.
func CategoryTotals(records []Record) []Bucket {
	index := make(map[string]int)
	buckets := make([]Bucket, 0)
	for _, r := range records {
		i, seen := index[r.Category]
		if !seen {
			i = len(buckets)
			index[r.Category] = i
			buckets = append(buckets, Bucket{Key: r.Category, Label: r.Category})
		}
		buckets[i].Total = buckets[i].Total.Add(r.Amount)
		buckets[i].Count++
	}
	sort.SliceStable(buckets, func(a, b int) bool {
		return buckets[a].Total.Cents > buckets[b].Total.Cents
	})
	return buckets
}

// MonthlyTotals groups records by calendar month and returns the full
// chronological sequence, oldest first. Truncating to the most recent N
// months is the caller's concern.
func MonthlyTotals(records []Record) []Bucket {
	return periodTotals(records, func(d Date) (string, string) {
		return d.Format("2006-01"), d.Format("Jan 2006")
	})
}

// WeeklyTotals groups records by the Monday-aligned start of their week,
// oldest first. The label renders the week's span.
func WeeklyTotals(records []Record) []Bucket {
	return periodTotals(records, func(d Date) (string, string) {
		start := WeekStart(d.Time)
		end := start.AddDate(0, 0, 6)
		return start.String(), start.Format("Jan 02") + " - " + end.Format("Jan 02, 2006")
	})
}

func periodTotals(records []Record, bucketOf func(Date) (key, label string)) []Bucket {
	byKey := make(map[string]*Bucket)
	for _, r := range records {
		key, label := bucketOf(r.Date)
		b, ok := byKey[key]
		if !ok {
			b = &Bucket{Key: key, Label: label}
			byKey[key] = b
		}
		b.Total = b.Total.Add(r.Amount)
		b.Count++
	}
	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	buckets := make([]Bucket, len(keys))
	for i, key := range keys {
		buckets[i] = *byKey[key]
	}
	return buckets
}

// Percent returns part's share of total as a percentage. A zero total
// yields 0 rather than NaN.
func Percent(part, total Money) float64 {
	if total.Cents == 0 {
		return 0
	}
	return float64(part.Cents) / float64(total.Cents) * 100
}

// Average returns the mean amount per record in the bucket, zero for an
// empty bucket.
func (b Bucket) Average() Money {
	if b.Count == 0 {
		return Money{}
	}
	return Money{Cents: b.Total.Cents / int64(b.Count)}
}

// OverviewStats computes the headline totals for all time and the current
// week, month and year windows relative to now.
func OverviewStats(records []Record, now time.Time) Overview {
	week := Filter(records, FilterSpec{Range: RangeWeek}, now)
	month := Filter(records, FilterSpec{Range: RangeMonth}, now)
	year := Filter(records, FilterSpec{Range: RangeYear}, now)
	return Overview{
		Total:      Total(records),
		ThisWeek:   Total(week),
		ThisMonth:  Total(month),
		ThisYear:   Total(year),
		Count:      len(records),
		WeekCount:  len(week),
		MonthCount: len(month),
		YearCount:  len(year),
	}
}
