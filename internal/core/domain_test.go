package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"2024-03-05", NewDate(2024, 3, 5), true},
		{" 2024-03-05 ", NewDate(2024, 3, 5), true},
		{"2024-03-05T14:30:00Z", NewDate(2024, 3, 5), true},
		{"2024-03-05T23:30:00-02:00", NewDate(2024, 3, 6), true}, // normalized to UTC day
		{"05/03/2024", Date{}, false},
		{"not a date", Date{}, false},
		{"", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(tc.want.Time) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestDateString(t *testing.T) {
	if got := NewDate(2024, 3, 5).String(); got != "2024-03-05" {
		t.Fatalf("expected 2024-03-05, got %s", got)
	}
	if got := NewDate(2024, 3, 5).Display(); got != "Mar 05, 2024" {
		t.Fatalf("expected Mar 05, 2024, got %s", got)
	}
}

func TestRecordValidate(t *testing.T) {
	good := Record{
		ID:        "r1",
		Title:     "Coffee",
		Amount:    Money{Cents: 450},
		Category:  "Food & Dining",
		Date:      NewDate(2024, 3, 5),
		CreatedAt: time.Now(),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		name string
		rec  Record
		want error
	}{
		{"empty title", Record{Amount: Money{Cents: 1}, Category: "c", Date: NewDate(2024, 1, 1)}, ErrEmptyTitle},
		{"zero amount", Record{Title: "a", Category: "c", Date: NewDate(2024, 1, 1)}, ErrInvalidAmount},
		{"negative amount", Record{Title: "a", Amount: Money{Cents: -1}, Category: "c", Date: NewDate(2024, 1, 1)}, ErrInvalidAmount},
		{"empty category", Record{Title: "a", Amount: Money{Cents: 1}, Date: NewDate(2024, 1, 1)}, ErrEmptyCategory},
		{"zero date", Record{Title: "a", Amount: Money{Cents: 1}, Category: "c"}, ErrInvalidDate},
	}
	for _, tc := range bads {
		if err := tc.rec.Validate(); err != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	if len(cats) != 12 {
		t.Fatalf("expected 12 default categories, got %d", len(cats))
	}
	seen := map[string]bool{}
	for _, c := range cats {
		if seen[c] {
			t.Fatalf("duplicate category %q", c)
		}
		seen[c] = true
	}
	if cats[0] != "Food & Dining" || cats[11] != "Other" {
		t.Fatalf("unexpected seed order: %v", cats)
	}
}
