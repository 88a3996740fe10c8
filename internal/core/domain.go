package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar date with day precision, normalized to UTC midnight.
	Date struct {
		time.Time
	}

	// Record is one expense entry.
	Record struct {
		ID          string     `json:"id"`
		Title       string     `json:"title"`
		Amount      Money      `json:"amount_cents"`
		Category    string     `json:"category"`
		Date        Date       `json:"date"`
		Description string     `json:"description,omitempty"`
		CreatedAt   time.Time  `json:"created_at"`
		UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyTitle    = errors.New("empty title")
	ErrEmptyCategory = errors.New("empty category")
	ErrTitleTooLong  = errors.New("title too long (max 200 characters)")
)

// DefaultCategories returns the seed category list for a fresh state.
func DefaultCategories() []string {
	return []string{
		"Food & Dining",
		"Transportation",
		"Shopping",
		"Entertainment",
		"Bills & Utilities",
		"Healthcare",
		"Travel",
		"Education",
		"Business",
		"Personal Care",
		"Gifts & Donations",
		"Other",
	}
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a day-precision date. It accepts the canonical
// "2006-01-02" form and full RFC 3339 timestamps, truncating the latter
// to the calendar day in UTC.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return Date{Time: t.UTC()}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return NewDate(t.Year(), int(t.Month()), t.Day()), nil
	}
	return Date{}, ErrInvalidDate
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String renders the canonical sortable form.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Display renders the date for presentation, e.g. "Mar 05, 2024".
func (d Date) Display() string {
	return d.Format("Jan 02, 2006")
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (r Record) Validate() error {
	if len(strings.TrimSpace(r.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(r.Title) > 200 {
		return ErrTitleTooLong
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if err := r.Date.Validate(); err != nil {
		return err
	}
	return nil
}
