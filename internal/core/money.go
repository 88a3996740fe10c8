// Package core holds the expense domain model and the pure filter and
// aggregation engines. It has no dependencies outside the standard library
// so the engines stay trivially testable.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Money is a currency amount in integer cents. Calculations always stay in
// cents; floating point only appears at the display boundary.
type Money struct {
	Cents int64
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Add returns the sum of the two amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// ParseAmount converts a decimal string to Money with half-up rounding on
// the third decimal place. Both dot and comma separators are accepted.
// Zero and negative amounts are rejected.
//
//	ParseAmount("4.50")  -> 450 cents
//	ParseAmount("4,505") -> 451 cents (rounds up)
func ParseAmount(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return Money{}, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	// Guard the *100 below.
	const maxUnits = (1<<63 - 1) / 100
	if units > maxUnits {
		return Money{}, ErrInvalidAmount
	}
	var cents int64
	if len(fracPart) > 0 {
		cents = int64(fracPart[0]-'0') * 10
	}
	if len(fracPart) > 1 {
		cents += int64(fracPart[1] - '0')
	}
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		cents++
	}
	total := units*100 + cents
	if total <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: total}, nil
}

// Format renders the amount in the en-US currency style, e.g. "$1,234.56".
func (m Money) Format() string {
	units := m.Cents / 100
	cents := m.Cents % 100
	digits := strconv.FormatInt(units, 10)
	var b strings.Builder
	b.WriteByte('$')
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	if cents < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(cents, 10))
	return b.String()
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.Cents, 10)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	cents, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return ErrInvalidAmount
	}
	m.Cents = cents
	return nil
}
