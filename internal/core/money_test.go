package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"4.50", 450, true},
		{"4,50", 450, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{".5", 50, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d cents, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{450, "$4.50"},
		{5, "$0.05"},
		{123456, "$1,234.56"},
		{100000000, "$1,000,000.00"},
		{0, "$0.00"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Format(); got != tc.want {
			t.Fatalf("%d cents expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestMoneyAdd(t *testing.T) {
	if got := (Money{Cents: 100}).Add(Money{Cents: 250}); got.Cents != 350 {
		t.Fatalf("expected 350, got %d", got.Cents)
	}
}
