package core

import (
	"errors"
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"1", 1, true},
		{"1.0", 1, true},
		{"12.34", 12.34, true},
		{" 2.50 ", 2.5, true},
		{"-1", -1, true},
		{"0", 0, true},
		{"1e3", 1000, true},
		{"1,23", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"inf", 0, false},
		{"1e400", 0, false},
		{"0x1p-2", 0, false},
		{"-0X10", 0, false},
		{"+0x1", 0, false},
		{"0.5", 0.5, true},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}

	if _, err := ParseAmount("x"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[float64]string{
		50:     "50.0",
		12.5:   "12.5",
		0.1:    "0.1",
		-20:    "-20.0",
		0:      "0.0",
		1234.5: "1234.5",
	}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Errorf("FormatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatAmountNonFinite(t *testing.T) {
	large := 1e308
	overflow := large + large
	cases := []struct {
		in   float64
		want string
	}{
		{overflow, "inf"},
		{-overflow, "-inf"},
		{math.NaN(), "nan"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
