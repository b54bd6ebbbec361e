// Package core provides the expense record type and its parsing rules.
//
// This file contains functions for parsing amounts from user input and
// rendering them back as text for exports.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts user input into a float amount.
//
// Any value accepted by strconv.ParseFloat is allowed, including negative
// numbers and exponents. Infinite and NaN values are rejected since they
// cannot be summed or compared by value.
//
// Examples:
//
//	ParseAmount("50")     -> 50, nil
//	ParseAmount(" -2.5 ") -> -2.5, nil
//	ParseAmount("1e3")    -> 1000, nil
//	ParseAmount("abc")    -> 0, ErrInvalidAmount
//	ParseAmount("0x1p-2") -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount: %w", ErrEmptyField)
	}
	if isHex(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}

// FormatAmount renders an amount as the shortest decimal that parses back to
// the same float, always keeping a fractional part ("50.0", "12.5", "0.1").
// Totals that overflowed render as "inf", "-inf" or "nan".
func FormatAmount(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// isHex reports a hexadecimal float literal, which ParseFloat accepts but
// plain decimal input never contains.
func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
