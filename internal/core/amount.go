// Package core holds the entity types and the pure derivation logic: balance
// calculation and the aggregates built on top of it.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a user-entered decimal string to a strictly positive
// amount. It accepts both dot (12.34) and comma (12,34) decimal separators.
// Signs, empty strings, zero, and anything non-numeric are rejected with
// ErrInvalidAmount.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// ParseStartingDebt is ParseAmount with zero allowed: a new account may
// legitimately start with no debt. An empty string means zero.
func ParseStartingDebt(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	normalized := strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	if v < 0 {
		return 0, ErrNegativeDebt
	}
	return v, nil
}
