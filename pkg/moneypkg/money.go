// Package moneypkg normalizes caller-supplied money amounts into canonical
// 2-decimal currency values.
package moneypkg

import (
	"errors"
	"regexp"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates that the amount is not a valid decimal literal.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrTooSmall indicates that the normalized amount is below the minimum unit.
	ErrTooSmall = errors.New("amount is below the minimum unit")
)

// MinUnit is the smallest amount of money the system operates with.
var MinUnit = decimal.New(1, -2) // 0.01

// Accepts a sign-free decimal literal: "0" or a non-zero-leading integer
// part, optionally followed by a fractional part.
var amountPattern = regexp.MustCompile(`^(0|[1-9][0-9]*)(\.[0-9]+)?$`)

// Normalize parses amount and rounds it to exactly 2 decimal places using
// round-half-up, so "1.005" becomes "1.01".
//
// It returns ErrInvalidAmount for anything that is not a plain unsigned
// decimal literal (signs, exponents and leading zeros are rejected) and
// ErrTooSmall when the rounded value is below MinUnit.
func Normalize(amount string) (decimal.Decimal, error) {
	if !amountPattern.MatchString(amount) {
		return decimal.Decimal{}, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}

	// Round is half away from zero; amounts are non-negative here,
	// which makes it round-half-up.
	d = d.Round(2)

	if d.LessThan(MinUnit) {
		return decimal.Decimal{}, ErrTooSmall
	}

	return d, nil
}
