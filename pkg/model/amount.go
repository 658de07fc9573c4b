// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Balances and amounts travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

var (
	// ErrTooManyDecimals is returned when an amount has more than two fractional digits.
	ErrTooManyDecimals = errors.New("more than 2 decimal places")

	amountFormat = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
)

// ParseAmount reads a non-negative currency amount written as plain digits
// such as "12.53" or "100". Signs, exponents and a bare "." are rejected,
// and at most two fractional digits are allowed.
func ParseAmount(in string) (decimal.Decimal, error) {
	in = strings.TrimSpace(in)
	if !amountFormat.MatchString(in) {
		return decimal.Zero, fmt.Errorf("invalid amount %q", in)
	}
	if idx := strings.IndexByte(in, '.'); idx >= 0 && len(in)-idx-1 > 2 {
		return decimal.Zero, ErrTooManyDecimals
	}
	return decimal.NewFromString(in)
}

// WholeCents reports if amt has no precision below one cent.
func WholeCents(amt decimal.Decimal) bool {
	return amt.Equal(amt.Round(2))
}

// FormatBalance returns the display text for an account balance.
// Examples:
//   30   -> $30.00 CR
//   -40  -> $40.00
//   0    -> $0.00
func FormatBalance(balance decimal.Decimal) string {
	text := fmt.Sprintf("$%s", balance.Abs().StringFixed(2))
	if balance.IsPositive() {
		return text + " CR"
	}
	return text
}
