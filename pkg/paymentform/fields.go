// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package paymentform

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/moov-io/billing/pkg/model"

	"github.com/shopspring/decimal"
)

// Field is one input of the payment form.
type Field int

const (
	CardNumber Field = iota
	CardholderName
	ExpiryDate
	CVV
	Amount
)

// Fields lists every Field in display order.
var Fields = []Field{CardNumber, CardholderName, ExpiryDate, CVV, Amount}

func (f Field) String() string {
	switch f {
	case CardNumber:
		return "cardNumber"
	case CardholderName:
		return "cardholderName"
	case ExpiryDate:
		return "expiryDate"
	case CVV:
		return "cvv"
	case Amount:
		return "amount"
	}
	return "unknown"
}

const maxCardNumberLength = 19

var (
	nonDigits = regexp.MustCompile(`[^0-9]`)

	cardNumberFormat = regexp.MustCompile(`^[0-9]{4} [0-9]{4} [0-9]{4} [0-9]{4}$`)
	expiryFormat     = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvFormat        = regexp.MustCompile(`^[0-9]{3,4}$`)
	amountFormat     = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,2})?$`)

	minimumAmount = decimal.New(1, -2)
)

// FormatCardNumber strips everything but digits and groups them by four,
// for example "4111111111111111" becomes "4111 1111 1111 1111". The result
// is capped at 19 characters and formatting twice changes nothing.
func FormatCardNumber(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")

	var buf strings.Builder
	for i := range digits {
		if i > 0 && i%4 == 0 {
			buf.WriteByte(' ')
		}
		buf.WriteByte(digits[i])
	}
	out := buf.String()
	if len(out) > maxCardNumberLength {
		out = out[:maxCardNumberLength]
	}
	return out
}

// validate checks one stored value and returns the message shown next to
// the field, or an empty string when the value is acceptable.
func validate(field Field, value string) string {
	blank := strings.TrimSpace(value) == ""

	switch field {
	case CardNumber:
		if blank {
			return "Card number is required"
		}
		if !cardNumberFormat.MatchString(value) {
			return "Enter a valid 16-digit card number"
		}

	case CardholderName:
		if blank {
			return "Cardholder name is required"
		}
		if utf8.RuneCountInString(value) < 3 {
			return "Name must be at least 3 characters"
		}

	case ExpiryDate:
		if blank {
			return "Expiry date is required"
		}
		if !expiryFormat.MatchString(value) {
			return "Enter a valid expiry date (MM/YY)"
		}

	case CVV:
		if blank {
			return "CVV is required"
		}
		if !cvvFormat.MatchString(value) {
			return "CVV must be 3 or 4 digits"
		}

	case Amount:
		if blank {
			return "Amount is required"
		}
		if !amountFormat.MatchString(value) {
			return "Enter a valid amount"
		}
		amt, err := model.ParseAmount(value)
		if err != nil {
			return "Enter a valid amount"
		}
		if amt.LessThan(minimumAmount) {
			return "Amount must be at least $0.01"
		}
	}
	return ""
}
