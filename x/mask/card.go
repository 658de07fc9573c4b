// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package mask

import (
	"strings"
	"unicode"
)

// CardNumber hides every digit of s except the last four, keeping
// separators in place. "4111 1111 1111 1234" becomes "**** **** **** 1234".
func CardNumber(s string) string {
	var digits int
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits <= 4 {
		return strings.Repeat("*", len(s)) // too short, we can't show anything
	}

	var buf strings.Builder
	seen := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			seen++
			if seen <= digits-4 {
				buf.WriteRune('*')
				continue
			}
		}
		buf.WriteRune(r)
	}
	return buf.String()
}
