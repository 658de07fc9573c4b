// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	amt, err := ParseAmount("12.53")
	require.NoError(t, err)
	require.True(t, amt.Equal(decimal.RequireFromString("12.53")))

	amt, err = ParseAmount(" 100 ")
	require.NoError(t, err)
	require.True(t, amt.Equal(decimal.NewFromInt(100)))

	amt, err = ParseAmount("0.05")
	require.NoError(t, err)
	require.True(t, amt.Equal(decimal.RequireFromString("0.05")))

	for _, in := range []string{"1.234", "1.230", "0.001"} {
		if _, err := ParseAmount(in); err != ErrTooManyDecimals {
			t.Errorf("%s: expected ErrTooManyDecimals, got %v", in, err)
		}
	}
	for _, in := range []string{"1e2", "-5", ".5", "1.", "+3", "1,00"} {
		if _, err := ParseAmount(in); err == nil {
			t.Errorf("%s: expected error", in)
		}
	}
	if _, err := ParseAmount("abc"); err == nil {
		t.Error("expected error")
	}
	if _, err := ParseAmount(""); err == nil {
		t.Error("expected error")
	}
}

func TestWholeCents(t *testing.T) {
	require.True(t, WholeCents(decimal.NewFromInt(100)))
	require.True(t, WholeCents(decimal.RequireFromString("12.50")))
	require.True(t, WholeCents(decimal.RequireFromString("1.500")))
	require.False(t, WholeCents(decimal.RequireFromString("0.001")))
	require.False(t, WholeCents(decimal.RequireFromString("130.001")))
}

func TestFormatBalance(t *testing.T) {
	cases := map[string]string{
		"30":     "$30.00 CR",
		"120":    "$120.00 CR",
		"-40":    "$40.00",
		"-15.5":  "$15.50",
		"0":      "$0.00",
		"0.01":   "$0.01 CR",
		"-60.00": "$60.00",
	}
	for in, expected := range cases {
		if v := FormatBalance(decimal.RequireFromString(in)); v != expected {
			t.Errorf("%s: got %q, expected %q", in, v, expected)
		}
	}
}

func TestAmount__JSON(t *testing.T) {
	bs, err := json.Marshal(struct {
		Amount decimal.Decimal `json:"amount"`
	}{Amount: decimal.RequireFromString("130")})
	require.NoError(t, err)
	require.Equal(t, `{"amount":130}`, string(bs))
}
