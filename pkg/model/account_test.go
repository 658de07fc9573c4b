// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testAccounts() Accounts {
	return Accounts{
		{ID: "A-0001", Category: Electricity, Balance: decimal.NewFromInt(30), Address: "1 Greville Ct"},
		{ID: "A-0002", Category: Gas, Balance: decimal.Zero, Address: "74 Taltarni Rd"},
		{ID: "A-0003", Category: Electricity, Balance: decimal.NewFromInt(-40), Address: "44 William Road"},
	}
}

func TestAccount__JSON(t *testing.T) {
	var acct Account
	err := json.NewDecoder(strings.NewReader(`{"id":"A-0001","type":"ELECTRICITY","balance":30,"address":"1 Greville Ct"}`)).Decode(&acct)
	require.NoError(t, err)
	require.Equal(t, "A-0001", acct.ID)
	require.Equal(t, Electricity, acct.Category)
	require.True(t, acct.Balance.Equal(decimal.NewFromInt(30)))

	bs, err := json.Marshal(acct)
	require.NoError(t, err)
	require.Equal(t, `{"id":"A-0001","type":"ELECTRICITY","balance":30,"address":"1 Greville Ct"}`, string(bs))

	// unknown categories are rejected on decode
	err = json.Unmarshal([]byte(`{"id":"A-0001","type":"WATER","balance":0}`), &acct)
	require.Error(t, err)
}

func TestAccount__Validate(t *testing.T) {
	acct := testAccounts()[0]
	require.NoError(t, acct.Validate())

	acct.ID = ""
	require.Error(t, acct.Validate())

	acct.ID = "A-0001"
	acct.Category = "WATER"
	require.Error(t, acct.Validate())
}

func TestAccounts__Filter(t *testing.T) {
	accounts := testAccounts()

	all := accounts.Filter(AllCategories)
	require.Len(t, all, 3)

	elec := accounts.Filter(Electricity)
	require.Len(t, elec, 2)
	require.Equal(t, "A-0001", elec[0].ID)
	require.Equal(t, "A-0003", elec[1].ID)

	gas := accounts.Filter(Gas)
	require.Len(t, gas, 1)
	require.Equal(t, "A-0002", gas[0].ID)
}

func TestAccounts__Credit(t *testing.T) {
	accounts := testAccounts()

	updated := accounts.Credit("A-0001", decimal.NewFromInt(100))
	acct, found := updated.Find("A-0001")
	require.True(t, found)
	require.True(t, acct.Balance.Equal(decimal.NewFromInt(130)), acct.Balance.String())

	// original collection is untouched
	acct, _ = accounts.Find("A-0001")
	require.True(t, acct.Balance.Equal(decimal.NewFromInt(30)))

	// unknown ids change nothing
	same := accounts.Credit("NON-EXISTENT", decimal.NewFromInt(5))
	for i := range same {
		require.True(t, same[i].Balance.Equal(accounts[i].Balance))
	}

	if _, found := accounts.Find("a-0001"); found {
		t.Error("lookup must be an exact match")
	}
}

func TestCategory(t *testing.T) {
	require.NoError(t, Electricity.Validate())
	require.NoError(t, Gas.Validate())
	require.Error(t, AllCategories.Validate())
	require.Error(t, Category("").Validate())

	cat, err := ParseCategoryFilter("")
	require.NoError(t, err)
	require.Equal(t, AllCategories, cat)

	cat, err = ParseCategoryFilter("gas")
	require.NoError(t, err)
	require.Equal(t, Gas, cat)

	_, err = ParseCategoryFilter("water")
	require.Error(t, err)
}
