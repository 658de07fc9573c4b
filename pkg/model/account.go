// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Account is an energy billing account.
//
// A positive Balance is a credit owed to the customer, negative is a debit
// owed by the customer and zero means the account is settled.
type Account struct {
	ID       string          `json:"id"`
	Category Category        `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
	Address  string          `json:"address"`
}

func (a Account) Validate() error {
	if a.ID == "" {
		return errors.New("missing account id")
	}
	return a.Category.Validate()
}

// Accounts is an ordered collection as returned by GET /accounts.
type Accounts []Account

// Filter returns the accounts matching cat, preserving order.
// AllCategories returns every account.
func (as Accounts) Filter(cat Category) Accounts {
	out := make(Accounts, 0, len(as))
	for i := range as {
		if cat == AllCategories || as[i].Category == cat {
			out = append(out, as[i])
		}
	}
	return out
}

// Find returns the account with an exactly matching id.
func (as Accounts) Find(id string) (Account, bool) {
	for i := range as {
		if as[i].ID == id {
			return as[i], true
		}
	}
	return Account{}, false
}

// Credit returns a copy of the collection where the account matching id has
// its balance increased by amount. The receiver is left untouched.
func (as Accounts) Credit(id string, amount decimal.Decimal) Accounts {
	out := make(Accounts, len(as))
	copy(out, as)
	for i := range out {
		if out[i].ID == id {
			out[i].Balance = out[i].Balance.Add(amount)
		}
	}
	return out
}
