// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package accounts

import (
	"github.com/moov-io/billing/pkg/model"

	"github.com/shopspring/decimal"
)

type MockRepository struct {
	Accounts []model.Account
	Err      error

	Credits int
}

func (r *MockRepository) List() ([]model.Account, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Accounts, nil
}

func (r *MockRepository) FindByID(id string) (*model.Account, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	for i := range r.Accounts {
		if r.Accounts[i].ID == id {
			acct := r.Accounts[i]
			return &acct, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MockRepository) ApplyCredit(id string, amount decimal.Decimal) (*model.Account, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	for i := range r.Accounts {
		if r.Accounts[i].ID == id {
			r.Credits++
			r.Accounts[i].Balance = r.Accounts[i].Balance.Add(amount)
			acct := r.Accounts[i]
			return &acct, nil
		}
	}
	return nil, ErrNotFound
}
