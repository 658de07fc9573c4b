// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package accounts

import (
	"github.com/moov-io/billing/pkg/model"

	"github.com/shopspring/decimal"
)

// Seed returns the fixed set of demo accounts loaded at startup.
func Seed() []model.Account {
	return []model.Account{
		{
			ID:       "A-0001",
			Category: model.Electricity,
			Balance:  decimal.NewFromInt(30),
			Address:  "1 Greville Ct, Thomastown, 3076, Victoria",
		},
		{
			ID:       "A-0002",
			Category: model.Gas,
			Balance:  decimal.Zero,
			Address:  "74 Taltarni Rd, Yawong Hills, 3478, Victoria",
		},
		{
			ID:       "A-0003",
			Category: model.Electricity,
			Balance:  decimal.NewFromInt(-40),
			Address:  "44 William Road, Cresswell Downs, 0862, Northern Territory",
		},
		{
			ID:       "A-0004",
			Category: model.Electricity,
			Balance:  decimal.NewFromInt(50),
			Address:  "87 Carolina Park Road, Forresters Beach, 2260, New South Wales",
		},
		{
			ID:       "A-0005",
			Category: model.Gas,
			Balance:  decimal.NewFromInt(25),
			Address:  "12 Sunset Blvd, Redcliffe, 4020, Queensland",
		},
		{
			ID:       "A-0006",
			Category: model.Electricity,
			Balance:  decimal.NewFromInt(-15),
			Address:  "3 Ocean View Dr, Torquay, 3228, Victoria",
		},
		{
			ID:       "A-0007",
			Category: model.Gas,
			Balance:  decimal.Zero,
			Address:  "150 Greenway Cres, Mawson Lakes, 5095, South Australia",
		},
		{
			ID:       "A-0008",
			Category: model.Electricity,
			Balance:  decimal.NewFromInt(120),
			Address:  "88 Harbour St, Sydney, 2000, New South Wales",
		},
		{
			ID:       "A-0009",
			Category: model.Gas,
			Balance:  decimal.NewFromInt(-60),
			Address:  "22 Boulder Rd, Kalgoorlie, 6430, Western Australia",
		},
	}
}
