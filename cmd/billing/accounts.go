// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/moov-io/billing/pkg/model"
)

func (c *command) accounts(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("accounts", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	flagType := fs.String("type", "ALL", "Account type to list (Options: ALL, ELECTRICITY, GAS)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	category, err := model.ParseCategoryFilter(*flagType)
	if err != nil {
		fmt.Fprintf(c.stderr, "invalid -type: %v\n", err)
		return 2
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	accounts, err := c.api.ListAccounts(ctx)
	if err != nil {
		c.logger.Log("accounts", fmt.Sprintf("problem listing accounts: %v", err))
		fmt.Fprintln(c.stderr, "Failed to fetch accounts")
		return 1
	}

	accounts = accounts.Filter(category)
	if len(accounts) == 0 {
		fmt.Fprintln(c.stdout, "No accounts found")
		return 0
	}

	w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tBALANCE\tADDRESS")
	for i := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", accounts[i].ID, accounts[i].Category, model.FormatBalance(accounts[i].Balance), accounts[i].Address)
	}
	w.Flush()
	return 0
}
