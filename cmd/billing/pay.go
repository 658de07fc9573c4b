// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/moov-io/billing/pkg/model"
	"github.com/moov-io/billing/pkg/paymentform"
)

func (c *command) pay(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("pay", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var (
		flagAccount = fs.String("account", "", "Account ID to pay, for example A-0001")
		flagAmount  = fs.String("amount", "", "Payment amount, for example 100 or 12.50")
		flagCard    = fs.String("card", "", "16-digit card number")
		flagName    = fs.String("name", "", "Cardholder name")
		flagExpiry  = fs.String("expiry", "", "Card expiry date as MM/YY")
		flagCVV     = fs.String("cvv", "", "Card CVV")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *flagAccount == "" {
		fmt.Fprintln(c.stderr, "missing -account")
		return 2
	}

	listCtx, cancel := context.WithTimeout(ctx, c.timeout)
	accounts, err := c.api.ListAccounts(listCtx)
	cancel()
	if err != nil {
		c.logger.Log("pay", fmt.Sprintf("problem listing accounts: %v", err))
		fmt.Fprintln(c.stderr, "Failed to fetch accounts")
		return 1
	}
	acct, found := accounts.Find(*flagAccount)
	if !found {
		fmt.Fprintf(c.stderr, "Account %s not found\n", *flagAccount)
		return 1
	}

	form := paymentform.NewController(c.logger, c.api, paymentform.Options{Timeout: c.timeout})
	form.Open(acct)

	values := map[paymentform.Field]string{
		paymentform.CardNumber:     *flagCard,
		paymentform.CardholderName: *flagName,
		paymentform.ExpiryDate:     *flagExpiry,
		paymentform.CVV:            *flagCVV,
		paymentform.Amount:         *flagAmount,
	}
	for field, value := range values {
		if err := form.Update(field, value); err != nil {
			fmt.Fprintln(c.stderr, err)
			return 1
		}
	}

	fmt.Fprintf(c.stdout, "Paying %s (%s, balance %s)\n", acct.ID, acct.Address, model.FormatBalance(acct.Balance))

	out, err := form.Submit(ctx)
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return 1
	}
	if len(out.Errors) > 0 {
		for _, field := range paymentform.Fields {
			if msg, exists := out.Errors[field]; exists {
				fmt.Fprintf(c.stderr, "  %s: %s\n", field, msg)
			}
		}
		return 1
	}
	if out.State != paymentform.Success {
		fmt.Fprintln(c.stderr, out.Notice)
		return 1
	}

	// Balances are adjusted locally instead of fetching them again.
	accounts = accounts.Credit(acct.ID, out.Request.Amount)
	acct, _ = accounts.Find(acct.ID)

	fmt.Fprintln(c.stdout, "Payment Successful!")
	fmt.Fprintf(c.stdout, "Transaction ID: %s\n", out.Response.TransactionID)
	fmt.Fprintf(c.stdout, "New balance: %s\n", model.FormatBalance(acct.Balance))

	form.Dismiss()
	return 0
}
