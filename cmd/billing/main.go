// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// billing is a command line client which lists energy accounts and pays
// them through a billing server.
//
//   billing accounts -type GAS
//   billing pay -account A-0001 -amount 100 -card 4111111111111111 -name "Jane Doe" -expiry 12/29 -cvv 123
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/moov-io/billing/internal/version"
	"github.com/moov-io/billing/pkg/client"
	"github.com/moov-io/billing/pkg/util"

	"github.com/go-kit/kit/log"
)

const usage = `usage: billing [flags] <command> [command flags]

commands:
  accounts   list accounts, optionally filtered by -type
  pay        pay towards one account
  version    print the client version

flags:
`

type command struct {
	api    *client.Client
	logger log.Logger

	timeout time.Duration

	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("billing", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	flagEndpoint := fs.String("endpoint", "", "Billing server address, BILLING_ENDPOINT or http://localhost:3001 when empty")
	flagLogFormat := fs.String("log.format", "", "Format for log lines (Options: json, plain")
	flagTimeout := fs.Duration("timeout", 10*time.Second, "How long to wait for the billing server")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	logger := setupLogger(stderr, *flagLogFormat)
	endpoint := util.Or(*flagEndpoint, client.Endpoint())

	cmd := &command{
		api:     client.New(logger, endpoint, nil),
		logger:  logger,
		timeout: *flagTimeout,
		stdout:  stdout,
		stderr:  stderr,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rest := fs.Args()[1:]
	switch name := fs.Arg(0); name {
	case "accounts":
		return cmd.accounts(ctx, rest)
	case "pay":
		return cmd.pay(ctx, rest)
	case "version":
		fmt.Fprintln(stdout, version.Version)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		fs.Usage()
		return 2
	}
}

func setupLogger(w io.Writer, format string) log.Logger {
	var logger log.Logger
	if strings.EqualFold(format, "json") {
		logger = log.NewJSONLogger(w)
	} else {
		logger = log.NewLogfmtLogger(w)
	}
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	logger = log.With(logger, "caller", log.DefaultCaller)
	return logger
}
