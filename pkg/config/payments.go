// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	RandomTransactionIDs     = "random"
	SequentialTransactionIDs = "sequential"
)

type Payments struct {
	// TransactionIDs selects how T-#### identifiers are generated,
	// either "random" or "sequential".
	TransactionIDs string

	// ProcessingDelay simulates time spent talking to a card network.
	ProcessingDelay time.Duration
}

func (cfg Payments) Validate() error {
	switch strings.ToLower(cfg.TransactionIDs) {
	case RandomTransactionIDs, SequentialTransactionIDs:
	default:
		return fmt.Errorf("unknown transaction id scheme %q", cfg.TransactionIDs)
	}
	if cfg.ProcessingDelay < 0 {
		return errors.New("negative processing delay")
	}
	return nil
}
