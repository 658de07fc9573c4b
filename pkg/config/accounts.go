// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"time"
)

type Accounts struct {
	// ListDelay simulates a slow backing store when listing accounts.
	ListDelay time.Duration
}

func (cfg Accounts) Validate() error {
	if cfg.ListDelay < 0 {
		return errors.New("negative list delay")
	}
	return nil
}
