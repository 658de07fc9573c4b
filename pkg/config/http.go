// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
)

type HTTP struct {
	BindAddress string
}

func (cfg HTTP) Validate() error {
	if cfg.BindAddress == "" {
		return errors.New("missing bind address")
	}
	return nil
}

type Admin struct {
	BindAddress string

	// DisableConfigEndpoint hides GET /config on the admin server.
	DisableConfigEndpoint bool
}
