// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
)

type Tracing struct {
	Enabled     bool
	ServiceName string

	// SampleRate of 1.0 records every span, lower values are probabilistic.
	SampleRate float64
}

func (cfg Tracing) Validate() error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.ServiceName == "" {
		return errors.New("missing service name")
	}
	if cfg.SampleRate <= 0 || cfg.SampleRate > 1 {
		return errors.New("sample rate must be within (0, 1]")
	}
	return nil
}
