// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

type Config struct {
	Logger  log.Logger `yaml:"-" json:"-"`
	Logging Logging

	Http  HTTP
	Admin Admin

	// Currency is the ISO 4217 code balances and payments are expressed in.
	Currency string

	Accounts Accounts
	Payments Payments
	Events   Events
	Tracing  Tracing
}

type Logging struct {
	Format string
	Level  string
}

func Empty() *Config {
	return &Config{
		Logger: log.NewNopLogger(),
		Admin: Admin{
			BindAddress: ":9093",
		},
		Http: HTTP{
			BindAddress: ":3001",
		},
		Currency: "AUD",
		Payments: Payments{
			TransactionIDs: RandomTransactionIDs,
		},
		Events: Events{
			Stream: &Stream{
				InMem: &InMemStream{
					URL: "mem://billing-payments",
				},
			},
		},
		Tracing: Tracing{
			ServiceName: "billing",
			SampleRate:  1.0,
		},
	}
}

func FromFile(path string) (*Config, error) {
	cfg := Empty()
	if path != "" {
		bs, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %v", path, err)
		}
		return Read(bs)
	}
	cfg = setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads path (defaults when empty) and applies environment and
// flag overrides on top of it.
func LoadConfig(path string, logFormat *string) (*Config, error) {
	cfg, err := FromFile(path)
	if err != nil {
		return cfg, err
	}

	OverrideWithEnvVars(cfg)

	if logFormat != nil && *logFormat != "" {
		cfg.Logging.Format = *logFormat
		cfg = setupLogger(cfg)
	}
	return cfg, cfg.Validate()
}

// OverrideWithEnvVars replaces bind addresses with HTTP_BIND_ADDRESS and
// HTTP_ADMIN_BIND_ADDRESS when they're set.
func OverrideWithEnvVars(cfg *Config) {
	if v := os.Getenv("HTTP_BIND_ADDRESS"); v != "" {
		cfg.Http.BindAddress = v
	}
	if v := os.Getenv("HTTP_ADMIN_BIND_ADDRESS"); v != "" {
		cfg.Admin.BindAddress = v
	}
}

func Read(data []byte) (*Config, error) {
	vip := viper.New()
	vip.SetConfigType("yaml")
	if err := vip.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("problem reading config: %v", err)
	}

	cfg := Empty()
	if err := vip.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("problem unmarshaling config: %v", err)
	}

	cfg = setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setupLogger(cfg *Config) *Config {
	if strings.EqualFold(cfg.Logging.Format, "json") {
		cfg.Logger = log.NewJSONLogger(os.Stderr)
	} else {
		cfg.Logger = log.NewLogfmtLogger(os.Stderr)
	}

	cfg.Logger = log.With(cfg.Logger, "ts", log.DefaultTimestampUTC)
	cfg.Logger = log.With(cfg.Logger, "caller", log.DefaultCaller)

	return cfg
}

// Validate checks a Config fields and performs various confirmations
// their values conform to expectations.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.New("missing Config")
	}

	if _, err := currency.ParseISO(cfg.Currency); err != nil {
		return fmt.Errorf("currency: %v", err)
	}
	if err := cfg.Http.Validate(); err != nil {
		return fmt.Errorf("http: %v", err)
	}
	if err := cfg.Accounts.Validate(); err != nil {
		return fmt.Errorf("accounts: %v", err)
	}
	if err := cfg.Payments.Validate(); err != nil {
		return fmt.Errorf("payments: %v", err)
	}
	if err := cfg.Events.Validate(); err != nil {
		return fmt.Errorf("events: %v", err)
	}
	if err := cfg.Tracing.Validate(); err != nil {
		return fmt.Errorf("tracing: %v", err)
	}

	return nil
}
