// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	cfg, err := FromFile(filepath.Join("testdata", "valid.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Logger == nil {
		t.Fatal("nil Logger")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("cfg.Logging.Format=%s", cfg.Logging.Format)
	}

	require.Equal(t, ":3001", cfg.Http.BindAddress)
	require.Equal(t, ":9093", cfg.Admin.BindAddress)
	require.Equal(t, "AUD", cfg.Currency)
	require.Equal(t, 500*time.Millisecond, cfg.Accounts.ListDelay)
	require.Equal(t, SequentialTransactionIDs, cfg.Payments.TransactionIDs)
	require.Equal(t, time.Second, cfg.Payments.ProcessingDelay)
	require.Equal(t, "mem://billing-test", cfg.Events.Stream.InMem.URL)
	require.True(t, cfg.Tracing.Enabled)
	require.Equal(t, 0.5, cfg.Tracing.SampleRate)
}

func TestConfig__Empty(t *testing.T) {
	cfg, err := FromFile("")
	require.NoError(t, err)

	require.Equal(t, ":3001", cfg.Http.BindAddress)
	require.Equal(t, RandomTransactionIDs, cfg.Payments.TransactionIDs)
	require.Equal(t, time.Duration(0), cfg.Payments.ProcessingDelay)
	require.False(t, cfg.Tracing.Enabled)
	require.NoError(t, Empty().Validate())
}

func TestInvalidConfig(t *testing.T) {
	cfg, err := FromFile(filepath.Join("testdata", "invalid.yaml"))
	if err == nil {
		t.Error("expected error")
	}

	if err := cfg.Validate(); err == nil {
		t.Error("expected error")
	}
}

func TestReadConfig(t *testing.T) {
	conf := []byte(`logging:
  format: plain
payments:
  transactionIDs: random
events:
  stream:
    kafka:
      brokers: ["localhost:9092"]
      topic: billing-payments
`)
	cfg, err := Read(conf)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, []string{"localhost:9092"}, cfg.Events.Stream.Kafka.Brokers)
	require.Equal(t, "billing-payments", cfg.Events.Stream.Kafka.Topic)

	// defaults are kept for sections left out
	require.Equal(t, "AUD", cfg.Currency)
	require.Equal(t, ":9093", cfg.Admin.BindAddress)
}

func TestConfig__Validate(t *testing.T) {
	cfg := Empty()
	cfg.Http.BindAddress = ""
	require.Error(t, cfg.Validate())

	cfg = Empty()
	cfg.Payments.ProcessingDelay = -time.Second
	require.Error(t, cfg.Validate())

	cfg = Empty()
	cfg.Accounts.ListDelay = -time.Second
	require.Error(t, cfg.Validate())

	cfg = Empty()
	cfg.Events.Stream = &Stream{Kafka: &KafkaStream{}}
	require.Error(t, cfg.Validate())

	cfg = Empty()
	cfg.Tracing = Tracing{Enabled: true, ServiceName: "billing", SampleRate: 2}
	require.Error(t, cfg.Validate())

	var nilConfig *Config
	require.Error(t, nilConfig.Validate())
}

func TestLoadConfig(t *testing.T) {
	os.Setenv("HTTP_BIND_ADDRESS", ":4001")
	os.Setenv("HTTP_ADMIN_BIND_ADDRESS", ":10093")
	defer func() {
		os.Unsetenv("HTTP_BIND_ADDRESS")
		os.Unsetenv("HTTP_ADMIN_BIND_ADDRESS")
	}()

	format := "plain"
	cfg, err := LoadConfig(filepath.Join("testdata", "valid.yaml"), &format)
	require.NoError(t, err)

	require.Equal(t, ":4001", cfg.Http.BindAddress)
	require.Equal(t, ":10093", cfg.Admin.BindAddress)
	require.Equal(t, "plain", cfg.Logging.Format)

	_, err = LoadConfig(filepath.Join("testdata", "missing.yaml"), nil)
	require.Error(t, err)
}
