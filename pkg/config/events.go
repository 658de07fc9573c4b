// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package config

import (
	"errors"
)

type Events struct {
	Disabled bool
	Stream   *Stream
}

func (cfg Events) Validate() error {
	return cfg.Stream.Validate()
}

// Stream picks where payment events are published. Kafka takes precedence
// over the in-memory default when both are set.
type Stream struct {
	InMem *InMemStream
	Kafka *KafkaStream
}

func (cfg *Stream) Validate() error {
	if cfg == nil {
		return nil
	}
	if cfg.InMem != nil && cfg.InMem.URL == "" {
		return errors.New("inmem: missing stream url")
	}
	if k := cfg.Kafka; k != nil {
		if len(k.Brokers) == 0 || k.Topic == "" {
			return errors.New("kafka: missing brokers or topic")
		}
	}
	return nil
}

type InMemStream struct {
	URL string
}

type KafkaStream struct {
	Brokers []string
	Topic   string
}
