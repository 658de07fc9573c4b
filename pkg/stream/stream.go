// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

// Package stream exposes gocloud.dev/pubsub and side-loads various packages
// to register implementations such as kafka or in-memory. Please refer to
// specific documentation for each implementation.
//
//  - https://gocloud.dev/howto/pubsub/publish/
//  - https://gocloud.dev/howto/pubsub/subscribe/
package stream

import (
	"context"
	"errors"

	"github.com/moov-io/billing/pkg/config"

	"github.com/Shopify/sarama"
	"gocloud.dev/pubsub"
	"gocloud.dev/pubsub/kafkapubsub"
	_ "gocloud.dev/pubsub/mempubsub"
)

func Topic(ctx context.Context, url string) (*pubsub.Topic, error) {
	return pubsub.OpenTopic(ctx, url)
}

func Subscription(ctx context.Context, url string) (*pubsub.Subscription, error) {
	return pubsub.OpenSubscription(ctx, url)
}

// OpenTopic returns the topic payment events are published to. A nil Topic
// and nil error are returned when no stream is configured.
func OpenTopic(ctx context.Context, cfg *config.Stream) (*pubsub.Topic, error) {
	if cfg == nil {
		return nil, nil
	}
	if k := cfg.Kafka; k != nil {
		return KafkaTopic(k.Brokers, kafkapubsub.MinimalConfig(), k.Topic, nil)
	}
	if cfg.InMem != nil {
		return Topic(ctx, cfg.InMem.URL)
	}
	return nil, errors.New("stream: no topic configured")
}

// KafkaTopic creates a pubsub.Topic that sends to a Kafka topic. It uses a sarama.SyncProducer to send messages.
// Producer options can be configured in the Producer section of the sarama.Config: https://godoc.org/github.com/Shopify/sarama#Config.
// Config.Producer.Return.Success must be set to true.
func KafkaTopic(brokers []string, config *sarama.Config, topicName string, opts *kafkapubsub.TopicOptions) (*pubsub.Topic, error) {
	return kafkapubsub.OpenTopic(brokers, config, topicName, opts)
}
