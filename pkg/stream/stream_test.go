// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package stream

import (
	"context"
	"testing"
	"time"

	"github.com/moov-io/billing/pkg/config"

	"github.com/stretchr/testify/require"
	"gocloud.dev/pubsub"
)

func TestStream(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	topic, err := OpenTopic(ctx, &config.Stream{
		InMem: &config.InMemStream{URL: "mem://stream-test"},
	})
	require.NoError(t, err)
	defer topic.Shutdown(ctx)

	sub, err := Subscription(ctx, "mem://stream-test")
	require.NoError(t, err)
	defer sub.Shutdown(ctx)

	err = topic.Send(ctx, &pubsub.Message{
		Body:     []byte("hello, world"),
		Metadata: make(map[string]string),
	})
	require.NoError(t, err)

	msg, err := sub.Receive(ctx)
	require.NoError(t, err)
	msg.Ack()
	require.Equal(t, "hello, world", string(msg.Body))
}

func TestStream__unconfigured(t *testing.T) {
	topic, err := OpenTopic(context.Background(), nil)
	require.NoError(t, err)
	require.Nil(t, topic)

	_, err = OpenTopic(context.Background(), &config.Stream{})
	require.Error(t, err)
}
