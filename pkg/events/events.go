// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/moov-io/base"
	"github.com/moov-io/billing/pkg/model"

	"github.com/go-kit/kit/log"
	"github.com/shopspring/decimal"
	"gocloud.dev/pubsub"
)

const (
	PaymentCompletedType = "PaymentCompleted"
)

// PaymentCompleted is emitted after an account balance was credited.
// Card details are never part of an event.
type PaymentCompleted struct {
	EventID       string          `json:"eventID"`
	EventType     string          `json:"eventType"`
	TransactionID string          `json:"transactionId"`
	AccountID     string          `json:"accountId"`
	Amount        decimal.Decimal `json:"amount"`
	Balance       decimal.Decimal `json:"balance"`
	Timestamp     time.Time       `json:"timestamp"`
}

func NewPaymentCompleted(transactionID string, acct model.Account, amount decimal.Decimal) *PaymentCompleted {
	return &PaymentCompleted{
		EventID:       base.ID(),
		EventType:     PaymentCompletedType,
		TransactionID: transactionID,
		AccountID:     acct.ID,
		Amount:        amount,
		Balance:       acct.Balance,
		Timestamp:     time.Now().UTC(),
	}
}

func buildMessage(eventID string, event interface{}) (*pubsub.Message, error) {
	bs, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	meta := make(map[string]string)
	meta["eventID"] = eventID

	return &pubsub.Message{
		Body:     bs,
		Metadata: meta,
	}, nil
}

// Emitter publishes payment events.
type Emitter interface {
	PaymentCompleted(ctx context.Context, event *PaymentCompleted) error
}

// NewEmitter returns an Emitter backed by topic. A nil topic discards events.
func NewEmitter(logger log.Logger, topic *pubsub.Topic) Emitter {
	if topic == nil {
		return &discard{}
	}
	return &topicEmitter{
		logger: logger,
		topic:  topic,
	}
}

type topicEmitter struct {
	logger log.Logger
	topic  *pubsub.Topic
}

func (e *topicEmitter) PaymentCompleted(ctx context.Context, event *PaymentCompleted) error {
	msg, err := buildMessage(event.EventID, event)
	if err != nil {
		return fmt.Errorf("events: building %s: %v", event.EventType, err)
	}
	msg.Metadata["eventType"] = event.EventType

	if err := e.topic.Send(ctx, msg); err != nil {
		return fmt.Errorf("events: sending %s: %v", event.EventType, err)
	}
	e.logger.Log("events", fmt.Sprintf("sent %s for transaction %s", event.EventType, event.TransactionID), "eventID", event.EventID)
	return nil
}

type discard struct{}

func (*discard) PaymentCompleted(_ context.Context, _ *PaymentCompleted) error {
	return nil
}

// MockEmitter records events for tests.
type MockEmitter struct {
	Events []*PaymentCompleted
	Err    error
}

func (e *MockEmitter) PaymentCompleted(_ context.Context, event *PaymentCompleted) error {
	if e.Err != nil {
		return e.Err
	}
	e.Events = append(e.Events, event)
	return nil
}
