// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package paymentform

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/moov-io/billing/pkg/model"
	"github.com/moov-io/billing/pkg/util"

	"github.com/go-kit/kit/log"
)

const (
	// FailureNotice is shown when the payment could not be sent or the
	// server failed unexpectedly.
	FailureNotice = "Payment failed. Please try again."

	DefaultTimeout = 10 * time.Second
)

var (
	ErrNoAccount        = errors.New("paymentform: no account open")
	ErrSubmitInProgress = errors.New("paymentform: submission in progress")
	ErrCompleted        = errors.New("paymentform: payment already completed")

	// ErrAccountChanged is returned by Submit when a different account was
	// opened while the payment was in flight. The result is discarded.
	ErrAccountChanged = errors.New("paymentform: account changed during submission")
)

// State of the form. Transitions are Idle -> Submitting -> Success or Idle.
type State int

const (
	Idle State = iota
	Submitting
	Success
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	}
	return "unknown"
}

// Submitter sends a validated PaymentRequest. A declined payment is a
// response with Success=false, errors are reserved for transport faults.
type Submitter interface {
	MakePayment(ctx context.Context, req model.PaymentRequest) (*model.PaymentResponse, error)
}

type Options struct {
	// Timeout bounds each Submitter call, DefaultTimeout when zero.
	Timeout time.Duration
}

// Outcome describes the result of one Submit call.
type Outcome struct {
	State State

	// Errors holds a message for every field which failed validation.
	// Nothing was sent when it's non-empty.
	Errors map[Field]string

	// Request is the payment that was sent, nil when validation failed.
	Request *model.PaymentRequest

	// Response from the server, nil after a transport fault.
	Response *model.PaymentResponse

	// Notice is the failure text to show, either the server message of a
	// declined payment or FailureNotice.
	Notice string
}

// Controller holds the transient state of a payment form for one account at a time.
// It is safe for concurrent use.
type Controller struct {
	logger    log.Logger
	submitter Submitter
	timeout   time.Duration

	mu         sync.Mutex
	account    *model.Account
	generation uint64
	state      State
	values     map[Field]string
	errors     map[Field]string
}

func NewController(logger log.Logger, submitter Submitter, opts Options) *Controller {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Controller{
		logger:    logger,
		submitter: submitter,
		timeout:   timeout,
		values:    make(map[Field]string),
		errors:    make(map[Field]string),
	}
}

// Open targets acct and resets every value and message.
func (c *Controller) Open(acct model.Account) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reset()
	c.account = &acct
}

// Dismiss closes the form without validating anything.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reset()
}

func (c *Controller) reset() {
	c.generation++
	c.account = nil
	c.state = Idle
	c.values = make(map[Field]string)
	c.errors = make(map[Field]string)
}

// Account returns the account currently open.
func (c *Controller) Account() (model.Account, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.account == nil {
		return model.Account{}, false
	}
	return *c.account, true
}

// Update stores raw as the value of field. Card numbers are formatted as they're stored.
func (c *Controller) Update(field Field, raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Submitting:
		return ErrSubmitInProgress
	case Success:
		return ErrCompleted
	}
	if field == CardNumber {
		raw = FormatCardNumber(raw)
	}
	c.values[field] = raw
	return nil
}

func (c *Controller) Value(field Field) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.values[field]
}

// Errors returns the messages of the last validation.
func (c *Controller) Errors() map[Field]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return copyErrors(c.errors)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Submit validates every field and sends the payment when all of them pass.
// Only one submission runs at a time, a concurrent call gets ErrSubmitInProgress.
func (c *Controller) Submit(ctx context.Context) (*Outcome, error) {
	c.mu.Lock()
	if c.account == nil {
		c.mu.Unlock()
		return nil, ErrNoAccount
	}
	switch c.state {
	case Submitting:
		c.mu.Unlock()
		return nil, ErrSubmitInProgress
	case Success:
		c.mu.Unlock()
		return nil, ErrCompleted
	}

	c.errors = make(map[Field]string)
	for _, field := range Fields {
		if msg := validate(field, c.values[field]); msg != "" {
			c.errors[field] = msg
		}
	}
	if len(c.errors) > 0 {
		out := &Outcome{State: c.state, Errors: copyErrors(c.errors)}
		c.mu.Unlock()
		return out, nil
	}

	req, err := c.buildRequest()
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.state = Submitting
	generation := c.generation
	c.mu.Unlock()

	resp, err := c.send(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		c.logger.Log("paymentform", fmt.Sprintf("discarding result for account %s", req.AccountID))
		return nil, ErrAccountChanged
	}

	out := &Outcome{Request: &req, Response: resp}
	switch {
	case err != nil:
		c.logger.Log("paymentform", fmt.Sprintf("problem submitting payment: %v", err), "accountID", req.AccountID)
		c.state = Idle
		out.Notice = FailureNotice

	case resp.Success:
		c.state = Success

	default:
		c.state = Idle
		out.Notice = resp.Message
	}
	out.State = c.state
	return out, nil
}

func (c *Controller) buildRequest() (model.PaymentRequest, error) {
	amount, err := model.ParseAmount(c.values[Amount])
	if err != nil {
		return model.PaymentRequest{}, fmt.Errorf("paymentform: %v", err)
	}
	return model.PaymentRequest{
		AccountID:      c.account.ID,
		CardNumber:     c.values[CardNumber],
		CardholderName: c.values[CardholderName],
		ExpiryDate:     c.values[ExpiryDate],
		CVV:            c.values[CVV],
		Amount:         amount,
	}, nil
}

func (c *Controller) send(ctx context.Context, req model.PaymentRequest) (*model.PaymentResponse, error) {
	var resp *model.PaymentResponse
	err := util.Timeout(ctx, c.timeout, func(ctx context.Context) error {
		r, err := c.submitter.MakePayment(ctx, req)
		if err != nil {
			return err
		}
		if r == nil {
			return errors.New("empty payment response")
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func copyErrors(in map[Field]string) map[Field]string {
	out := make(map[Field]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
