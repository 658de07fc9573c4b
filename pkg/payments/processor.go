// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/moov-io/billing/pkg/accounts"
	"github.com/moov-io/billing/pkg/events"
	"github.com/moov-io/billing/pkg/model"

	"github.com/go-kit/kit/log"
	"github.com/go-playground/validator/v10"
)

const (
	MessageInvalidDetails = "Invalid payment details"
	MessageInvalidAmount  = "Invalid payment amount"
	MessageNotFound       = "Account not found"
)

// Processor validates a PaymentRequest and credits the target account.
//
// Declined payments are returned as a PaymentResponse with Success=false.
// A non-nil error is only returned for unexpected faults, in which case no
// balance was changed.
type Processor interface {
	Process(ctx context.Context, req model.PaymentRequest) (*model.PaymentResponse, error)
}

type Options struct {
	// Delay is waited before a payment is processed.
	Delay time.Duration
}

func NewProcessor(logger log.Logger, repo accounts.Repository, ids TransactionIDs, emitter events.Emitter, opts Options) Processor {
	if emitter == nil {
		emitter = events.NewEmitter(logger, nil)
	}
	return &processor{
		logger:   logger,
		repo:     repo,
		ids:      ids,
		emitter:  emitter,
		validate: newValidator(),
		delay:    opts.Delay,
	}
}

type processor struct {
	logger   log.Logger
	repo     accounts.Repository
	ids      TransactionIDs
	emitter  events.Emitter
	validate *validator.Validate
	delay    time.Duration
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

func (p *processor) Process(ctx context.Context, req model.PaymentRequest) (*model.PaymentResponse, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := p.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return model.Failed(MessageInvalidDetails), nil
		}
		return nil, fmt.Errorf("validating payment: %v", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := p.repo.FindByID(req.AccountID); err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return model.Failed(MessageNotFound), nil
		}
		return nil, fmt.Errorf("finding account %s: %v", req.AccountID, err)
	}
	if !req.Amount.IsPositive() || !model.WholeCents(req.Amount) {
		return model.Failed(MessageInvalidAmount), nil
	}

	// Crediting is the last step that can fail, nothing after it changes balances.
	acct, err := p.repo.ApplyCredit(req.AccountID, req.Amount)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return model.Failed(MessageNotFound), nil
		}
		return nil, fmt.Errorf("crediting account %s: %v", req.AccountID, err)
	}

	transactionID := p.ids.Next()

	event := events.NewPaymentCompleted(transactionID, *acct, req.Amount)
	if err := p.emitter.PaymentCompleted(ctx, event); err != nil {
		p.logger.Log("payments", fmt.Sprintf("problem publishing event for %s: %v", transactionID, err), "accountID", acct.ID)
	}

	return model.Succeeded(transactionID), nil
}
