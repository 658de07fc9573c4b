// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package payments

import (
	"context"
	"time"

	"github.com/moov-io/billing/pkg/model"
	"github.com/moov-io/billing/x/mask"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	paymentsProcessed = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "payments_processed",
		Help: "Counter of payment attempts by result",
	}, []string{"result"})

	paymentDurations = prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
		Name: "payment_processing_duration_seconds",
		Help: "Histogram of time spent processing payments",
	}, []string{"result"})
)

// Middleware describes a Processor middleware.
type Middleware func(Processor) Processor

// Chain wraps p with every middleware, the first one being the outermost.
func Chain(p Processor, mws ...Middleware) Processor {
	for i := len(mws) - 1; i >= 0; i-- {
		p = mws[i](p)
	}
	return p
}

func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next Processor) Processor {
		return &loggingMiddleware{
			next:   next,
			logger: logger,
		}
	}
}

type loggingMiddleware struct {
	next   Processor
	logger log.Logger
}

func (mw loggingMiddleware) Process(ctx context.Context, req model.PaymentRequest) (resp *model.PaymentResponse, err error) {
	defer func(begin time.Time) {
		kvs := []interface{}{
			"method", "Process",
			"accountID", req.AccountID,
			"card", mask.CardNumber(req.CardNumber),
			"amount", req.Amount.String(),
			"took", time.Since(begin),
		}
		if resp != nil {
			kvs = append(kvs, "success", resp.Success, "transactionID", resp.TransactionID, "message", resp.Message)
		}
		if err != nil {
			kvs = append(kvs, "err", err)
		}
		mw.logger.Log(kvs...)
	}(time.Now())
	return mw.next.Process(ctx, req)
}

func InstrumentingMiddleware() Middleware {
	return func(next Processor) Processor {
		return &instrumentingMiddleware{
			next:      next,
			count:     paymentsProcessed,
			durations: paymentDurations,
		}
	}
}

type instrumentingMiddleware struct {
	next      Processor
	count     metrics.Counter
	durations metrics.Histogram
}

func (mw instrumentingMiddleware) Process(ctx context.Context, req model.PaymentRequest) (resp *model.PaymentResponse, err error) {
	defer func(begin time.Time) {
		result := resultLabel(resp, err)
		mw.count.With("result", result).Add(1)
		mw.durations.With("result", result).Observe(time.Since(begin).Seconds())
	}(time.Now())
	return mw.next.Process(ctx, req)
}

func resultLabel(resp *model.PaymentResponse, err error) string {
	switch {
	case err != nil:
		return "error"
	case resp != nil && resp.Success:
		return "success"
	default:
		return "declined"
	}
}
