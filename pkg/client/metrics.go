// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package client

import (
	"net/url"

	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var (
	billingClientErrors = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Name: "billing_client_errors",
		Help: "Counter of errors with remote billing server",
	}, []string{"instance", "operation"})
)

func (c *Client) trackError(operation string) {
	u, _ := url.Parse(c.endpoint)
	if u == nil || u.Host == "" {
		billingClientErrors.With("instance", "N/A", "operation", operation).Add(1)
		return
	}
	billingClientErrors.With("instance", u.Host, "operation", operation).Add(1)
}
