// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/moov-io/base"
	"github.com/moov-io/billing/internal/version"
	"github.com/moov-io/billing/pkg/model"

	"github.com/go-kit/kit/log"
	"github.com/sony/gobreaker"
)

const (
	// DefaultEndpoint is used when BILLING_ENDPOINT is unset.
	DefaultEndpoint = "http://localhost:3001"

	maxReadBytes = 1 * 1024 * 1024
)

var (
	defaultHttpClient = &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			MaxConnsPerHost:     100,
			IdleConnTimeout:     1 * time.Minute,
		},
	}
)

// StatusError is returned when the server answers with an unexpected status code.
type StatusError struct {
	Operation  string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected HTTP status %d", e.Operation, e.StatusCode)
}

// Endpoint returns BILLING_ENDPOINT or DefaultEndpoint.
func Endpoint() string {
	if v := os.Getenv("BILLING_ENDPOINT"); v != "" {
		return v
	}
	return DefaultEndpoint
}

// New creates a Client for the billing server at endpoint. A nil httpClient
// uses a pooled client with a 10s timeout.
func New(logger log.Logger, endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = defaultHttpClient
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		client:   httpClient,
		endpoint: endpoint,
		logger:   logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "billing",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Log("client", fmt.Sprintf("circuit breaker %s changed from %s to %s", name, from, to))
		},
	})
	return c
}

type Client struct {
	client   *http.Client
	endpoint string
	breaker  *gobreaker.CircuitBreaker

	logger log.Logger
}

func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, "ping", "GET", "/ping", nil)
	if err != nil {
		return fmt.Errorf("error getting /ping from billing server: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Operation: "ping", StatusCode: resp.StatusCode}
	}
	bs, _ := ioutil.ReadAll(io.LimitReader(resp.Body, 64))
	if len(bs) == 0 {
		return errors.New("no /ping response from billing server")
	}
	return nil
}

// ListAccounts returns every account in server order.
func (c *Client) ListAccounts(ctx context.Context) (model.Accounts, error) {
	resp, err := c.do(ctx, "list-accounts", "GET", "/accounts", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Operation: "list-accounts", StatusCode: resp.StatusCode}
	}

	var accounts model.Accounts
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReadBytes)).Decode(&accounts); err != nil {
		c.trackError("list-accounts")
		return nil, fmt.Errorf("list-accounts: decoding response: %v", err)
	}
	return accounts, nil
}

// MakePayment submits req. A declined payment (HTTP 400) is returned as a
// PaymentResponse with Success=false and a nil error.
func (c *Client) MakePayment(ctx context.Context, req model.PaymentRequest) (*model.PaymentResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return nil, fmt.Errorf("make-payment: encoding request: %v", err)
	}

	resp, err := c.do(ctx, "make-payment", "POST", "/payment", &buf)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusBadRequest:
	default:
		return nil, &StatusError{Operation: "make-payment", StatusCode: resp.StatusCode}
	}

	var out model.PaymentResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReadBytes)).Decode(&out); err != nil {
		c.trackError("make-payment")
		return nil, fmt.Errorf("make-payment: decoding response: %v", err)
	}
	if out.Success != (resp.StatusCode == http.StatusOK) {
		c.trackError("make-payment")
		return nil, fmt.Errorf("make-payment: success=%v with HTTP status %d", out.Success, resp.StatusCode)
	}
	return &out, nil
}

// do sends one request through the circuit breaker. Network failures and 5xx
// responses count against the breaker, any other response is handed back.
func (c *Client) do(ctx context.Context, operation, method, relPath string, body io.Reader) (*http.Response, error) {
	address := c.buildAddress(relPath)
	if address == "" {
		return nil, fmt.Errorf("%s: invalid endpoint %q", operation, c.endpoint)
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequest(method, address, body)
		if err != nil {
			return nil, err
		}
		req = req.WithContext(ctx)
		c.addRequestHeaders(req)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, &StatusError{Operation: operation, StatusCode: resp.StatusCode}
		}
		return resp, nil
	})
	if err != nil {
		c.trackError(operation)
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("%s: billing server unavailable: %v", operation, err)
		}
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return nil, statusErr
		}
		return nil, fmt.Errorf("%s: %v", operation, err)
	}
	return out.(*http.Response), nil
}

func (c *Client) addRequestHeaders(r *http.Request) {
	r.Header.Set("User-Agent", fmt.Sprintf("billing/%s", version.Version))
	r.Header.Set("X-Request-Id", base.ID())
}

// buildAddress takes c.endpoint's path and joins it with path to use
// as the full URL for an http.Client request.
func (c *Client) buildAddress(p string) string {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return ""
	}
	if u.Scheme == "" {
		c.logger.Log("client", fmt.Sprintf("invalid endpoint=%s", u.String()))
		return ""
	}
	u.Path = path.Join(u.Path, p)
	return u.String()
}
