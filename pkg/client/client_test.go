// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/moov-io/billing/pkg/accounts"
	"github.com/moov-io/billing/pkg/model"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	addPingRoute = func(r *mux.Router) {
		r.Methods("GET").Path("/ping").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("PONG"))
		})
	}
	addAccountsRoute = func(r *mux.Router) {
		r.Methods("GET").Path("/accounts").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(accounts.Seed())
		})
	}
)

func newClientServer(routes ...func(*mux.Router)) (*Client, *httptest.Server) {
	r := mux.NewRouter()
	for i := range routes {
		routes[i](r) // Add each route
	}
	server := httptest.NewServer(r)
	return New(log.NewNopLogger(), server.URL, server.Client()), server
}

func paymentRoute(status int, body string, calls *int) func(*mux.Router) {
	return func(r *mux.Router) {
		r.Methods("POST").Path("/payment").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*calls++
			if r.Header.Get("X-Request-Id") == "" || !strings.HasPrefix(r.Header.Get("User-Agent"), "billing/") {
				w.WriteHeader(http.StatusTeapot)
				return
			}
			var req model.PaymentRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusTeapot)
				return
			}
			w.WriteHeader(status)
			w.Write([]byte(body))
		})
	}
}

func TestClient__Ping(t *testing.T) {
	client, server := newClientServer(addPingRoute)
	defer server.Close()

	require.NoError(t, client.Ping(context.Background()))
}

func TestClient__buildAddress(t *testing.T) {
	client := New(log.NewNopLogger(), "http://localhost:3001", nil)
	require.Equal(t, "http://localhost:3001/ping", client.buildAddress("/ping"))

	client.endpoint = "http://localhost:3001/"
	require.Equal(t, "http://localhost:3001/accounts", client.buildAddress("/accounts"))

	client.endpoint = "https://api.example.com/v1/billing"
	require.Equal(t, "https://api.example.com/v1/billing/payment", client.buildAddress("/payment"))

	client.endpoint = "localhost"
	require.Equal(t, "", client.buildAddress("/ping"))
}

func TestClient__Endpoint(t *testing.T) {
	os.Unsetenv("BILLING_ENDPOINT")
	require.Equal(t, DefaultEndpoint, Endpoint())

	os.Setenv("BILLING_ENDPOINT", "http://billing:3001")
	defer os.Unsetenv("BILLING_ENDPOINT")
	require.Equal(t, "http://billing:3001", Endpoint())
}

func TestClient__ListAccounts(t *testing.T) {
	client, server := newClientServer(addAccountsRoute)
	defer server.Close()

	accts, err := client.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accts, 9)
	require.Equal(t, "A-0003", accts[2].ID)
	require.True(t, accts[2].Balance.Equal(decimal.NewFromInt(-40)))
}

func TestClient__ListAccountsError(t *testing.T) {
	client, server := newClientServer(func(r *mux.Router) {
		r.Methods("GET").Path("/accounts").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Failed to fetch accounts"}`))
		})
	})
	defer server.Close()

	accts, err := client.ListAccounts(context.Background())
	require.Error(t, err)
	require.Nil(t, accts)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestClient__MakePayment(t *testing.T) {
	var calls int
	client, server := newClientServer(paymentRoute(http.StatusOK, `{"success":true,"transactionId":"T-0042"}`, &calls))
	defer server.Close()

	resp, err := client.MakePayment(context.Background(), model.PaymentRequest{
		AccountID: "A-0001",
		Amount:    decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, "T-0042", resp.TransactionID)
	require.Equal(t, 1, calls)
}

func TestClient__MakePaymentDeclined(t *testing.T) {
	var calls int
	client, server := newClientServer(paymentRoute(http.StatusBadRequest, `{"success":false,"message":"Account not found"}`, &calls))
	defer server.Close()

	resp, err := client.MakePayment(context.Background(), model.PaymentRequest{AccountID: "NON-EXISTENT"})
	require.NoError(t, err)
	require.False(t, resp.Success)
	require.Equal(t, "Account not found", resp.Message)
}

func TestClient__MakePaymentFault(t *testing.T) {
	var calls int
	client, server := newClientServer(paymentRoute(http.StatusInternalServerError, `{"success":false,"message":"Failed to process payment"}`, &calls))
	defer server.Close()

	resp, err := client.MakePayment(context.Background(), model.PaymentRequest{AccountID: "A-0001"})
	require.Error(t, err)
	require.Nil(t, resp)

	// malformed success bodies are faults
	client, server2 := newClientServer(paymentRoute(http.StatusOK, `{"success":false}`, &calls))
	defer server2.Close()

	resp, err = client.MakePayment(context.Background(), model.PaymentRequest{AccountID: "A-0001"})
	require.Error(t, err)
	require.Nil(t, resp)
}

func TestClient__CircuitBreaker(t *testing.T) {
	var calls int
	client, server := newClientServer(paymentRoute(http.StatusServiceUnavailable, ``, &calls))
	defer server.Close()

	for i := 0; i < 5; i++ {
		_, err := client.MakePayment(context.Background(), model.PaymentRequest{AccountID: "A-0001"})
		require.Error(t, err)
	}
	require.Equal(t, 5, calls)

	// open breakers short circuit without reaching the server
	_, err := client.MakePayment(context.Background(), model.PaymentRequest{AccountID: "A-0001"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unavailable")
	require.Equal(t, 5, calls)
}

func TestClient__DeclinesDoNotTrip(t *testing.T) {
	var calls int
	client, server := newClientServer(paymentRoute(http.StatusBadRequest, `{"success":false,"message":"Invalid payment amount"}`, &calls))
	defer server.Close()

	for i := 0; i < 10; i++ {
		resp, err := client.MakePayment(context.Background(), model.PaymentRequest{AccountID: "A-0001"})
		require.NoError(t, err)
		require.False(t, resp.Success)
	}
	require.Equal(t, 10, calls)
}
