// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// PaymentRequest is a proposed credit against one Account. Card details are
// only checked for presence and format, they never leave the service.
type PaymentRequest struct {
	AccountID      string          `json:"accountId"`
	CardNumber     string          `json:"cardNumber" validate:"required,notblank"`
	CardholderName string          `json:"cardholderName" validate:"required,notblank"`
	ExpiryDate     string          `json:"expiryDate" validate:"required,notblank"`
	CVV            string          `json:"cvv" validate:"required,notblank"`
	Amount         decimal.Decimal `json:"amount"`
}

var errQuotedAmount = errors.New("amount must be a JSON number")

// UnmarshalJSON reads a PaymentRequest, refusing amounts sent as strings
// since decimal.Decimal would otherwise accept "100" and 100 alike.
func (r *PaymentRequest) UnmarshalJSON(data []byte) error {
	type alias PaymentRequest
	aux := struct {
		*alias
		Amount json.RawMessage `json:"amount"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	raw := bytes.TrimSpace(aux.Amount)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		r.Amount = decimal.Zero
		return nil
	}
	if raw[0] == '"' {
		return errQuotedAmount
	}
	return r.Amount.UnmarshalJSON(raw)
}

// PaymentResponse is the result of processing a PaymentRequest.
// TransactionID is only set on success and Message only on failure.
type PaymentResponse struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId,omitempty"`
	Message       string `json:"message,omitempty"`
}

func Succeeded(transactionID string) *PaymentResponse {
	return &PaymentResponse{
		Success:       true,
		TransactionID: transactionID,
	}
}

func Failed(message string) *PaymentResponse {
	return &PaymentResponse{
		Success: false,
		Message: message,
	}
}
