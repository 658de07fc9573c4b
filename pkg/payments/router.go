// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package payments

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/moov-io/billing/pkg/model"
	"github.com/moov-io/billing/x/route"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

const (
	// maxReadBytes is the number of bytes to read
	// from a request body. It's intended to be used
	// with an io.LimitReader
	maxReadBytes = 1 * 1024 * 1024

	messageFault = "Failed to process payment"
)

type Router struct {
	Logger    log.Logger
	Processor Processor

	CreatePayment http.HandlerFunc
}

func NewRouter(logger log.Logger, processor Processor) *Router {
	return &Router{
		Logger:        logger,
		Processor:     processor,
		CreatePayment: CreatePayment(logger, processor),
	}
}

func (c *Router) RegisterRoutes(r *mux.Router) {
	r.Methods("POST").Path("/payment").HandlerFunc(c.CreatePayment)
}

func CreatePayment(logger log.Logger, processor Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder.Err() != nil {
			return
		}

		var req model.PaymentRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxReadBytes)).Decode(&req); err != nil {
			responder.Log("payments", fmt.Sprintf("problem reading payment request: %v", err))
			responder.JSON(http.StatusBadRequest, model.Failed(MessageInvalidDetails))
			return
		}

		resp, err := processor.Process(r.Context(), req)
		if err != nil {
			responder.Log("payments", fmt.Sprintf("problem processing payment: %v", err), "accountID", req.AccountID)
			responder.JSON(http.StatusInternalServerError, model.Failed(messageFault))
			return
		}
		if !resp.Success {
			responder.JSON(http.StatusBadRequest, resp)
			return
		}
		responder.JSON(http.StatusOK, resp)
	}
}
