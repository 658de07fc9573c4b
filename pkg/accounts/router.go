// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package accounts

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/moov-io/billing/x/route"

	"github.com/go-kit/kit/log"
	"github.com/gorilla/mux"
)

type Router struct {
	Logger log.Logger
	Repo   Repository

	GetAccounts http.HandlerFunc
	GetAccount  http.HandlerFunc
}

// NewRouter serves accounts from repo. Listing waits listDelay before reading
// the store, an unset delay answers immediately.
func NewRouter(logger log.Logger, repo Repository, listDelay time.Duration) *Router {
	return &Router{
		Logger:      logger,
		Repo:        repo,
		GetAccounts: GetAccounts(logger, repo, listDelay),
		GetAccount:  GetAccount(logger, repo),
	}
}

func (c *Router) RegisterRoutes(r *mux.Router) {
	r.Methods("GET").Path("/accounts").HandlerFunc(c.GetAccounts)
	r.Methods("GET").Path("/accounts/{accountID}").HandlerFunc(c.GetAccount)
}

type errorResponse struct {
	Error string `json:"error"`
}

func GetAccounts(logger log.Logger, repo Repository, listDelay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder.Err() != nil {
			return
		}

		if listDelay > 0 {
			select {
			case <-time.After(listDelay):
			case <-r.Context().Done():
				responder.Log("accounts", "client went away while listing")
				return
			}
		}

		accounts, err := repo.List()
		if err != nil {
			responder.Log("accounts", fmt.Sprintf("problem listing accounts: %v", err))
			responder.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to fetch accounts"})
			return
		}
		responder.JSON(http.StatusOK, accounts)
	}
}

func GetAccount(logger log.Logger, repo Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder := route.NewResponder(logger, w, r)
		if responder.Err() != nil {
			return
		}

		accountID := route.PathVar(r, "accountID")
		acct, err := repo.FindByID(accountID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				responder.JSON(http.StatusNotFound, errorResponse{Error: "Account not found"})
				return
			}
			responder.Log("accounts", fmt.Sprintf("problem reading account %s: %v", accountID, err))
			responder.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to fetch account"})
			return
		}
		responder.JSON(http.StatusOK, acct)
	}
}
