// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package accounts

import (
	"errors"
	"sync"

	"github.com/moov-io/billing/pkg/model"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when no Account has the requested identifier.
	ErrNotFound = errors.New("account not found")
)

// Repository is the account store consumed by payment processing. Returned
// Accounts are copies, mutations only happen through ApplyCredit.
type Repository interface {
	List() ([]model.Account, error)
	FindByID(id string) (*model.Account, error)

	// ApplyCredit adds amount to the balance of the account matching id and
	// returns the updated Account. Lookup and write happen atomically.
	ApplyCredit(id string, amount decimal.Decimal) (*model.Account, error)
}

func NewInMemoryRepository(seed []model.Account) Repository {
	repo := &inmemRepo{
		index: make(map[string]int, len(seed)),
	}
	for i := range seed {
		if _, exists := repo.index[seed[i].ID]; exists {
			continue // identifiers are unique, first one wins
		}
		repo.index[seed[i].ID] = len(repo.accounts)
		repo.accounts = append(repo.accounts, seed[i])
	}
	return repo
}

type inmemRepo struct {
	mu       sync.Mutex
	accounts []model.Account
	index    map[string]int
}

func (r *inmemRepo) List() ([]model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Account, len(r.accounts))
	copy(out, r.accounts)
	return out, nil
}

func (r *inmemRepo) FindByID(id string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, exists := r.index[id]
	if !exists {
		return nil, ErrNotFound
	}
	acct := r.accounts[idx]
	return &acct, nil
}

func (r *inmemRepo) ApplyCredit(id string, amount decimal.Decimal) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, exists := r.index[id]
	if !exists {
		return nil, ErrNotFound
	}
	r.accounts[idx].Balance = r.accounts[idx].Balance.Add(amount)

	acct := r.accounts[idx]
	return &acct, nil
}
