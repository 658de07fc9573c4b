// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package payments

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/moov-io/billing/pkg/config"
)

const maxTransactionNumber = 10000

// TransactionIDs hands out T-#### identifiers. They are not globally unique,
// only 10,000 values exist.
type TransactionIDs interface {
	Next() string
}

func NewTransactionIDs(scheme string) (TransactionIDs, error) {
	switch strings.ToLower(scheme) {
	case "", config.RandomTransactionIDs:
		return &randomIDs{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}, nil
	case config.SequentialTransactionIDs:
		return &sequentialIDs{}, nil
	}
	return nil, fmt.Errorf("unknown transaction id scheme %q", scheme)
}

func formatTransactionID(n int) string {
	return fmt.Sprintf("T-%04d", n)
}

type randomIDs struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func (r *randomIDs) Next() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return formatTransactionID(r.rand.Intn(maxTransactionNumber))
}

// sequentialIDs starts at T-0001 and wraps after T-9999.
type sequentialIDs struct {
	mu   sync.Mutex
	last int
}

func (s *sequentialIDs) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = (s.last % (maxTransactionNumber - 1)) + 1
	return formatTransactionID(s.last)
}
