// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package payments

import (
	"testing"

	"github.com/moov-io/billing/pkg/config"

	"github.com/stretchr/testify/require"
)

func TestTransactionIDs__Random(t *testing.T) {
	ids, err := NewTransactionIDs(config.RandomTransactionIDs)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.Regexp(t, transactionIDRegex, ids.Next())
	}
}

func TestTransactionIDs__Sequential(t *testing.T) {
	ids, err := NewTransactionIDs("Sequential")
	require.NoError(t, err)

	require.Equal(t, "T-0001", ids.Next())
	require.Equal(t, "T-0002", ids.Next())

	seq := ids.(*sequentialIDs)
	seq.last = 9998
	require.Equal(t, "T-9999", ids.Next())
	require.Equal(t, "T-0001", ids.Next())
}

func TestTransactionIDs__Unknown(t *testing.T) {
	ids, err := NewTransactionIDs("uuid")
	require.Error(t, err)
	require.Nil(t, ids)
}
