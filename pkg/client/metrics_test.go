// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package client

import (
	"testing"

	"github.com/go-kit/kit/log"
)

func TestClient__trackError(t *testing.T) {
	client := New(log.NewNopLogger(), "http://localhost:3001", nil)
	client.trackError("ping")

	client.endpoint = "::bad"
	client.trackError("ping")
}
