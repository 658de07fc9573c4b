// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package util

import (
	"context"
	"errors"
	"time"
)

var (
	ErrTimeout = errors.New("timeout exceeded")
)

// Timeout calls f with a context bounded by t. If f is still running once t has
// elapsed ErrTimeout is returned and the result of f is dropped.
func Timeout(ctx context.Context, t time.Duration, f func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, t)
	defer cancel()

	answer := make(chan error, 1)
	go func() {
		answer <- f(ctx)
	}()
	select {
	case err := <-answer:
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ctx.Err()
	}
}
