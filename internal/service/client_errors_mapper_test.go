// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milleriumage/oi-friendly-voice/internal/adapter"
	"github.com/milleriumage/oi-friendly-voice/internal/app"
)

func TestMapAdapterError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    error
		notWant error
	}{
		{name: "version conflict", err: fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgVersionConflict), want: app.ErrVersionConflict},
		{name: "duplicate row", err: fmt.Errorf("%w: duplicate key", adapter.ErrConflict), want: app.ErrConflict, notWant: app.ErrVersionConflict},
		{name: "unauthorized", err: adapter.ErrUnauthorized, want: app.ErrAccessDenied},
		{name: "forbidden", err: adapter.ErrForbidden, want: app.ErrAccessDenied},
		{name: "bad request", err: fmt.Errorf("%w: bad json", adapter.ErrBadRequest), want: ErrInvalidDataProvided},
		{name: "not found", err: adapter.ErrNotFound, want: app.ErrNotFound},
		{name: "rate limited", err: adapter.ErrTooManyRequests, want: app.ErrRateLimited},
		{name: "unavailable", err: adapter.ErrUnavailable, want: app.ErrTransientNetwork},
		{name: "transport", err: fmt.Errorf("dial: %w", adapter.ErrTransport), want: app.ErrTransientNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapAdapterError(tt.err)
			require.ErrorIs(t, got, tt.want)
			// the adapter error stays in the chain
			require.ErrorIs(t, got, tt.err)
			if tt.notWant != nil {
				assert.NotErrorIs(t, got, tt.notWant)
			}
		})
	}
}

func TestMapAdapterError_Passthrough(t *testing.T) {
	assert.NoError(t, mapAdapterError(nil))

	other := errors.New("boom")
	assert.Same(t, other, mapAdapterError(other))
}
