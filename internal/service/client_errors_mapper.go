// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milleriumage/oi-friendly-voice/internal/adapter"
	"github.com/milleriumage/oi-friendly-voice/internal/app"
)

// mapAdapterError translates the adapter's transport error into the app error
// taxonomy. The original error stays in the chain.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	// already classified by the adapter
	case errors.Is(err, app.ErrAccessDenied),
		errors.Is(err, app.ErrNotFound),
		errors.Is(err, app.ErrRateLimited),
		errors.Is(err, app.ErrTransientNetwork):
		return err

	case errors.Is(err, adapter.ErrConflict):
		if strings.HasSuffix(err.Error(), app.MsgVersionConflict) {
			return fmt.Errorf("%w: %w", app.ErrVersionConflict, err)
		}
		return fmt.Errorf("%w: %w", app.ErrConflict, err)

	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", app.ErrAccessDenied, err)

	case errors.Is(err, adapter.ErrBadRequest):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return err
}
