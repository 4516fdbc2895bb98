// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"

	"github.com/milleriumage/oi-friendly-voice/internal/app"
)

// Transport sentinels returned by mapHTTPError. Policy and availability
// failures wrap the matching app error so collection engines can classify
// them without knowing about HTTP.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = fmt.Errorf("%w by backend policy", app.ErrAccessDenied)
	ErrNotFound            = fmt.Errorf("record %w", app.ErrNotFound)
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = fmt.Errorf("backend %w", app.ErrRateLimited)
	ErrInternalServerError = errors.New("internal server error")
	ErrUnavailable         = fmt.Errorf("backend unavailable, %w", app.ErrTransientNetwork)
	ErrTransport           = fmt.Errorf("request failed, %w", app.ErrTransientNetwork)
)
