// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/milleriumage/oi-friendly-voice/internal/app"
	"github.com/milleriumage/oi-friendly-voice/internal/service"
	"github.com/milleriumage/oi-friendly-voice/internal/store"
)

type errorResponse struct {
	status  int
	message string
}

// errorResponses is checked in order; the first match wins. An empty
// message means the error text itself is safe to return.
var errorResponses = []struct {
	target error
	errorResponse
}{
	// version conflicts come first: clients match on the exact message
	{store.ErrVersionConflict, errorResponse{http.StatusConflict, app.MsgVersionConflict}},
	{app.ErrVersionConflict, errorResponse{http.StatusConflict, app.MsgVersionConflict}},
	{store.ErrAlreadyExists, errorResponse{http.StatusConflict, app.MsgAlreadyExists}},

	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{ErrInvalidAuthorizationHeader, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{ErrNoIdentity, errorResponse{http.StatusUnauthorized, app.MsgNoIdentityProvided}},
	{service.ErrInvalidIdentity, errorResponse{http.StatusUnauthorized, app.MsgNoIdentityProvided}},

	{service.ErrAccessToDifferentUserData, errorResponse{http.StatusForbidden, app.MsgAccessDenied}},
	{store.ErrAccessDenied, errorResponse{http.StatusForbidden, app.MsgAccessDenied}},

	{store.ErrNotFound, errorResponse{http.StatusNotFound, app.MsgNotFound}},

	{ErrMissingQueryParam, errorResponse{http.StatusBadRequest, app.MsgMissingQueryParam}},
	{ErrInvalidJSON, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, ""}},

	{store.ErrTransient, errorResponse{http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable)}},
}

// responseFromError picks the status and client-facing message for err.
// Unknown errors become a bare 500 so internals do not leak.
func responseFromError(err error) (int, string) {
	for _, e := range errorResponses {
		if errors.Is(err, e.target) {
			if e.message == "" {
				return e.status, err.Error()
			}
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}
