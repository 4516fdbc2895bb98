// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised while reading the caller credentials and request
// parameters. Callers can match against them with [errors.Is].
var (
	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but does not carry a bearer token.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrNoIdentity is returned when a route that acts on behalf of a caller
	// receives neither a bearer token nor a guest session.
	ErrNoIdentity = errors.New("no identity provided")

	// ErrMissingQueryParam is returned when a required query parameter is
	// absent or empty.
	ErrMissingQueryParam = errors.New("missing required query parameter")

	// ErrInvalidJSON is returned when a request body does not decode.
	ErrInvalidJSON = errors.New("invalid JSON body")
)
