// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

// Wire messages written into Data Backend error bodies.
const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is expired
	// or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoIdentityProvided is returned when a route needs a caller identity
	// and neither a bearer token nor a guest session header is present.
	MsgNoIdentityProvided = "no identity provided"

	// MsgAccessDenied is returned when the caller touches a row owned by
	// someone else.
	MsgAccessDenied = "access denied"

	MsgNotFound = "not found"

	// MsgVersionConflict is returned when a compare-and-swap write carries a
	// stale expected version. The client reloads and retries.
	MsgVersionConflict = "version conflict, reload and retry"

	// MsgAlreadyExists is returned for duplicate follow edges and likes.
	MsgAlreadyExists = "already exists"

	MsgInsufficientCredits = "insufficient credits"

	// MsgMissingQueryParam is returned when a listing or RPC route is called
	// without its required filter.
	MsgMissingQueryParam = "missing required query parameter"
)
