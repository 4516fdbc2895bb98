// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides helpers shared by the server and the client:
// typed context keys, id generation, JWT handling, JSON response writing
// and the resty-based HTTP client.
package utils

import (
	"context"

	"github.com/milleriumage/oi-friendly-voice/models"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// IdentityCtxKey stores the caller [models.Identity] resolved by the auth middleware.
var IdentityCtxKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, id)
}

// GetIdentityFromContext retrieves the caller identity.
// ok is false when the value is missing, has another type or is not valid.
func GetIdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	if !ok || !id.Valid() {
		return models.Identity{}, false
	}
	return id, true
}
