// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"
	"time"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/utils"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// tokenAuthProvider treats the holder of an externally issued bearer token as
// signed in. The signature is not checked here; the Data Backend verifies it
// on every request.
type tokenAuthProvider struct {
	token string
	now   func() time.Time
}

// NewTokenAuthProvider returns an [AuthProvider] backed by a raw JWT. An empty,
// malformed or expired token means nobody is signed in.
func NewTokenAuthProvider(token string) AuthProvider {
	return &tokenAuthProvider{token: strings.TrimSpace(token), now: time.Now}
}

func (p *tokenAuthProvider) CurrentPrincipal(ctx context.Context) (string, bool) {
	if p.token == "" {
		return "", false
	}

	sub, err := utils.ParseSubjectUnverified(p.token, p.now())
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*tokenAuthProvider.CurrentPrincipal").Msg("ignoring unusable token")
		return "", false
	}
	return sub, true
}

// StaticAuthProvider always reports the same principal. An empty value means
// nobody is signed in.
type StaticAuthProvider string

func (p StaticAuthProvider) CurrentPrincipal(context.Context) (string, bool) {
	return string(p), p != ""
}

type identityResolver struct {
	auth   AuthProvider
	guests GuestSessionService
}

func NewIdentityResolver(auth AuthProvider, guests GuestSessionService) IdentityResolver {
	return &identityResolver{auth: auth, guests: guests}
}

func (r *identityResolver) Resolve(ctx context.Context) models.Identity {
	if id, ok := r.auth.CurrentPrincipal(ctx); ok {
		return models.Authenticated(id)
	}
	return models.Guest(r.guests.LoadOrCreate(ctx).SessionID)
}
