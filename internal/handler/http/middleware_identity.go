// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/utils"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// guestSessionHeader carries the guest session id of anonymous callers.
const guestSessionHeader = "X-Guest-Session"

// withIdentity resolves the caller and stores it under [utils.IdentityCtxKey].
//
// A bearer token wins over a guest session header. A present but invalid
// token is rejected with 401; it never falls back to the guest session.
// Requests with neither pass through without an identity, and handlers that
// act for a caller answer 401 themselves.
func (h *Handler) withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var identity models.Identity
		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			tokenString, err := utils.ParseBearerToken(authHeader)
			if err != nil {
				writeServiceError(w, r, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err), "withIdentity")
				return
			}

			token, err := h.services.AuthService.ParseToken(ctx, tokenString)
			if err != nil {
				writeServiceError(w, r, err, "withIdentity")
				return
			}
			identity = models.Authenticated(token.UserID)
		} else if session := strings.TrimSpace(r.Header.Get(guestSessionHeader)); session != "" {
			identity = models.Guest(session)
		}

		if !identity.Valid() {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("caller", identity.Key())
		})
		ctx = utils.WithIdentity(log.WithContext(ctx), identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
