// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milleriumage/oi-friendly-voice/internal/app"
	"github.com/milleriumage/oi-friendly-voice/internal/utils"
	"github.com/milleriumage/oi-friendly-voice/models"
)

func TestWithIdentity(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		guest      string
		wantStatus int
		wantMsg    string
		wantCaller *models.Identity
	}{
		{
			name:       "valid bearer token",
			authHeader: "Bearer " + testToken,
			wantStatus: http.StatusOK,
			wantCaller: &models.Identity{Kind: models.IdentityAuthenticated, ID: testAccount},
		},
		{
			name:       "bearer wins over guest session",
			authHeader: "Bearer " + testToken,
			guest:      "s-1",
			wantStatus: http.StatusOK,
			wantCaller: &models.Identity{Kind: models.IdentityAuthenticated, ID: testAccount},
		},
		{
			name:       "guest session",
			guest:      "  s-1 ",
			wantStatus: http.StatusOK,
			wantCaller: &models.Identity{Kind: models.IdentityGuest, ID: "s-1"},
		},
		{
			name:       "no identity passes through",
			wantStatus: http.StatusOK,
		},
		{
			name:       "blank guest session passes through",
			guest:      "   ",
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed authorization header",
			authHeader: "Basic dXNlcjpwYXNz",
			guest:      "s-1",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgTokenIsExpiredOrInvalid,
		},
		{
			name:       "rejected token does not fall back to guest",
			authHeader: "Bearer forged",
			guest:      "s-1",
			wantStatus: http.StatusUnauthorized,
			wantMsg:    app.MsgTokenIsExpiredOrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, nil)

			var (
				called bool
				got    models.Identity
				hasID  bool
			)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got, hasID = utils.GetIdentityFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/media", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			if tt.guest != "" {
				req.Header.Set(guestSessionHeader, tt.guest)
			}
			rec := httptest.NewRecorder()

			h.withIdentity(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.False(t, called)
				assert.Equal(t, tt.wantMsg, decodeErrorBody(t, rec))
				return
			}

			assert.True(t, called)
			if tt.wantCaller == nil {
				assert.False(t, hasID)
				return
			}
			assert.True(t, hasID)
			assert.Equal(t, *tt.wantCaller, got)
		})
	}
}
