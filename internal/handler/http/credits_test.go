// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milleriumage/oi-friendly-voice/internal/app"
	"github.com/milleriumage/oi-friendly-voice/internal/service"
	"github.com/milleriumage/oi-friendly-voice/internal/store"
	"github.com/milleriumage/oi-friendly-voice/models"
)

func TestGetCredits(t *testing.T) {
	profiles := &mockProfileService{balance: models.Balance{Credits: 40, Version: 3}}
	h := newTestHandler(t, &service.Services{Profiles: profiles})

	rec := serve(t, h, http.MethodGet, "/api/v1/profiles/acc-1/credits", "", "bearer")

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Balance
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.Balance{Credits: 40, Version: 3}, got)
	assert.Equal(t, models.Authenticated(testAccount), profiles.gotCaller)
	assert.Equal(t, "acc-1", profiles.gotUserID)
}

func TestGetCredits_NeedsIdentity(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := serve(t, h, http.MethodGet, "/api/v1/profiles/acc-1/credits", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, app.MsgNoIdentityProvided, decodeErrorBody(t, rec))
}

func TestSwapCredits(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "swap succeeds",
			body:       `{"credits":35,"expected_version":3}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "stale version",
			body:       `{"credits":35,"expected_version":2}`,
			serviceErr: store.ErrVersionConflict,
			wantStatus: http.StatusConflict,
			wantMsg:    app.MsgVersionConflict,
		},
		{
			name:       "someone else's balance",
			body:       `{"credits":35,"expected_version":3}`,
			serviceErr: service.ErrAccessToDifferentUserData,
			wantStatus: http.StatusForbidden,
			wantMsg:    app.MsgAccessDenied,
		},
		{
			name:       "broken body",
			body:       `{"credits":`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    app.MsgInvalidDataProvided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := &mockProfileService{balance: models.Balance{Credits: 35, Version: 4}, err: tt.serviceErr}
			h := newTestHandler(t, &service.Services{Profiles: profiles})

			rec := serve(t, h, http.MethodPut, "/api/v1/profiles/acc-1/credits", tt.body, "bearer")

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeErrorBody(t, rec))
				return
			}

			var got models.Balance
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, int64(4), got.Version)
			assert.Equal(t, models.CreditsUpdate{Credits: 35, ExpectedVersion: 3}, profiles.gotUpdate)
		})
	}
}
