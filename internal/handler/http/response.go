// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/milleriumage/oi-friendly-voice/internal/logger"
	"github.com/milleriumage/oi-friendly-voice/internal/utils"
	"github.com/milleriumage/oi-friendly-voice/models"
)

// maxBodyBytes caps JSON request bodies. Media bytes never travel through
// this API, only their metadata.
const maxBodyBytes = 1 << 20

// writeServiceError maps err to a status and writes the {"error": ...} body.
// Server faults are logged as errors, caller faults at debug level.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	status, msg := responseFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", "*Handler."+op).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", "*Handler."+op).Int("status", status).Msg("request rejected")
	}

	utils.WriteError(w, msg, status)
}

// writeJSON writes data and logs a failed write.
func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

// requireQuery returns the trimmed value of a mandatory query parameter.
func requireQuery(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingQueryParam, name)
	}
	return v, nil
}

// callerFrom returns the identity resolved by the identity middleware.
func callerFrom(r *http.Request) (models.Identity, error) {
	id, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		return models.Identity{}, ErrNoIdentity
	}
	return id, nil
}
