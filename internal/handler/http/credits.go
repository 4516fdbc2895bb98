// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/milleriumage/oi-friendly-voice/models"
)

func (h *Handler) getCredits(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeServiceError(w, r, err, "getCredits")
		return
	}

	balance, err := h.services.Profiles.GetCredits(r.Context(), caller, chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(w, r, err, "getCredits")
		return
	}

	writeJSON(w, r, balance, http.StatusOK)
}

// swapCredits writes a new balance when expected_version still matches the
// stored version. A stale version answers 409 with MsgVersionConflict.
func (h *Handler) swapCredits(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeServiceError(w, r, err, "swapCredits")
		return
	}

	var update models.CreditsUpdate
	if err = decodeJSON(w, r, &update); err != nil {
		writeServiceError(w, r, err, "swapCredits")
		return
	}

	balance, err := h.services.Profiles.CompareAndSwapCredits(r.Context(), caller, chi.URLParam(r, "userID"), update)
	if err != nil {
		writeServiceError(w, r, err, "swapCredits")
		return
	}

	writeJSON(w, r, balance, http.StatusOK)
}
