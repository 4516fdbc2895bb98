// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/milleriumage/oi-friendly-voice/models"
)

func (h *Handler) listMedia(w http.ResponseWriter, r *http.Request) {
	owner, err := requireQuery(r, "owner")
	if err != nil {
		writeServiceError(w, r, err, "listMedia")
		return
	}

	rows, err := h.services.Media.List(r.Context(), owner)
	if err != nil {
		writeServiceError(w, r, err, "listMedia")
		return
	}
	if rows == nil {
		rows = []models.MediaRow{}
	}

	writeJSON(w, r, rows, http.StatusOK)
}

func (h *Handler) createMedia(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeServiceError(w, r, err, "createMedia")
		return
	}

	var row models.MediaRow
	if err = decodeJSON(w, r, &row); err != nil {
		writeServiceError(w, r, err, "createMedia")
		return
	}

	created, err := h.services.Media.Create(r.Context(), caller, row)
	if err != nil {
		writeServiceError(w, r, err, "createMedia")
		return
	}

	writeJSON(w, r, created, http.StatusCreated)
}

func (h *Handler) updateMedia(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeServiceError(w, r, err, "updateMedia")
		return
	}

	var update models.MediaUpdate
	if err = decodeJSON(w, r, &update); err != nil {
		writeServiceError(w, r, err, "updateMedia")
		return
	}

	row, err := h.services.Media.Update(r.Context(), caller, chi.URLParam(r, "id"), update)
	if err != nil {
		writeServiceError(w, r, err, "updateMedia")
		return
	}

	writeJSON(w, r, row, http.StatusOK)
}

func (h *Handler) deleteMedia(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeServiceError(w, r, err, "deleteMedia")
		return
	}

	if err = h.services.Media.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, "deleteMedia")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// setMainMedia flags one item as the owner's main media and answers with
// every row whose flag changed.
func (h *Handler) setMainMedia(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeServiceError(w, r, err, "setMainMedia")
		return
	}

	rows, err := h.services.Media.SetMain(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "setMainMedia")
		return
	}
	if rows == nil {
		rows = []models.MediaRow{}
	}

	writeJSON(w, r, rows, http.StatusOK)
}
