// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/milleriumage/oi-friendly-voice/models"
)

func (h *Handler) listLikes(w http.ResponseWriter, r *http.Request) {
	likes, err := h.services.Likes.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "listLikes")
		return
	}
	if likes == nil {
		likes = []models.LikeRecord{}
	}

	writeJSON(w, r, likes, http.StatusOK)
}

func (h *Handler) like(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeServiceError(w, r, err, "like")
		return
	}

	record, err := h.services.Likes.Like(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, "like")
		return
	}

	writeJSON(w, r, record, http.StatusCreated)
}

func (h *Handler) unlike(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		writeServiceError(w, r, err, "unlike")
		return
	}

	if err = h.services.Likes.Unlike(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err, "unlike")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
