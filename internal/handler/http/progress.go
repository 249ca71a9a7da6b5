// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-progress-tracker/internal/app"
	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/internal/utils"
	"github.com/MKhiriev/go-progress-tracker/models"
)

// listProgress returns every progress record of the authenticated user,
// newest first. A user without records gets an empty JSON array.
func (h *Handler) listProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteMessage(w, app.MsgNoToken, http.StatusUnauthorized)
		return
	}

	progress, err := h.services.ProgressService.List(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("error listing progress")
		utils.WriteMessage(w, app.MsgFetchProgressFailed, http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, progress, http.StatusOK)
}

// upsertProgress creates the record for (user, platform) or overwrites its
// counts when the pair already exists.
func (h *Handler) upsertProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteMessage(w, app.MsgNoToken, http.StatusUnauthorized)
		return
	}

	var request models.UpsertProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		utils.WriteMessage(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	progress, err := h.services.ProgressService.Upsert(ctx, userID, request)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			log.Err(err).Str("user_id", userID).Msg("error upserting progress")
		} else {
			log.Debug().Err(err).Msg("progress update rejected")
		}
		utils.WriteMessage(w, messageFromError(err, app.MsgUpdateProgressFailed), status)
		return
	}

	utils.WriteJSON(w, models.ProgressResponse{
		Progress: progress,
		Message:  app.MsgProgressUpdated,
	}, http.StatusOK)
}

// deleteProgress removes the record with the id from the URL. Records of
// other users are reported as not found.
func (h *Handler) deleteProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteMessage(w, app.MsgNoToken, http.StatusUnauthorized)
		return
	}

	progressID := chi.URLParam(r, "id")

	if err := h.services.ProgressService.Delete(ctx, userID, progressID); err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			log.Err(err).Str("progress_id", progressID).Msg("error deleting progress")
		}
		utils.WriteMessage(w, messageFromError(err, app.MsgDeleteProgressFailed), status)
		return
	}

	utils.WriteMessage(w, app.MsgProgressDeleted, http.StatusOK)
}
