// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/utils"
	"github.com/MKhiriev/go-repair-desk/models"
)

// getServerVersion godoc
// @Summary Server version
// @Tags System
// @Produce plain
// @Success 200 {string} string
// @Router /version/ [get]
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte(serverVersion)); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to write version")
	}
}

// health godoc
// @Summary Readiness check
// @Description Reports whether the database is reachable.
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Failure 503 {object} models.HealthResponse
// @Router /health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	response := models.HealthResponse{
		Status:  "ok",
		Version: h.services.AppInfoService.GetAppVersion(ctx),
	}

	if err := h.services.AppInfoService.Ping(ctx); err != nil {
		logger.FromRequest(r).Err(err).Msg("health check failed")
		response.Status = "unavailable"
		_, _ = utils.WriteJSON(w, response, http.StatusServiceUnavailable)
		return
	}

	_, _ = utils.WriteJSON(w, response, http.StatusOK)
}
