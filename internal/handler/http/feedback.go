// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/utils"
)

// feedback godoc
// @Summary Customer feedback form
// @Tags Feedback
// @Produce json
// @Success 200 {object} models.FeedbackResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /feedback/ [get]
func (h *Handler) feedback(w http.ResponseWriter, r *http.Request) {
	response, err := h.services.FeedbackService.Feedback(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, response, http.StatusOK)
}

// feedbackQR godoc
// @Summary QR code of the feedback form
// @Tags Feedback
// @Produce png
// @Success 200 {file} binary
// @Failure 502 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /feedback/qr [get]
func (h *Handler) feedbackQR(w http.ResponseWriter, r *http.Request) {
	image, contentType, err := h.services.FeedbackService.QRCode(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(image)))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(image); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to write QR code")
	}
}
