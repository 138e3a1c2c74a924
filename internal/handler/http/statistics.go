// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-repair-desk/internal/utils"
	"github.com/MKhiriev/go-repair-desk/models"
)

// completedCount godoc
// @Summary Number of completed requests
// @Tags Statistics
// @Produce json
// @Success 200 {object} models.CompletedCountResponse
// @Router /statistics/completed-count [get]
func (h *Handler) completedCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.services.StatisticsService.CompletedCount(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.CompletedCountResponse{CompletedRequestsCount: count}, http.StatusOK)
}

// averageTime godoc
// @Summary Average completion time in whole days
// @Tags Statistics
// @Produce json
// @Success 200 {object} models.AverageTimeResponse
// @Router /statistics/average-time [get]
func (h *Handler) averageTime(w http.ResponseWriter, r *http.Request) {
	days, err := h.services.StatisticsService.AverageCompletionDays(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.AverageTimeResponse{AvgCompletionDays: days}, http.StatusOK)
}

// byEquipmentType godoc
// @Summary Request counts per equipment type
// @Tags Statistics
// @Produce json
// @Success 200 {object} models.DataResponse[models.EquipmentTypeCount]
// @Router /statistics/by-equipment-type [get]
func (h *Handler) byEquipmentType(w http.ResponseWriter, r *http.Request) {
	counts, err := h.services.StatisticsService.ByEquipmentType(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.DataResponse[models.EquipmentTypeCount]{Data: nonNil(counts)}, http.StatusOK)
}

// specialistWorkload godoc
// @Summary Requests assigned per specialist
// @Tags Statistics
// @Produce json
// @Success 200 {object} models.DataResponse[models.SpecialistWorkload]
// @Router /statistics/specialist-workload [get]
func (h *Handler) specialistWorkload(w http.ResponseWriter, r *http.Request) {
	workload, err := h.services.StatisticsService.SpecialistWorkload(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.DataResponse[models.SpecialistWorkload]{Data: nonNil(workload)}, http.StatusOK)
}

// byStatus godoc
// @Summary Request counts per status
// @Tags Statistics
// @Produce json
// @Success 200 {object} models.DataResponse[models.StatusCount]
// @Router /statistics/by-status [get]
func (h *Handler) byStatus(w http.ResponseWriter, r *http.Request) {
	counts, err := h.services.StatisticsService.ByStatus(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.DataResponse[models.StatusCount]{Data: nonNil(counts)}, http.StatusOK)
}
