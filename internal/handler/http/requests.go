// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-repair-desk/internal/utils"
	"github.com/MKhiriev/go-repair-desk/models"
)

// listRequests godoc
// @Summary List repair requests
// @Description Clients only see their own requests. search matches a request id.
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, from 1"
// @Param limit query int false "Page size, at most 100"
// @Param status query string false "Status filter"
// @Param search query string false "Request id"
// @Success 200 {object} models.RequestPage
// @Failure 401 {object} models.ErrorResponse
// @Router /requests/ [get]
func (h *Handler) listRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	page, err := h.services.RequestService.ListRequests(r.Context(), caller, models.RequestQuery{
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
		Status: query.Get("status"),
		Search: query.Get("search"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	page.Data = nonNil(page.Data)
	_, _ = utils.WriteJSON(w, page, http.StatusOK)
}

// getRequest godoc
// @Summary Get a repair request
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request id"
// @Success 200 {object} models.RepairRequest
// @Failure 403 {object} models.ForbiddenResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /requests/{id} [get]
func (h *Handler) getRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	requestID, ok := pathID(r, "id")
	if !ok {
		notFound(w, r)
		return
	}

	request, err := h.services.RequestService.GetRequest(r.Context(), caller, requestID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, request, http.StatusOK)
}

// createRequest godoc
// @Summary Register a repair request
// @Description The start date is today and the status is New.
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateRequestInput true "Equipment and problem"
// @Success 201 {object} models.RequestChangedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ForbiddenResponse
// @Router /requests/ [post]
func (h *Handler) createRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var input models.CreateRequestInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	request, err := h.services.RequestService.CreateRequest(r.Context(), caller, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.RequestChangedResponse{
		Message:   "Request created successfully",
		RequestID: request.RequestID,
		Status:    request.Status,
	}, http.StatusCreated)
}

// updateRequest godoc
// @Summary Update a repair request
// @Description Partial update. null clears master_id, repair_parts or completion_date.
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request id"
// @Param request body models.UpdateRequestInput true "Fields to change"
// @Success 200 {object} models.RequestChangedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ForbiddenResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /requests/{id} [put]
func (h *Handler) updateRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	requestID, ok := pathID(r, "id")
	if !ok {
		notFound(w, r)
		return
	}

	var input models.UpdateRequestInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	request, err := h.services.RequestService.UpdateRequest(r.Context(), caller, requestID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.RequestChangedResponse{
		Message:   "Request updated successfully",
		RequestID: request.RequestID,
		Status:    request.Status,
	}, http.StatusOK)
}

// deleteRequest godoc
// @Summary Delete a repair request
// @Description Removes the request and its comments. Managers only.
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request id"
// @Success 200 {object} models.RequestDeletedResponse
// @Failure 403 {object} models.ForbiddenResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /requests/{id} [delete]
func (h *Handler) deleteRequest(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	requestID, ok := pathID(r, "id")
	if !ok {
		notFound(w, r)
		return
	}

	if err := h.services.RequestService.DeleteRequest(r.Context(), caller, requestID); err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.RequestDeletedResponse{
		Message:   "Request deleted successfully",
		RequestID: requestID,
	}, http.StatusOK)
}
