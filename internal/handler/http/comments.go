// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-repair-desk/internal/utils"
	"github.com/MKhiriev/go-repair-desk/models"
)

// createComment godoc
// @Summary Comment on a repair request
// @Description The author is the caller.
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCommentInput true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ForbiddenResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/ [post]
func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var input models.CreateCommentInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	comment, err := h.services.CommentService.CreateComment(r.Context(), caller, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, comment, http.StatusCreated)
}

// listRequestComments godoc
// @Summary List comments of a repair request
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request id"
// @Success 200 {object} models.DataResponse[models.Comment]
// @Failure 403 {object} models.ForbiddenResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /requests/{id}/comments [get]
// @Router /comments/request/{id} [get]
func (h *Handler) listRequestComments(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	requestID, ok := pathID(r, "id")
	if !ok {
		notFound(w, r)
		return
	}

	comments, err := h.services.CommentService.ListComments(r.Context(), caller, requestID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.DataResponse[models.Comment]{Data: nonNil(comments)}, http.StatusOK)
}

// getComment godoc
// @Summary Get a comment
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment id"
// @Success 200 {object} models.Comment
// @Failure 403 {object} models.ForbiddenResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [get]
func (h *Handler) getComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	commentID, ok := pathID(r, "id")
	if !ok {
		notFound(w, r)
		return
	}

	comment, err := h.services.CommentService.GetComment(r.Context(), caller, commentID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, comment, http.StatusOK)
}
