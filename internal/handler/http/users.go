// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-repair-desk/internal/utils"
	"github.com/MKhiriev/go-repair-desk/models"
)

// listUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse[models.User]
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ForbiddenResponse
// @Router /users/ [get]
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	users, err := h.services.UserService.ListUsers(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.DataResponse[models.User]{Data: nonNil(users)}, http.StatusOK)
}

// listSpecialists godoc
// @Summary List specialists
// @Description Accounts that can be assigned to a repair request.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DataResponse[models.User]
// @Failure 401 {object} models.ErrorResponse
// @Router /users/specialists [get]
func (h *Handler) listSpecialists(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.ListUsersByRole(r.Context(), models.RoleSpecialist)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.DataResponse[models.User]{Data: nonNil(users)}, http.StatusOK)
}

// getUser godoc
// @Summary Get a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 200 {object} models.User
// @Failure 403 {object} models.ForbiddenResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	userID, ok := pathID(r, "id")
	if !ok {
		notFound(w, r)
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), caller, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}

// createUser godoc
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateUserInput true "New account"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ForbiddenResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/ [post]
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var input models.CreateUserInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.CreateUser(r.Context(), caller, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, user, http.StatusCreated)
}

// updateUser godoc
// @Summary Update a user
// @Description Partial update. Only managers may change the role.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Param request body models.UpdateUserInput true "Fields to change"
// @Success 200 {object} models.UserUpdatedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ForbiddenResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/{id} [put]
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	userID, ok := pathID(r, "id")
	if !ok {
		notFound(w, r)
		return
	}

	var input models.UpdateUserInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateUser(r.Context(), caller, userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.UserUpdatedResponse{
		Message: "User updated successfully",
		User:    user,
	}, http.StatusOK)
}

// deleteUser godoc
// @Summary Delete a user
// @Description Managers only. Deleting one's own account is rejected.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 200 {object} models.UserDeletedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ForbiddenResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	userID, ok := pathID(r, "id")
	if !ok {
		notFound(w, r)
		return
	}

	if err := h.services.UserService.DeleteUser(r.Context(), caller, userID); err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.UserDeletedResponse{
		Message: "User deleted successfully",
		UserID:  userID,
	}, http.StatusOK)
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
