// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/utils"
	"github.com/MKhiriev/go-repair-desk/models"
)

// login godoc
// @Summary Sign in
// @Description Verifies the credentials and issues a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var credentials models.LoginRequest
	if err := decodeJSON(r, &credentials); err != nil {
		log.Debug().Err(err).Str("func", "*Handler.login").Msg("invalid login body")
		writeError(w, r, err)
		return
	}

	user, token, err := h.services.AuthService.Login(r.Context(), credentials.Login, credentials.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.LoginResponse{
		AccessToken: token.SignedString,
		ExpiresAt:   tokenExpiry(token),
		UserID:      user.UserID,
		Login:       user.Login,
		FullName:    user.FullName,
		Role:        user.Role,
	}, http.StatusOK)
}

// refresh godoc
// @Summary Refresh a token
// @Description Re-issues a token with the user's current claims. The token is
// @Description read from the body, or from the Authorization header when the
// @Description body carries none.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RefreshRequest false "Token to refresh"
// @Success 200 {object} models.RefreshResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh [post]
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var body models.RefreshRequest
	if err := decodeJSON(r, &body); err != nil && r.Header.Get("Authorization") == "" {
		writeError(w, r, err)
		return
	}

	tokenString := body.Token
	if tokenString == "" {
		if fromHeader, err := getTokenFromAuthHeader(r.Header.Get("Authorization")); err == nil {
			tokenString = fromHeader
		}
	}

	token, err := h.services.AuthService.RefreshToken(r.Context(), tokenString)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.RefreshResponse{
		AccessToken: token.SignedString,
		ExpiresAt:   tokenExpiry(token),
	}, http.StatusOK)
}

// logout godoc
// @Summary Sign out
// @Description Tokens are stateless; the client discards its token.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router /auth/logout [post]
func (h *Handler) logout(w http.ResponseWriter, _ *http.Request) {
	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: "Logout successful"}, http.StatusOK)
}

func tokenExpiry(token models.Token) time.Time {
	if token.Claims.ExpiresAt == nil {
		return time.Time{}
	}
	return token.Claims.ExpiresAt.Time.UTC()
}
