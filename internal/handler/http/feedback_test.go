// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-repair-desk/internal/adapter"
	"github.com/MKhiriev/go-repair-desk/internal/service"
	"github.com/MKhiriev/go-repair-desk/models"
)

func TestFeedback(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.feedback.EXPECT().Feedback(gomock.Any()).Return(models.FeedbackResponse{
			FormURL:   "https://forms.example/feedback",
			QRCodeURL: "https://qr.example/?data=x",
		}, nil)

		rr := serve(h, http.MethodGet, "/api/feedback/", "", "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "https://forms.example/feedback", gjson.Get(rr.Body.String(), "form_url").String())
		assert.Equal(t, "https://qr.example/?data=x", gjson.Get(rr.Body.String(), "qr_code_url").String())
	})

	t.Run("not configured", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.feedback.EXPECT().Feedback(gomock.Any()).Return(models.FeedbackResponse{}, service.ErrFeedbackNotConfigured)

		rr := serve(h, http.MethodGet, "/api/feedback/", "", "")

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestFeedbackQR(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake")

	t.Run("image is proxied", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.feedback.EXPECT().QRCode(gomock.Any()).Return(png, "image/png", nil)

		rr := serve(h, http.MethodGet, "/api/feedback/qr", "", "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
		assert.Equal(t, png, rr.Body.Bytes())
	})

	t.Run("upstream failure", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.feedback.EXPECT().QRCode(gomock.Any()).Return(nil, "", fmt.Errorf("generate QR code: %w", adapter.ErrInternalServerError))

		rr := serve(h, http.MethodGet, "/api/feedback/qr", "", "")

		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}
