// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/models"
)

type feedbackService struct {
	formURL   string
	generator QRCodeGenerator
	logger    *logger.Logger
}

// NewFeedbackService constructs a [FeedbackService] advertising the
// configured feedback form.
func NewFeedbackService(generator QRCodeGenerator, cfg config.App, logger *logger.Logger) FeedbackService {
	return &feedbackService{
		formURL:   cfg.FeedbackFormURL,
		generator: generator,
		logger:    logger,
	}
}

func (s *feedbackService) Feedback(ctx context.Context) (models.FeedbackResponse, error) {
	if s.formURL == "" {
		return models.FeedbackResponse{}, ErrFeedbackNotConfigured
	}

	response := models.FeedbackResponse{FormURL: s.formURL}
	if s.generator != nil {
		response.QRCodeURL = s.generator.ImageURL(s.formURL)
	}
	return response, nil
}

// QRCode fetches the QR image of the feedback form from the generator.
func (s *feedbackService) QRCode(ctx context.Context) ([]byte, string, error) {
	if s.formURL == "" || s.generator == nil {
		return nil, "", ErrFeedbackNotConfigured
	}

	image, contentType, err := s.generator.Generate(ctx, s.formURL)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "feedbackService.QRCode").Msg("QR code generation failed")
		return nil, "", fmt.Errorf("generate QR code: %w", err)
	}
	return image, contentType, nil
}
