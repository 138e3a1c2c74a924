// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds clients of external HTTP services.
//
// [QRClient] renders QR codes through a qrserver.com compatible generator.
// Non-2xx responses are mapped onto the sentinel errors in errors.go so that
// callers can use [errors.Is].
package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
)

const defaultQRSize = 200

// QRClient talks to the QR code generator.
type QRClient struct {
	client  *resty.Client
	baseURL string
	size    int

	logger *logger.Logger
}

// NewQRClient builds a client for the generator at cfg.BaseURL.
func NewQRClient(cfg config.QR, logger *logger.Logger) (*QRClient, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, ErrNotConfigured
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid QR generator URL: %w", err)
	}
	if cfg.Size <= 0 {
		cfg.Size = defaultQRSize
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 5 * time.Second
	}

	cli := resty.New().SetTimeout(cfg.RequestTimeout)

	return &QRClient{
		client:  cli,
		baseURL: baseURL,
		size:    cfg.Size,
		logger:  logger,
	}, nil
}

func (c *QRClient) sizeParam() string {
	s := strconv.Itoa(c.size)
	return s + "x" + s
}

// ImageURL returns a link to the QR image encoding data, suitable for an
// <img> tag.
func (c *QRClient) ImageURL(data string) string {
	query := url.Values{}
	query.Set("size", c.sizeParam())
	query.Set("data", data)
	return c.baseURL + "?" + query.Encode()
}

// Generate fetches the QR image encoding data. It returns the image bytes
// and the content type reported by the generator.
func (c *QRClient) Generate(ctx context.Context, data string) ([]byte, string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("size", c.sizeParam()).
		SetQueryParam("data", data).
		Get(c.baseURL)
	if err != nil {
		return nil, "", fmt.Errorf("QR generator request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		logger.FromContext(ctx).Warn().
			Str("func", "QRClient.Generate").
			Int("status", resp.StatusCode()).
			Msg("QR generator returned an error")
		return nil, "", err
	}

	body := resp.Body()
	if len(body) == 0 {
		return nil, "", ErrEmptyResponse
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	return body, contentType, nil
}
