// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// withMetrics records in-flight requests, request counts and latency per
// matched route.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	if h.metrics == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		done := h.metrics.HTTPStarted(r.Method)

		mw := &responseWriter{
			ResponseWriter: w,
		}
		next.ServeHTTP(mw, r)

		done(routePattern(r), mw.Status())
	})
}
