// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/utils"
)

// limitLogin throttles sign-in attempts per client address. Limiter
// failures let the request through.
func (h *Handler) limitLogin(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		key := clientAddress(r)

		allowed, retryAfter, err := h.limiter.Allow(r.Context(), key)
		if err != nil {
			log.Err(err).Str("client", key).Msg("login rate limiter failed, letting request through")
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			log.Warn().Str("client", key).Int("retry_after", seconds).Msg("login rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			utils.WriteError(w, tooManyRequestsMessage, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientAddress strips the port from r.RemoteAddr. That is the socket peer
// unless proxy headers are trusted, in which case RealIP has replaced it.
func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
