// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-repair-desk/internal/utils"
)

// notFound answers unknown paths and unsupported methods alike.
//
// It is registered both as the router's NotFound and MethodNotAllowed
// handler, so a request using a method a route does not serve is
// indistinguishable from a request for a path that does not exist.
func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteError(w, notFoundMessage, http.StatusNotFound)
}
