// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the repair desk.
//
// It exposes route wiring, request handlers, and middleware. Authentication,
// role gating, request tracing, access logging, metrics and login throttling
// are handled here before requests are delegated to the service layer.
package http
