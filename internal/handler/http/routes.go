// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/MKhiriev/go-repair-desk/internal/service"
)

// Init builds the router. The REST API lives under /api; /metrics and
// /swagger/ sit beside it.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	// must be registered before Route so mounted subrouters inherit them
	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	if h.trustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5, "application/json", "text/plain"))

	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DocExpansion("list"),
	))

	router.Route("/api", func(r chi.Router) {
		// routes without authorization
		r.Route("/auth", func(r chi.Router) {
			r.With(h.limitLogin).Post("/login", h.login)
			r.Post("/refresh", h.refresh)
			r.Post("/logout", h.logout)
		})
		r.Get("/health", h.health)
		r.Get("/version/", h.getServerVersion)

		r.Route("/statistics", func(r chi.Router) {
			r.Get("/completed-count", h.completedCount)
			r.Get("/average-time", h.averageTime)
			r.Get("/by-equipment-type", h.byEquipmentType)
			r.Get("/specialist-workload", h.specialistWorkload)
			r.Get("/by-status", h.byStatus)
		})

		r.Route("/feedback", func(r chi.Router) {
			r.Get("/", h.feedback)
			r.Get("/qr", h.feedbackQR)
		})

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Route("/users", func(r chi.Router) {
				r.With(h.requireRoles(service.UserAdminRoles...)).Get("/", h.listUsers)
				r.With(h.requireRoles(service.UserAdminRoles...)).Post("/", h.createUser)
				r.Get("/specialists", h.listSpecialists)
				r.Get("/{id}", h.getUser)
				r.Put("/{id}", h.updateUser)
				r.With(h.requireRoles(service.UserAdminRoles...)).Delete("/{id}", h.deleteUser)
			})

			r.Route("/requests", func(r chi.Router) {
				r.Get("/", h.listRequests)
				r.With(h.requireRoles(service.RequestCreateRoles...)).Post("/", h.createRequest)
				r.Get("/{id}", h.getRequest)
				r.With(h.requireRoles(service.RequestUpdateRoles...)).Put("/{id}", h.updateRequest)
				r.With(h.requireRoles(service.RequestDeleteRoles...)).Delete("/{id}", h.deleteRequest)
				r.Get("/{id}/comments", h.listRequestComments)
			})

			r.Route("/comments", func(r chi.Router) {
				r.With(h.requireRoles(service.CommentCreateRoles...)).Post("/", h.createComment)
				r.Get("/request/{id}", h.listRequestComments)
				r.Get("/{id}", h.getComment)
			})
		})
	})

	return router
}
