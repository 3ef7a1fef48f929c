// Package server wires the HTTP API: middleware chain, public probes, and the
// authenticated resource routes.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	alerthandler "marketing-dashboard/backend/internal/alert/handler"
	authhandler "marketing-dashboard/backend/internal/auth/handler"
	campaignhandler "marketing-dashboard/backend/internal/campaign/handler"
	healthhandler "marketing-dashboard/backend/internal/health/handler"
	integrationhandler "marketing-dashboard/backend/internal/integration/handler"
	predictionhandler "marketing-dashboard/backend/internal/prediction/handler"
	recommendationhandler "marketing-dashboard/backend/internal/recommendation/handler"
	"marketing-dashboard/backend/internal/security"
	"marketing-dashboard/backend/internal/server/middleware"
)

// Handlers collects the per-resource handlers mounted by NewRouter.
type Handlers struct {
	Auth           *authhandler.Handler
	Integration    *integrationhandler.Handler
	Campaign       *campaignhandler.Handler
	Prediction     *predictionhandler.Handler
	Recommendation *recommendationhandler.Handler
	Alert          *alerthandler.Handler
	Health         *healthhandler.Handler
}

// NewRouter assembles the full route tree. Identity resolution runs on every
// request; enforcement happens per group so auth introspection and probes stay
// reachable without a session.
func NewRouter(h Handlers, verifier *security.SessionVerifier, cookieName string, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics)
	r.Use(middleware.Identity(verifier, cookieName))

	r.Get("/healthz", h.Health.Live)
	r.Get("/readyz", h.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/me", h.Auth.Me)
			r.Post("/logout", h.Auth.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireIdentity)

			r.Route("/integrations", func(r chi.Router) {
				r.Get("/", h.Integration.List)
				r.Post("/", h.Integration.Create)
				r.Get("/{integrationID}", h.Integration.GetByID)
			})

			r.Route("/campaigns", func(r chi.Router) {
				r.Get("/", h.Campaign.List)
				r.Post("/", h.Campaign.Create)
				r.Route("/{campaignID}", func(r chi.Router) {
					r.Get("/", h.Campaign.GetByID)
					r.Patch("/", h.Campaign.Update)
					r.Get("/metrics", h.Campaign.ListMetrics)
					r.Post("/metrics", h.Campaign.RecordMetric)
					r.Get("/metrics/latest", h.Campaign.LatestMetrics)
					r.Get("/predictions", h.Prediction.List)
					r.Get("/predictions/latest", h.Prediction.Latest)
					r.Get("/recommendations", h.Recommendation.List)
					r.Get("/recommendations/pending", h.Recommendation.ListPending)
				})
			})

			r.Route("/predictions", func(r chi.Router) {
				r.Post("/performance", h.Prediction.GeneratePerformance)
				r.Post("/optimal-timing", h.Prediction.GenerateOptimalTiming)
			})

			r.Route("/recommendations", func(r chi.Router) {
				r.Post("/headline", h.Recommendation.GenerateHeadline)
				r.Post("/audience-segmentation", h.Recommendation.GenerateSegmentation)
				r.Post("/{recommendationID}/apply", h.Recommendation.Apply)
				r.Post("/{recommendationID}/dismiss", h.Recommendation.Dismiss)
			})

			r.Route("/alerts", func(r chi.Router) {
				r.Get("/", h.Alert.List)
				r.Post("/", h.Alert.Create)
				r.Get("/unread", h.Alert.ListUnread)
				r.Post("/{alertID}/read", h.Alert.MarkAsRead)
			})
		})
	})

	return r
}
