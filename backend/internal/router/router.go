package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itchan-dev/mediameta/backend/internal/setup"
	mw "github.com/itchan-dev/mediameta/shared/middleware"
	"github.com/itchan-dev/mediameta/shared/middleware/metrics"
)

// New creates the chi router with all API routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()
	h := deps.Handler

	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Accept-Language"},
		MaxAge:         300,
	}))
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureHeaders, mw.APIContentSecurityPolicy))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	writeLimit := mw.RateLimit(deps.WriteLimiter, mw.GetIP)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/public_config", h.GetPublicConfig)

		r.Route("/attachments", func(r chi.Router) {
			r.Post("/describe", h.Describe)
			r.Post("/aspect_ratios", h.AspectRatios)
			r.Get("/{attachment}", h.GetAttachment)

			r.Group(func(r chi.Router) {
				r.Use(writeLimit)
				r.Post("/", h.CreateAttachment)
				r.Post("/probe", h.ProbeAttachment)
				r.Delete("/{attachment}", h.DeleteAttachment)
			})
		})

		r.Get("/messages/{message}/layout", h.GetMessageLayout)
	})

	return r
}
