package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akwaba/listing-service/internal/adapter/httpapi/middleware"
	"github.com/akwaba/listing-service/internal/platform/logger"
)

// NewRouter wires the public browse routes, the authenticated publish route,
// and the operational endpoints.
func NewRouter(h *Handler, jwtSecret string, log *logger.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logging(log))
	r.Use(middleware.Tracing("listing-service"))

	r.Get("/api/listings", h.HandleSearchListings)
	r.Get("/api/listings/{id}", h.HandleGetListing)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret, log))
		r.Post("/api/listings", h.HandlePublishListing)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
