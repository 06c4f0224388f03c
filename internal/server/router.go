// Package server exposes the HTTP surface: the pet listing on /, a
// readiness probe on /healthz and Prometheus metrics on /metrics.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cloudpets/petsvc/internal/database"
	"github.com/cloudpets/petsvc/internal/logger"
	"github.com/cloudpets/petsvc/internal/pets"
)

// PetLister is the slice of the pet store the handlers need.
type PetLister interface {
	List(ctx context.Context) ([]pets.Pet, error)
}

// NewRouter wires the routes and middleware stack.
func NewRouter(log *logger.Logger, store PetLister, db database.DB) http.Handler {
	h := &handler{store: store, db: db}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/", h.listPets)
	r.Get("/healthz", h.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
