package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cloudpets/petsvc/internal/database"
	"github.com/cloudpets/petsvc/internal/errs"
	"github.com/cloudpets/petsvc/internal/logger"
)

// healthTimeout bounds the readiness probe's database round-trips.
const healthTimeout = 5 * time.Second

type handler struct {
	store PetLister
	db    database.DB
}

// listPets serves GET /: every row of the pets table as a JSON array,
// in database order. [] for an empty table, 500 on any failure.
func (h *handler) listPets(w http.ResponseWriter, r *http.Request) {
	result, err := h.store.List(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Err("listing pets failed", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// healthz reports readiness: the pool must answer a ping and the pets
// table must exist.
func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	log := logger.FromContext(r.Context())
	if err := h.db.Ping(ctx); err != nil {
		log.Err("health ping failed", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	ok, err := h.db.TableExists(ctx, "pets")
	if err != nil || !ok {
		if err != nil {
			log.Err("health table check failed", err)
		}
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an errs kind onto a response. Every failure is a
// server-side problem here — the endpoint takes no input — so the
// status is always 500 and the body names the kind for operators.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": errs.KindOf(err).String(),
	})
}
