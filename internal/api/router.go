// Package api implements the party interaction REST API using chi.
package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/tmforge/interact/internal/interactionservice"
)

// NewRouter creates a chi router with the record routes mounted. The
// caller mounts it under /api/partyInteraction.
func NewRouter(svc *interactionservice.Service) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)

	// Static route registered alongside {id}; chi matches it first.
	r.Get("/stats/summary", h.Stats)

	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/notes", h.AddNote)

	return r
}
