package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tmforge/interact/internal/interactionservice"
	"github.com/tmforge/interact/internal/models"
	"github.com/tmforge/interact/internal/query"
)

// maxBodyBytes caps request bodies, matching the upstream 30 MB JSON limit.
const maxBodyBytes = 30 << 20

// Handler holds API route handlers.
type Handler struct {
	svc *interactionservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *interactionservice.Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /api/partyInteraction. Filters, sort, and pagination
// come from the query string; the response carries the page plus metadata.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p := query.Parse(r.URL.Query())
	recs, pg, err := h.svc.List(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Data: recs, Pagination: pg})
}

// Get handles GET /api/partyInteraction/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Create handles POST /api/partyInteraction.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var draft models.Interaction
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	rec, err := h.svc.Create(r.Context(), &draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// Update handles PATCH /api/partyInteraction/{id}. Supplied top-level
// fields replace their stored counterparts; arrays are replaced wholesale.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	rec, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Delete handles DELETE /api/partyInteraction/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddNote handles POST /api/partyInteraction/{id}/notes.
func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	note, err := h.svc.AddNote(r.Context(), chi.URLParam(r, "id"), req.Text, req.Author)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// Stats handles GET /api/partyInteraction/stats/summary.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{Summary: st.Summary, ChannelBreakdown: st.ChannelBreakdown})
}
