// Package interactionservice implements the business operations over the
// record store: identifier and href generation, defaulting, validation,
// partial updates, and note annotation.
package interactionservice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tmforge/interact/internal/apperr"
	"github.com/tmforge/interact/internal/models"
	"github.com/tmforge/interact/internal/query"
	"github.com/tmforge/interact/internal/store"
)

// Service coordinates store operations for the API and MCP layers.
type Service struct {
	store   store.Store
	baseURL string
}

// NewService creates a new interaction service. baseURL is the public URL
// prefix used when deriving record hrefs.
func NewService(st store.Store, baseURL string) *Service {
	return &Service{store: st, baseURL: strings.TrimRight(baseURL, "/")}
}

// Create assigns id and href, fills defaults and sub-identifiers,
// validates, and persists the draft. The stored record is returned.
func (s *Service) Create(_ context.Context, draft *models.Interaction) (*models.Interaction, error) {
	now := time.Now().UTC()
	draft.ID = uuid.NewString()
	draft.Href = fmt.Sprintf("%s/api/partyInteraction/%s", s.baseURL, draft.ID)
	draft.CreatedAt = now
	draft.UpdatedAt = now
	normalize(draft, now)

	if err := draft.Validate(); err != nil {
		return nil, apperr.Validationf("%v", err)
	}
	if err := s.store.Insert(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Get returns the record matching id.
func (s *Service) Get(_ context.Context, id string) (*models.Interaction, error) {
	return s.store.Get(id)
}

// Update merges the supplied top-level fields into the stored record.
// Array and object fields are replaced wholesale, never merged
// element-wise. Server-owned fields (id, href, createdAt) are ignored.
func (s *Service) Update(_ context.Context, id string, patch map[string]json.RawMessage) (*models.Interaction, error) {
	existing, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	merged, err := applyPatch(existing, patch)
	if err != nil {
		return nil, apperr.Validationf("invalid field value: %v", err)
	}

	now := time.Now().UTC()
	merged.UpdatedAt = now
	normalize(merged, now)

	if err := merged.Validate(); err != nil {
		return nil, apperr.Validationf("%v", err)
	}
	if err := s.store.Update(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Delete removes the record. Deletion is irreversible.
func (s *Service) Delete(_ context.Context, id string) error {
	return s.store.Delete(id)
}

// AddNote appends a note with a generated id and current timestamp to the
// record's note sequence. Both text and author must be non-empty.
func (s *Service) AddNote(_ context.Context, id, text, author string) (*models.Note, error) {
	if text == "" || author == "" {
		return nil, apperr.Validationf("text and author are required")
	}

	rec, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	note := models.Note{
		ID:     uuid.NewString(),
		Text:   text,
		Author: author,
		Date:   time.Now().UTC(),
	}
	rec.Note = append(rec.Note, note)
	rec.UpdatedAt = note.Date

	if err := s.store.Update(rec); err != nil {
		return nil, err
	}
	return &note, nil
}

// List returns the matching page of records and pagination metadata.
func (s *Service) List(_ context.Context, p query.Params) ([]models.Interaction, query.Pagination, error) {
	recs, total, err := s.store.List(p)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	if recs == nil {
		recs = []models.Interaction{}
	}
	return recs, query.NewPagination(p, total), nil
}

// Stats returns the aggregate statistics over all records.
func (s *Service) Stats(_ context.Context) (*store.Stats, error) {
	return s.store.Stats()
}

// normalize fills enum defaults, assigns missing sub-identifiers and note
// timestamps, and recomputes the derived duration.
func normalize(rec *models.Interaction, now time.Time) {
	if rec.Status == "" {
		rec.Status = models.StatusOpened
	}
	if rec.Priority == "" {
		rec.Priority = models.PriorityMedium
	}
	for i := range rec.InteractionItem {
		if rec.InteractionItem[i].ID == "" {
			rec.InteractionItem[i].ID = uuid.NewString()
		}
		if rec.InteractionItem[i].Status == "" {
			rec.InteractionItem[i].Status = models.ItemStatusPending
		}
	}
	for i := range rec.Note {
		if rec.Note[i].ID == "" {
			rec.Note[i].ID = uuid.NewString()
		}
		if rec.Note[i].Date.IsZero() {
			rec.Note[i].Date = now
		}
	}
	rec.Duration = rec.DurationMinutes()
}

// applyPatch overlays patch onto the JSON form of existing and decodes the
// result back into a record. Top-level keys replace their targets whole.
func applyPatch(existing *models.Interaction, patch map[string]json.RawMessage) (*models.Interaction, error) {
	raw, err := json.Marshal(existing)
	if err != nil {
		return nil, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	for k, v := range patch {
		switch k {
		case "id", "href", "createdAt", "updatedAt", "duration":
			// Server-owned fields stay immutable under PATCH.
			continue
		}
		doc[k] = v
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var merged models.Interaction
	if err := json.Unmarshal(out, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}
