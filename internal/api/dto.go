package api

import (
	"github.com/tmforge/interact/internal/models"
	"github.com/tmforge/interact/internal/query"
	"github.com/tmforge/interact/internal/store"
)

// ListResponse wraps a page of interaction records with its pagination
// metadata.
type ListResponse struct {
	Data       []models.Interaction `json:"data"`
	Pagination query.Pagination     `json:"pagination"`
}

// NoteRequest is the request body for appending a note to a record.
type NoteRequest struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// StatsResponse wraps the aggregate statistics.
type StatsResponse struct {
	Summary          store.Summary        `json:"summary"`
	ChannelBreakdown []store.ChannelCount `json:"channelBreakdown"`
}
