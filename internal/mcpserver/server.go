// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes interaction record tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tmforge/interact/internal/interactionservice"
	"github.com/tmforge/interact/internal/models"
	"github.com/tmforge/interact/internal/query"
)

// Server wraps the MCP server with interaction record tools.
type Server struct {
	mcp *server.MCPServer
	svc *interactionservice.Service
}

// New creates a new MCP server with all record tools registered.
func New(svc *interactionservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Interact",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_interactions",
		mcp.WithDescription("List interaction records with optional filters. Returns the first page of matches as JSON."),
		mcp.WithString("status", mcp.Description("Filter by status (opened, inProgress, completed, cancelled)")),
		mcp.WithString("direction", mcp.Description("Filter by direction (inbound, outbound)")),
		mcp.WithString("channel", mcp.Description("Filter by channel name (phone, email, chat, store, web, mobile, social)")),
		mcp.WithString("search", mcp.Description("Case-insensitive substring match on description and reason")),
		mcp.WithNumber("limit", mcp.Description("Page size (default 10)")),
	), s.listInteractions)

	s.mcp.AddTool(mcp.NewTool("get_interaction",
		mcp.WithDescription("Read one interaction record by its identifier."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record identifier")),
	), s.getInteraction)

	s.mcp.AddTool(mcp.NewTool("create_interaction",
		mcp.WithDescription("Create a new interaction record. The record argument MUST be a JSON object "+
			"following the canonical record shape. Read the contract first via the "+
			"get_record_contract tool or the interact://record-shape resource."),
		mcp.WithString("record", mcp.Required(), mcp.Description("JSON object for the record draft")),
	), s.createInteraction)

	s.mcp.AddTool(mcp.NewTool("add_note",
		mcp.WithDescription("Append a note to an interaction record. Both text and author are required."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record identifier")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Note text")),
		mcp.WithString("author", mcp.Required(), mcp.Description("Note author")),
	), s.addNote)

	s.mcp.AddTool(mcp.NewTool("interaction_stats",
		mcp.WithDescription("Aggregate statistics: record counts by status and direction, plus a per-channel breakdown."),
	), s.interactionStats)

	s.mcp.AddTool(mcp.NewTool("get_record_contract",
		mcp.WithDescription("Returns the canonical interaction record shape. "+
			"Call this before creating records to ensure correct structure."),
	), s.getRecordContract)

	// Resource: record shape contract.
	s.mcp.AddResource(
		mcp.NewResource("interact://record-shape", "Record Shape Contract",
			mcp.WithResourceDescription("Canonical JSON shape that all interaction records must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRecordShapeResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listInteractions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	vals := url.Values{}
	for _, key := range []string{"status", "direction", "channel", "search"} {
		if v, err := req.RequireString(key); err == nil && v != "" {
			vals.Set(key, v)
		}
	}
	if n, err := req.RequireInt("limit"); err == nil && n > 0 {
		vals.Set("limit", fmt.Sprintf("%d", n))
	}

	recs, pg, err := s.svc.List(ctx, query.Parse(vals))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(map[string]any{
		"data":       recs,
		"pagination": pg,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getInteraction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.svc.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(rec, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createInteraction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("record")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var draft models.Interaction
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid record JSON: %v", err)), nil
	}

	rec, err := s.svc.Create(ctx, &draft)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", rec.ID)), nil
}

func (s *Server) addNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	note, err := s.svc.AddNote(ctx, id, text, author)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("note added: %s", note.ID)), nil
}

func (s *Server) interactionStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.svc.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(map[string]any{
		"summary":          st.Summary,
		"channelBreakdown": st.ChannelBreakdown,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getRecordContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(RecordShapeContract), nil
}

func (s *Server) readRecordShapeResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "interact://record-shape",
			MIMEType: "text/markdown",
			Text:     RecordShapeContract,
		},
	}, nil
}
