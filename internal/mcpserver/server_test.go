package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tmforge/interact/internal/interactionservice"
	"github.com/tmforge/interact/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	dbFile, err := os.CreateTemp("", "interact-mcp-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	svc := interactionservice.NewService(db, "http://localhost:8080")
	return New(svc)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper; call the handler
	// functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_interactions":
		result, err = srv.listInteractions(ctx, req)
	case "get_interaction":
		result, err = srv.getInteraction(ctx, req)
	case "create_interaction":
		result, err = srv.createInteraction(ctx, req)
	case "add_note":
		result, err = srv.addNote(ctx, req)
	case "interaction_stats":
		result, err = srv.interactionStats(ctx, req)
	case "get_record_contract":
		result, err = srv.getRecordContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

const draftJSON = `{
	"interactionDate": {"startDateTime": "2024-01-01T10:00:00Z"},
	"description": "billing complaint",
	"reason": "customer called",
	"direction": "inbound",
	"relatedChannel": [{"channel": {"name": "phone"}}]
}`

func TestCreateAndGetInteraction(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_interaction", map[string]interface{}{"record": draftJSON})
	text := resultText(r)
	if !strings.HasPrefix(text, "created: ") {
		t.Fatalf("create result = %q", text)
	}
	id := strings.TrimPrefix(text, "created: ")

	r = callTool(t, srv, "get_interaction", map[string]interface{}{"id": id})
	if r.IsError {
		t.Fatalf("get errored: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), "billing complaint") {
		t.Errorf("get result = %q", resultText(r))
	}
}

func TestCreateInvalidRecord(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_interaction", map[string]interface{}{
		"record": `{"description": "no direction"}`,
	})
	if !r.IsError {
		t.Error("expected error for invalid record")
	}
}

func TestGetInteractionMissing(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_interaction", map[string]interface{}{"id": "ghost"})
	if !r.IsError {
		t.Error("expected error for missing record")
	}
}

func TestListInteractions(t *testing.T) {
	srv := testServer(t)
	_ = callTool(t, srv, "create_interaction", map[string]interface{}{"record": draftJSON})

	r := callTool(t, srv, "list_interactions", map[string]interface{}{"status": "opened"})
	var resp struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &resp); err != nil {
		t.Fatalf("list output not JSON: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Errorf("list returned %d records, want 1", len(resp.Data))
	}
}

func TestAddNoteTool(t *testing.T) {
	srv := testServer(t)
	created := resultText(callTool(t, srv, "create_interaction", map[string]interface{}{"record": draftJSON}))
	id := strings.TrimPrefix(created, "created: ")

	r := callTool(t, srv, "add_note", map[string]interface{}{
		"id": id, "text": "called back", "author": "agent-7",
	})
	if r.IsError {
		t.Fatalf("add_note errored: %s", resultText(r))
	}
	if !strings.HasPrefix(resultText(r), "note added: ") {
		t.Errorf("add_note result = %q", resultText(r))
	}
}

func TestInteractionStats(t *testing.T) {
	srv := testServer(t)
	_ = callTool(t, srv, "create_interaction", map[string]interface{}{"record": draftJSON})

	r := callTool(t, srv, "interaction_stats", map[string]interface{}{})
	var resp struct {
		Summary struct {
			Total int `json:"total"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &resp); err != nil {
		t.Fatalf("stats output not JSON: %v", err)
	}
	if resp.Summary.Total != 1 {
		t.Errorf("stats total = %d, want 1", resp.Summary.Total)
	}
}

func TestGetRecordContract(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_record_contract", map[string]interface{}{})
	if !strings.Contains(resultText(r), "interactionDate") {
		t.Error("contract text missing record shape")
	}
}
