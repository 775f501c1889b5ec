package interactionservice_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tmforge/interact/internal/apperr"
	"github.com/tmforge/interact/internal/models"
	"github.com/tmforge/interact/internal/testutil"
)

func TestCreate_GeneratesIdentity(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	draft := testutil.Draft("billing complaint")
	draft.InteractionItem = []models.InteractionItem{
		{Reason: "invoice dispute", ItemDate: models.TimePeriod{StartDateTime: time.Date(2024, 1, 1, 10, 5, 0, 0, time.UTC)}},
	}
	draft.Note = []models.Note{{Text: "callback requested", Author: "agent-3"}}

	rec, err := svc.Create(ctx, draft)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("id not generated")
	}
	if !strings.Contains(rec.Href, rec.ID) {
		t.Errorf("href = %q does not contain id", rec.Href)
	}
	if rec.Status != models.StatusOpened || rec.Priority != models.PriorityMedium {
		t.Errorf("defaults = %s/%s, want opened/medium", rec.Status, rec.Priority)
	}
	if rec.InteractionItem[0].ID == "" {
		t.Error("item id not generated")
	}
	if rec.InteractionItem[0].Status != models.ItemStatusPending {
		t.Errorf("item status = %q, want pending", rec.InteractionItem[0].Status)
	}
	if rec.Note[0].ID == "" || rec.Note[0].Date.IsZero() {
		t.Errorf("note identity not generated: %+v", rec.Note[0])
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	// The stored copy matches what was returned.
	got, err := svc.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != rec.ID || got.Description != "billing complaint" {
		t.Errorf("stored record = %+v", got)
	}
}

func TestCreate_CallerIDsKept(t *testing.T) {
	svc := testutil.TestService(t)

	draft := testutil.Draft("x")
	draft.InteractionItem = []models.InteractionItem{
		{ID: "item-keep", Reason: "r", ItemDate: models.TimePeriod{StartDateTime: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}},
	}
	rec, err := svc.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.InteractionItem[0].ID != "item-keep" {
		t.Errorf("caller-supplied item id replaced: %q", rec.InteractionItem[0].ID)
	}
}

func TestCreate_Invalid(t *testing.T) {
	svc := testutil.TestService(t)

	draft := testutil.Draft("x")
	draft.Direction = ""
	if _, err := svc.Create(context.Background(), draft); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("Create without direction = %v, want ErrValidation", err)
	}

	draft = testutil.Draft("x")
	draft.Status = "open"
	if _, err := svc.Create(context.Background(), draft); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("Create with bad status = %v, want ErrValidation", err)
	}
}

func TestCreate_Duration(t *testing.T) {
	svc := testutil.TestService(t)

	draft := testutil.Draft("x")
	end := draft.InteractionDate.StartDateTime.Add(45 * time.Minute)
	draft.InteractionDate.EndDateTime = &end

	rec, err := svc.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Duration == nil || *rec.Duration != 45 {
		t.Errorf("duration = %v, want 45", rec.Duration)
	}

	rec2, err := svc.Create(context.Background(), testutil.Draft("open ended"))
	if err != nil {
		t.Fatal(err)
	}
	if rec2.Duration != nil {
		t.Errorf("duration without end = %v, want nil", *rec2.Duration)
	}
}

func TestUpdate_ShallowMerge(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	draft := testutil.Draft("original")
	draft.Tags = []string{"one", "two"}
	rec, err := svc.Create(ctx, draft)
	if err != nil {
		t.Fatal(err)
	}

	patch := map[string]json.RawMessage{
		"status": json.RawMessage(`"completed"`),
		"tags":   json.RawMessage(`["three"]`),
	}
	got, err := svc.Update(ctx, rec.ID, patch)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("status = %q", got.Status)
	}
	// Arrays are replaced wholesale, not merged element-wise.
	if len(got.Tags) != 1 || got.Tags[0] != "three" {
		t.Errorf("tags = %v, want [three]", got.Tags)
	}
	// Untouched fields survive.
	if got.Description != "original" {
		t.Errorf("description = %q", got.Description)
	}
}

func TestUpdate_ServerOwnedFieldsImmutable(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, testutil.Draft("x"))
	if err != nil {
		t.Fatal(err)
	}

	patch := map[string]json.RawMessage{
		"id":   json.RawMessage(`"hijacked"`),
		"href": json.RawMessage(`"http://evil"`),
	}
	got, err := svc.Update(ctx, rec.ID, patch)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.ID != rec.ID || got.Href != rec.Href {
		t.Errorf("server-owned fields changed: %q %q", got.ID, got.Href)
	}
}

func TestUpdate_Invalid(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, testutil.Draft("x"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Update(ctx, rec.ID, map[string]json.RawMessage{
		"status": json.RawMessage(`"archived"`),
	}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad enum patch = %v, want ErrValidation", err)
	}

	if _, err := svc.Update(ctx, rec.ID, map[string]json.RawMessage{
		"description": json.RawMessage(`42`),
	}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("type-mismatched patch = %v, want ErrValidation", err)
	}

	if _, err := svc.Update(ctx, "ghost", nil); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("patch of missing record = %v, want ErrNotFound", err)
	}
}

func TestAddNote(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, testutil.Draft("x"))
	if err != nil {
		t.Fatal(err)
	}

	note, err := svc.AddNote(ctx, rec.ID, "called back", "agent-7")
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if note.ID == "" || note.Date.IsZero() {
		t.Errorf("note identity not generated: %+v", note)
	}

	got, _ := svc.Get(ctx, rec.ID)
	if len(got.Note) != 1 || got.Note[0].Text != "called back" {
		t.Errorf("stored notes = %+v", got.Note)
	}

	// Append preserves order.
	if _, err := svc.AddNote(ctx, rec.ID, "resolved", "agent-7"); err != nil {
		t.Fatal(err)
	}
	got, _ = svc.Get(ctx, rec.ID)
	if len(got.Note) != 2 || got.Note[1].Text != "resolved" {
		t.Errorf("note order = %+v", got.Note)
	}
}

func TestAddNote_Validation(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, testutil.Draft("x"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddNote(ctx, rec.ID, "", "agent"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("empty text = %v, want ErrValidation", err)
	}
	if _, err := svc.AddNote(ctx, rec.ID, "text", ""); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("empty author = %v, want ErrValidation", err)
	}

	// A rejected note leaves the sequence untouched.
	got, _ := svc.Get(ctx, rec.ID)
	if len(got.Note) != 0 {
		t.Errorf("notes after rejected append = %+v", got.Note)
	}

	if _, err := svc.AddNote(ctx, "ghost", "text", "author"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("note on missing record = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	svc := testutil.TestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, testutil.Draft("x"))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, rec.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
}
