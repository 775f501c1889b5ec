// Package testutil provides shared test helpers for setting up record
// stores and services.
package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/tmforge/interact/internal/interactionservice"
	"github.com/tmforge/interact/internal/models"
	"github.com/tmforge/interact/internal/store"
)

// BaseURL is the public base URL used by test services.
const BaseURL = "http://localhost:8080"

// TestDB creates a temporary SQLite store that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "interact-test-*.db")
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
	return db
}

// TestService creates a service over a temporary store.
func TestService(t *testing.T) *interactionservice.Service {
	t.Helper()
	return interactionservice.NewService(TestDB(t), BaseURL)
}

// Draft returns a minimal valid record draft with the given description.
func Draft(description string) *models.Interaction {
	return &models.Interaction{
		InteractionDate: models.TimePeriod{
			StartDateTime: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		Description: description,
		Reason:      "customer contact",
		Direction:   models.DirectionInbound,
	}
}
