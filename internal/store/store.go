package store

import (
	"github.com/tmforge/interact/internal/models"
	"github.com/tmforge/interact/internal/query"
)

// Store defines the interface for interaction record persistence.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with mocks.
type Store interface {
	Insert(rec *models.Interaction) error
	Get(id string) (*models.Interaction, error)
	Update(rec *models.Interaction) error
	Delete(id string) error
	List(p query.Params) ([]models.Interaction, int, error)
	Stats() (*Stats, error)
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
