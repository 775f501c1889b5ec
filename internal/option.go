package internal

import "github.com/tmforge/interact/internal/store"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	store  store.Store
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithStore injects a pre-opened record store, bypassing the SQLite path
// in the configuration. Used by tests.
func WithStore(st store.Store) Option {
	return func(a *application) {
		a.store = st
	}
}
