package internal

import "github.com/starford/lifeos/internal/collab"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	collab collab.Set
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithCollaborators replaces the simulated chat, speech and vault services.
// Nil fields keep their simulated stand-in.
func WithCollaborators(set collab.Set) Option {
	return func(a *application) {
		a.collab = set
	}
}
