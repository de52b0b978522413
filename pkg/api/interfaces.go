// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/stylegraph/pkg/codec"
)

// ManagedLibrary is a RecordLibrary that owns its storage
type ManagedLibrary interface {
	RecordLibrary

	// Decode decodes a single stored record
	Decode(id ksuid.KSUID) (codec.Object, error)

	// Close releases the underlying storage
	Close() error
}

// LibraryFactory opens record libraries
type LibraryFactory interface {
	// OpenLibrary opens or creates the library in dataDir
	OpenLibrary(dataDir string, reg *codec.Registry, log zerolog.Logger, opts ...codec.Option) (ManagedLibrary, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves the API until ctx is cancelled
	StartServer(ctx context.Context, reg *codec.Registry, lib RecordLibrary, config ServerConfig, log zerolog.Logger) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
