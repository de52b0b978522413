// Package api provides factory implementations for dependency injection
package api

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/library"
)

// DefaultLibraryFactory is the default implementation of LibraryFactory
type DefaultLibraryFactory struct{}

// NewLibraryFactory creates a new library factory
func NewLibraryFactory() LibraryFactory {
	return &DefaultLibraryFactory{}
}

// OpenLibrary opens a pebble-backed record library
func (f *DefaultLibraryFactory) OpenLibrary(
	dataDir string,
	reg *codec.Registry,
	log zerolog.Logger,
	opts ...codec.Option,
) (ManagedLibrary, error) {
	lib, err := library.Open(dataDir, reg,
		library.WithLogger(log),
		library.WithDecodeOptions(opts...),
	)
	if err != nil {
		return nil, err
	}
	return lib, nil
}

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer starts the API server with the given configuration
func (s *DefaultServerStarter) StartServer(
	ctx context.Context,
	reg *codec.Registry,
	lib RecordLibrary,
	config ServerConfig,
	log zerolog.Logger,
) error {
	return StartServer(ctx, reg, lib, config, log)
}
