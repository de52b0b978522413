// Package di provides dependency injection container
package di

import (
	"sync"

	"github.com/ssargent/stylegraph/pkg/api" //nolint:depguard
	"github.com/ssargent/stylegraph/pkg/codec"
	"github.com/ssargent/stylegraph/pkg/objects"
)

// Container holds all the dependencies for the application
type Container struct {
	libraryFactory api.LibraryFactory
	serverFactory  api.ServerFactory

	registryOnce sync.Once
	registry     *codec.Registry
	registryErr  error
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		libraryFactory: api.NewLibraryFactory(),
		serverFactory:  api.NewServerFactory(),
	}
}

// Registry returns the sealed class registry, building it on first use
func (c *Container) Registry() (*codec.Registry, error) {
	c.registryOnce.Do(func() {
		c.registry, c.registryErr = objects.NewRegistry()
	})
	return c.registry, c.registryErr
}

// GetLibraryFactory returns the library factory
func (c *Container) GetLibraryFactory() api.LibraryFactory {
	return c.libraryFactory
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetLibraryFactory allows overriding the library factory (for testing)
func (c *Container) SetLibraryFactory(factory api.LibraryFactory) {
	c.libraryFactory = factory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}
