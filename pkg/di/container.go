// Package di provides dependency injection container
package di

import (
	"github.com/ssargent/binsave/pkg/api"   //nolint:depguard
	"github.com/ssargent/binsave/pkg/store" //nolint:depguard
)

// Container holds all the dependencies for the application
type Container struct {
	sessionFactory store.SessionFactory
	serverFactory  api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		sessionFactory: store.NewSessionFactory(),
		serverFactory:  api.NewServerFactory(),
	}
}

// GetSessionFactory returns the session factory
func (c *Container) GetSessionFactory() store.SessionFactory {
	return c.sessionFactory
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetSessionFactory allows overriding the session factory (for testing)
func (c *Container) SetSessionFactory(factory store.SessionFactory) {
	c.sessionFactory = factory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}
