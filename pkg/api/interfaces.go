// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/binsave/pkg/codec"
	"github.com/ssargent/binsave/pkg/store"
)

// RecordSession is the part of a store session the server needs
type RecordSession interface {
	ID() ksuid.KSUID
	Record() *codec.Record
	Target() store.Target
	Persist() error
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves the session until ctx is cancelled
	StartServer(ctx context.Context, session RecordSession, config ServerConfig) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
