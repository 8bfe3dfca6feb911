package store

import (
	"fmt"

	"github.com/ssargent/binsave/pkg/codec"
)

// Backends understood by OpenTarget
const (
	BackendFile   = "file"
	BackendPebble = "pebble"
)

// TargetConfig selects and locates a target
type TargetConfig struct {
	Backend string
	Path    string // file path, or database directory for pebble
	Key     string // record key, pebble only
}

// OpenTarget creates the target described by config
func OpenTarget(config TargetConfig) (Target, error) {
	switch config.Backend {
	case BackendFile, "":
		return NewFileTarget(config.Path), nil
	case BackendPebble:
		return OpenPebbleTarget(config.Path, config.Key)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.Backend)
	}
}

// SessionFactory opens sessions from configuration
type SessionFactory interface {
	// CreateSession opens the configured target and loads it for schema
	CreateSession(config TargetConfig, schema *codec.Schema, opts ...codec.Option) (*Session, error)
}

// DefaultSessionFactory is the default implementation of SessionFactory
type DefaultSessionFactory struct{}

// NewSessionFactory creates a new session factory
func NewSessionFactory() SessionFactory {
	return &DefaultSessionFactory{}
}

// CreateSession opens the configured target and loads it for schema
func (f *DefaultSessionFactory) CreateSession(config TargetConfig, schema *codec.Schema, opts ...codec.Option) (*Session, error) {
	target, err := OpenTarget(config)
	if err != nil {
		return nil, err
	}

	session, err := Open(target, schema, opts...)
	if err != nil {
		if c, ok := target.(interface{ Close() error }); ok {
			_ = c.Close()
		}
		return nil, err
	}
	return session, nil
}
