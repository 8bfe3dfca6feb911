package store

import (
	"io"

	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/ssargent/binsave/pkg/codec"
)

// Session binds a record to the target it was loaded from. Persist writes
// the current buffer back. A Session is not safe for concurrent use.
type Session struct {
	id     ksuid.KSUID
	target Target
	record *codec.Record
}

// Open loads the target into a new record for schema. A target that is
// empty (or missing) yields a zeroed record; a stored buffer of a different
// length is copied up to the schema size with a warning.
func Open(target Target, schema *codec.Schema, opts ...codec.Option) (*Session, error) {
	raw, err := target.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(raw) != 0 && len(raw) != schema.Size() {
		Logger().Warn("stored record length differs from schema size",
			zap.Stringer("target", target),
			zap.Int("stored", len(raw)),
			zap.Int("size", schema.Size()))
	}

	s := &Session{
		id:     ksuid.New(),
		target: target,
		record: codec.LoadRecord(schema, raw, opts...),
	}

	Logger().Debug("session opened",
		zap.Stringer("session", s.id),
		zap.Stringer("target", target),
		zap.Int("size", schema.Size()))
	return s, nil
}

// ID identifies the session in logs and API responses
func (s *Session) ID() ksuid.KSUID {
	return s.id
}

// Record returns the live record
func (s *Session) Record() *codec.Record {
	return s.record
}

// Target returns where the session persists to
func (s *Session) Target() Target {
	return s.target
}

// Persist writes the full record buffer to the target
func (s *Session) Persist() error {
	if err := s.target.WriteAll(s.record.Raw()); err != nil {
		Logger().Error("persist failed", zap.Stringer("session", s.id), zap.Error(err))
		return err
	}
	Logger().Info("record persisted",
		zap.Stringer("session", s.id),
		zap.Stringer("target", s.target),
		zap.Int("bytes", s.record.Size()))
	return nil
}

// Close releases the target if it holds resources
func (s *Session) Close() error {
	if c, ok := s.target.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
