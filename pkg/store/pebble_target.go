package store

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"
)

// PebbleTarget stores records as values in a pebble database, one key per
// record. Several targets may share a database through WithKey.
type PebbleTarget struct {
	db    *pebble.DB
	dir   string
	key   []byte
	owner bool
}

// OpenPebbleTarget opens (or creates) the database in dir and targets key
func OpenPebbleTarget(dir, key string) (*PebbleTarget, error) {
	if key == "" {
		return nil, errors.New("pebble target needs a record key")
	}
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, &IOError{Op: "open", Target: "pebble:" + dir, Err: errors.Wrap(err, "open pebble database")}
	}
	return &PebbleTarget{db: db, dir: dir, key: []byte(key), owner: true}, nil
}

// WithKey returns a target for another record in the same database.
// Only the original target closes the database.
func (t *PebbleTarget) WithKey(key string) *PebbleTarget {
	return &PebbleTarget{db: t.db, dir: t.dir, key: []byte(key)}
}

func (t *PebbleTarget) String() string {
	return "pebble:" + t.dir + "#" + string(t.key)
}

// ReadAll returns the stored record, or an empty slice if the key is absent
func (t *PebbleTarget) ReadAll() ([]byte, error) {
	data, closer, err := t.db.Get(t.key)
	if errors.Is(err, pebble.ErrNotFound) {
		Logger().Info("record key not found, starting empty", zap.Stringer("target", t))
		return []byte{}, nil
	}
	if err != nil {
		return nil, &IOError{Op: "read", Target: t.String(), Err: errors.Wrap(err, "get record")}
	}
	defer closer.Close()

	// data is only valid until closer is closed
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// WriteAll stores data under the target key with a synced write
func (t *PebbleTarget) WriteAll(data []byte) error {
	if err := t.db.Set(t.key, data, pebble.Sync); err != nil {
		return &IOError{Op: "write", Target: t.String(), Err: errors.Wrap(err, "set record")}
	}
	Logger().Debug("record stored", zap.Stringer("target", t), zap.Int("bytes", len(data)))
	return nil
}

// Keys lists every record key stored in the database
func (t *PebbleTarget) Keys() ([]string, error) {
	iter, err := t.db.NewIter(nil)
	if err != nil {
		return nil, &IOError{Op: "read", Target: t.String(), Err: errors.Wrap(err, "create iterator")}
	}

	var keys []string
	for iter.First(); iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	if err := iter.Close(); err != nil {
		return nil, &IOError{Op: "read", Target: t.String(), Err: errors.Wrap(err, "iterate records")}
	}
	return keys, nil
}

// Delete removes the target's record
func (t *PebbleTarget) Delete() error {
	if err := t.db.Delete(t.key, pebble.Sync); err != nil {
		return &IOError{Op: "write", Target: t.String(), Err: errors.Wrap(err, "delete record")}
	}
	return nil
}

// Close closes the database if this target opened it
func (t *PebbleTarget) Close() error {
	if !t.owner {
		return nil
	}
	return t.db.Close()
}
