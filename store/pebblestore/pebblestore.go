// Package pebblestore implements seglist.Store on top of a Pebble database.
package pebblestore

import (
	"bytes"

	"github.com/bsm/seglist"
	"github.com/bsm/seglist/store/internal/tablekey"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// Options define store specific options.
type Options struct {
	// Sync forces each write to be flushed to stable storage.
	// Default: false.
	Sync bool

	// Pebble options, used by Open and OpenMem only.
	Pebble *pebble.Options
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}
	oo.Pebble = oo.Pebble.Clone()
	return &oo
}

// Store is a seglist.Store backed by Pebble.
type Store struct {
	db *pebble.DB
	wo *pebble.WriteOptions
}

// New wraps an open database. Closing the store closes the database.
func New(db *pebble.DB, o *Options) *Store {
	o = o.norm()

	wo := pebble.NoSync
	if o.Sync {
		wo = pebble.Sync
	}
	return &Store{db: db, wo: wo}
}

// Open opens or creates a database in dir.
func Open(dir string, o *Options) (*Store, error) {
	o = o.norm()
	db, err := pebble.Open(dir, o.Pebble)
	if err != nil {
		return nil, err
	}
	return New(db, o), nil
}

// OpenMem opens a database on an in-memory file system. Any FS set in the
// Pebble options is replaced.
func OpenMem(o *Options) (*Store, error) {
	o = o.norm()
	o.Pebble.FS = vfs.NewMem()
	return Open("", o)
}

// Write implements seglist.Store.
func (s *Store) Write(table seglist.TableID, key, value []byte) error {
	return s.db.Set(tablekey.Encode(table, key), value, s.wo)
}

// Read implements seglist.Store.
func (s *Store) Read(table seglist.TableID, key []byte) ([]byte, bool, error) {
	val, closer, err := s.db.Get(tablekey.Encode(table, key))
	if err == pebble.ErrNotFound {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	defer closer.Close()

	return append([]byte(nil), val...), true, nil
}

// DropTable deletes all keys of table.
func (s *Store) DropTable(table seglist.TableID) error {
	prefix := tablekey.Prefix(table)
	if upper := tablekey.UpperBound(table); upper != nil {
		return s.db.DeleteRange(prefix, upper, s.wo)
	}

	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: prefix})
	if err != nil {
		return err
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	for ok := iter.First(); ok && bytes.HasPrefix(iter.Key(), prefix); ok = iter.Next() {
		if err := batch.Delete(iter.Key(), nil); err != nil {
			_ = iter.Close()
			return err
		}
	}
	if err := iter.Close(); err != nil {
		return err
	}
	return batch.Commit(s.wo)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
