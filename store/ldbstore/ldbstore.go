// Package ldbstore implements seglist.Store on top of a golang/leveldb
// database.
package ldbstore

import (
	"bytes"

	"github.com/bsm/seglist"
	"github.com/bsm/seglist/store/internal/tablekey"
	"github.com/golang/leveldb"
	"github.com/golang/leveldb/db"
	"github.com/golang/leveldb/memfs"
)

// Options define store specific options.
type Options struct {
	// Sync forces each write to be flushed to stable storage.
	// Default: false.
	Sync bool

	// LevelDB options, used by Open and OpenMem only.
	LevelDB *db.Options
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}
	if oo.LevelDB == nil {
		oo.LevelDB = new(db.Options)
	}
	return &oo
}

// Store is a seglist.Store backed by golang/leveldb.
type Store struct {
	db *leveldb.DB
	wo *db.WriteOptions
}

// New wraps an open database. Closing the store closes the database.
func New(d *leveldb.DB, o *Options) *Store {
	o = o.norm()
	return &Store{db: d, wo: &db.WriteOptions{Sync: o.Sync}}
}

// Open opens or creates a database in dir.
func Open(dir string, o *Options) (*Store, error) {
	o = o.norm()
	d, err := leveldb.Open(dir, o.LevelDB)
	if err != nil {
		return nil, err
	}
	return New(d, o), nil
}

// OpenMem opens a database on an in-memory file system. Any FileSystem set
// in the LevelDB options is replaced.
func OpenMem(o *Options) (*Store, error) {
	o = o.norm()
	lo := *o.LevelDB
	lo.FileSystem = memfs.New()
	o.LevelDB = &lo
	return Open("seglist", o)
}

// Write implements seglist.Store.
func (s *Store) Write(table seglist.TableID, key, value []byte) error {
	return s.db.Set(tablekey.Encode(table, key), value, s.wo)
}

// Read implements seglist.Store.
func (s *Store) Read(table seglist.TableID, key []byte) ([]byte, bool, error) {
	val, err := s.db.Get(tablekey.Encode(table, key), nil)
	if err == db.ErrNotFound {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	return append([]byte(nil), val...), true, nil
}

// DropTable deletes all keys of table.
func (s *Store) DropTable(table seglist.TableID) error {
	prefix := tablekey.Prefix(table)

	var keys [][]byte
	iter := s.db.Find(prefix, nil)
	for iter.Next() && bytes.HasPrefix(iter.Key(), prefix) {
		keys = append(keys, append([]byte(nil), iter.Key()...))
	}
	if err := iter.Close(); err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.db.Delete(key, s.wo); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
