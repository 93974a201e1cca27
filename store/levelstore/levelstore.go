// Package levelstore implements seglist.Store on top of a goleveldb database.
package levelstore

import (
	"github.com/bsm/seglist"
	"github.com/bsm/seglist/store/internal/tablekey"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Options define store specific options.
type Options struct {
	// Sync forces each write to be flushed to stable storage.
	// Default: false.
	Sync bool

	// LevelDB options, used by Open and OpenMem only.
	LevelDB *opt.Options
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}
	return &oo
}

// Store is a seglist.Store backed by goleveldb.
type Store struct {
	db *leveldb.DB
	wo *opt.WriteOptions
}

// New wraps an open database. Closing the store closes the database.
func New(db *leveldb.DB, o *Options) *Store {
	o = o.norm()
	return &Store{db: db, wo: &opt.WriteOptions{Sync: o.Sync}}
}

// Open opens or creates a database in dir.
func Open(dir string, o *Options) (*Store, error) {
	o = o.norm()
	db, err := leveldb.OpenFile(dir, o.LevelDB)
	if err != nil {
		return nil, err
	}
	return New(db, o), nil
}

// OpenMem opens a database held in memory.
func OpenMem(o *Options) (*Store, error) {
	o = o.norm()
	db, err := leveldb.Open(storage.NewMemStorage(), o.LevelDB)
	if err != nil {
		return nil, err
	}
	return New(db, o), nil
}

// Write implements seglist.Store.
func (s *Store) Write(table seglist.TableID, key, value []byte) error {
	return s.db.Put(tablekey.Encode(table, key), value, s.wo)
}

// Read implements seglist.Store.
func (s *Store) Read(table seglist.TableID, key []byte) ([]byte, bool, error) {
	val, err := s.db.Get(tablekey.Encode(table, key), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// DropTable deletes all keys of table.
func (s *Store) DropTable(table seglist.TableID) error {
	iter := s.db.NewIterator(util.BytesPrefix(tablekey.Prefix(table)), nil)
	defer iter.Release()

	batch := new(leveldb.Batch)
	for iter.Next() {
		batch.Delete(iter.Key())
	}
	if err := iter.Error(); err != nil {
		return err
	}
	return s.db.Write(batch, s.wo)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
