// Package badgerstore implements seglist.Store on top of a Badger database.
package badgerstore

import (
	"github.com/bsm/seglist"
	"github.com/bsm/seglist/store/internal/tablekey"
	"github.com/dgraph-io/badger"
)

// maximum number of deletes per transaction in DropTable
const dropBatchSize = 1000

// Options define store specific options.
type Options struct {
	// Sync forces each write to be flushed to stable storage.
	// Default: false.
	Sync bool

	// Badger options, used by Open only. Dir, ValueDir and SyncWrites are
	// always overridden.
	// Default: badger.DefaultOptions
	Badger *badger.Options
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}

	bo := badger.DefaultOptions
	if oo.Badger != nil {
		bo = *oo.Badger
	}
	oo.Badger = &bo
	return &oo
}

// Store is a seglist.Store backed by Badger.
type Store struct {
	db *badger.DB
}

// New wraps an open database. Closing the store closes the database.
// Write durability is a property of the database, see Options.Sync.
func New(db *badger.DB) *Store {
	return &Store{db: db}
}

// Open opens or creates a database in dir, keeping keys and values in the
// same directory.
func Open(dir string, o *Options) (*Store, error) {
	o = o.norm()
	o.Badger.Dir = dir
	o.Badger.ValueDir = dir
	o.Badger.SyncWrites = o.Sync

	db, err := badger.Open(*o.Badger)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// Write implements seglist.Store.
func (s *Store) Write(table seglist.TableID, key, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tablekey.Encode(table, key), append([]byte(nil), value...))
	})
}

// Read implements seglist.Store.
func (s *Store) Read(table seglist.TableID, key []byte) (val []byte, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tablekey.Encode(table, key))
		if err == badger.ErrKeyNotFound {
			return nil
		} else if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)
		ok = err == nil
		return err
	})
	return
}

// DropTable deletes all keys of table.
func (s *Store) DropTable(table seglist.TableID) error {
	prefix := tablekey.Prefix(table)

	var keys [][]byte
	if err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		iter := txn.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			keys = append(keys, append([]byte(nil), iter.Item().Key()...))
		}
		return nil
	}); err != nil {
		return err
	}

	for len(keys) != 0 {
		n := dropBatchSize
		if n > len(keys) {
			n = len(keys)
		}

		if err := s.db.Update(func(txn *badger.Txn) error {
			for _, key := range keys[:n] {
				if err := txn.Delete(key); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return err
		}
		keys = keys[n:]
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
