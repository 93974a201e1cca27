package seglist

// TableID identifies a table within a Store.
type TableID uint64

// Store is the point read/write key-value store a list is built on.
//
// Write must not retain value after it returns. Read returns exists == false
// and a nil error when the key is absent. Values returned by Read are owned
// by the caller.
type Store interface {
	Write(table TableID, key, value []byte) error
	Read(table TableID, key []byte) (value []byte, exists bool, err error)
}
