// Package tablekey scopes keys of an ordered key-value engine to tables by
// prefixing them with the 8-byte big-endian table ID.
package tablekey

import (
	"encoding/binary"

	"github.com/bsm/seglist"
)

// PrefixLen is the length of the table prefix.
const PrefixLen = 8

// Encode returns key scoped to table.
func Encode(table seglist.TableID, key []byte) []byte {
	buf := make([]byte, PrefixLen, PrefixLen+len(key))
	binary.BigEndian.PutUint64(buf, uint64(table))
	return append(buf, key...)
}

// Prefix returns the prefix shared by all keys of table.
func Prefix(table seglist.TableID) []byte {
	return Encode(table, nil)
}

// UpperBound returns the smallest key greater than all keys of table, or nil
// if table is the last possible table.
func UpperBound(table seglist.TableID) []byte {
	if table == ^seglist.TableID(0) {
		return nil
	}
	return Prefix(table + 1)
}
