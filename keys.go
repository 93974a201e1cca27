package seglist

import (
	"encoding/binary"
	"strconv"
)

// KeyEncoding maps segment indices to fixed-width store keys.
type KeyEncoding byte

// Supported key encodings
const (
	// BinaryKeys renders the index as a 4-byte big-endian integer.
	BinaryKeys KeyEncoding = iota
	// DecimalKeys renders the index as decimal ASCII at the start of a
	// null-filled buffer of Options.KeySize bytes. Keys sort as strings
	// ("10" before "9"); use it only to read lists written that way.
	DecimalKeys
	unknownKeyEncoding
)

const minDecimalKeySize = 10 // len("4294967295")

func (e KeyEncoding) isValid() bool {
	return e >= BinaryKeys && e < unknownKeyEncoding
}

// Key returns the store key of the segment at index. keySize is only used by
// DecimalKeys.
func (e KeyEncoding) Key(index uint32, keySize int) []byte {
	if e == DecimalKeys {
		if keySize < minDecimalKeySize {
			keySize = minDecimalKeySize
		}
		key := make([]byte, keySize)
		strconv.AppendUint(key[:0], uint64(index), 10)
		return key
	}

	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, index)
	return key
}

func (e KeyEncoding) String() string {
	switch e {
	case BinaryKeys:
		return "binary"
	case DecimalKeys:
		return "decimal"
	}
	return "unknown"
}
