package seglist

import (
	"encoding/binary"
)

// HeadSegment is the decoded form of segment 0. It carries the number of
// tail segments followed by the newest entries of the list.
type HeadSegment struct {
	TailCount uint32 // number of tail segments
	Region    []byte // the raw entry region, excluding the counter
}

// DecodeHead decodes a raw head segment. The entry region is referenced, not
// copied. Entries are validated lazily, as they are read.
func DecodeHead(raw []byte) (*HeadSegment, error) {
	if len(raw) < counterLen {
		return nil, &CorruptSegmentError{Index: 0, Want: counterLen, Have: len(raw)}
	}
	return &HeadSegment{
		TailCount: binary.LittleEndian.Uint32(raw),
		Region:    raw[counterLen:],
	}, nil
}

// EncodeHead encodes a head segment. Entries are written in the given order,
// which must be newest-first.
func EncodeHead(tailCount uint32, entries ...[]byte) []byte {
	buf := make([]byte, counterLen, counterLen+regionLen(entries))
	binary.LittleEndian.PutUint32(buf, tailCount)
	for _, ent := range entries {
		buf = AppendEntry(buf, ent)
	}
	return buf
}

// Entries returns a reader over the head entries, newest first.
func (s *HeadSegment) Entries() *EntryReader {
	return &EntryReader{region: s.Region, index: 0, base: counterLen}
}

// Bytes returns the encoded segment.
func (s *HeadSegment) Bytes() []byte {
	buf := make([]byte, counterLen, counterLen+len(s.Region))
	binary.LittleEndian.PutUint32(buf, s.TailCount)
	return append(buf, s.Region...)
}

// --------------------------------------------------------------------

// TailSegment is the decoded form of an immutable segment with index >= 1.
// Its entry region starts at offset 0.
type TailSegment struct {
	Index  uint32 // the segment index
	Region []byte // the raw entry region
}

// DecodeTail decodes the raw tail segment stored at index. The entry region
// is referenced, not copied.
func DecodeTail(index uint32, raw []byte) *TailSegment {
	return &TailSegment{Index: index, Region: raw}
}

// EncodeTail encodes a tail segment. Entries are written in the given order.
func EncodeTail(entries ...[]byte) []byte {
	buf := make([]byte, 0, regionLen(entries))
	for _, ent := range entries {
		buf = AppendEntry(buf, ent)
	}
	return buf
}

// Entries returns a reader over the tail entries, in stored order.
func (s *TailSegment) Entries() *EntryReader {
	return &EntryReader{region: s.Region, index: s.Index}
}

// Bytes returns the encoded segment.
func (s *TailSegment) Bytes() []byte { return s.Region }

// --------------------------------------------------------------------

// AppendEntry appends a size-prefixed entry to dst.
func AppendEntry(dst, payload []byte) []byte {
	var tmp [sizeLen]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(len(payload)))
	dst = append(dst, tmp[:]...)
	return append(dst, payload...)
}

func regionLen(entries [][]byte) int {
	n := 0
	for _, ent := range entries {
		n += sizeLen + len(ent)
	}
	return n
}

// --------------------------------------------------------------------

// EntryReader reads the entries of a single segment. It is a single-pass
// cursor and cannot be rewound.
type EntryReader struct {
	region []byte
	index  uint32 // segment index, for errors
	base   int    // offset of the region within the segment, for errors

	read int    // bytes read
	ent  []byte // current entry
	err  error
}

// More returns true if more data can be read in the segment.
func (r *EntryReader) More() bool { return r.err == nil && r.read < len(r.region) }

// Next advances the cursor to the next entry and returns true if successful.
func (r *EntryReader) Next() bool {
	if !r.More() {
		r.ent = nil
		return false
	}

	have := len(r.region) - r.read
	if have < sizeLen {
		r.fail(sizeLen, have)
		return false
	}

	size := int(binary.LittleEndian.Uint32(r.region[r.read:]))
	if have-sizeLen < size {
		r.fail(sizeLen+size, have)
		return false
	}

	start := r.read + sizeLen
	r.ent = r.region[start : start+size : start+size]
	r.read = start + size
	return true
}

// Entry returns the current entry. Please note that entries reference the
// segment buffer and must be copied if modified.
func (r *EntryReader) Entry() []byte { return r.ent }

// Err exposes decoding errors, if any.
func (r *EntryReader) Err() error { return r.err }

func (r *EntryReader) fail(want, have int) {
	r.err = &CorruptSegmentError{
		Index:  r.index,
		Offset: r.base + r.read,
		Want:   want,
		Have:   have,
	}
	r.ent = nil
}

// count drains the reader and returns the number of entries read.
func (r *EntryReader) count() (int, error) {
	n := 0
	for r.Next() {
		n++
	}
	return n, r.Err()
}
