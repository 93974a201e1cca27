package seglist

import (
	"bytes"
	"encoding/binary"
	"sync"

	"github.com/pkg/errors"
)

// List is an append-only list stored as a head segment and a series of
// immutable tail segments.
//
// A List serializes its own Append and Recover calls, but offers no
// protection against other writers of the same table. Callers must ensure a
// single writer per list.
type List struct {
	s     Store
	table TableID
	bound uint32
	o     *Options

	mu sync.Mutex
}

// Create creates a new, empty list in table, replacing any existing head
// segment. headBound is the maximum size in bytes of the head's entry
// region; appends that would exceed it split the head into a new tail
// segment.
func Create(s Store, table TableID, headBound uint32, o *Options) (*List, error) {
	l, err := newList(s, table, headBound, o)
	if err != nil {
		return nil, err
	}

	if err := l.write(0, EncodeHead(0)); err != nil {
		return nil, err
	}
	return l, nil
}

// Open opens an existing list. It may return an ErrHeadSegmentMissing error.
func Open(s Store, table TableID, headBound uint32, o *Options) (*List, error) {
	l, err := newList(s, table, headBound, o)
	if err != nil {
		return nil, err
	}

	if _, err := l.readHead(); err != nil {
		return nil, err
	}
	return l, nil
}

func newList(s Store, table TableID, headBound uint32, o *Options) (*List, error) {
	if headBound == 0 {
		return nil, ErrInvalidHeadBound
	}
	return &List{s: s, table: table, bound: headBound, o: o.norm()}, nil
}

// Table returns the table the list is stored in.
func (l *List) Table() TableID { return l.table }

// HeadBound returns the maximum size of the head entry region.
func (l *List) HeadBound() uint32 { return l.bound }

// Append prepends an entry to the list.
func (l *List) Append(data []byte) error {
	if uint64(len(data)) > maxEntrySize {
		return ErrEntryTooLarge
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	head, err := l.readHead()
	if err != nil {
		return err
	}
	if _, err := head.Entries().count(); err != nil {
		return err
	}

	size := uint64(len(head.Region)) + sizeLen + uint64(len(data))
	if size > uint64(l.bound) {
		return l.split(head, data)
	}

	buf := fetchBuffer(counterLen + int(size))
	defer releaseBuffer(buf)

	binary.LittleEndian.PutUint32(buf, head.TailCount)
	prependEntry(buf[counterLen:], data, head.Region)
	return l.write(0, buf)
}

// split evicts the head and data into a new tail segment. The tail is
// written before the head is reset, so a failure in between leaves the head
// intact and the new tail unreferenced.
func (l *List) split(head *HeadSegment, data []byte) error {
	next := head.TailCount + 1
	if next == 0 {
		return errors.Errorf("seglist: table %d has too many tail segments", l.table)
	}

	buf := fetchBuffer(sizeLen + len(data) + len(head.Region))
	defer releaseBuffer(buf)

	prependEntry(buf, data, head.Region)
	if err := l.write(next, buf); err != nil {
		return err
	}
	return l.write(0, EncodeHead(next))
}

// Traverse returns an iterator over all entries, newest first. Each call
// reads the list afresh from the store.
func (l *List) Traverse() (*Iterator, error) {
	head, err := l.readHead()
	if err != nil {
		return nil, err
	}

	return &Iterator{
		l:    l,
		seg:  head.Entries(),
		next: head.TailCount,
	}, nil
}

// Check reads every segment of the list and reports its layout.
func (l *List) Check() (*Report, error) {
	head, err := l.readHead()
	if err != nil {
		return nil, err
	}

	n, err := head.Entries().count()
	if err != nil {
		return nil, err
	}

	rep := &Report{
		TailSegments: head.TailCount,
		Segments:     []SegmentInfo{{Index: 0, Entries: n, Bytes: len(head.Region)}},
	}

	for i := head.TailCount; i > 0; i-- {
		tail, err := l.readTail(i)
		if err != nil {
			return nil, err
		}

		n, err := tail.Entries().count()
		if err != nil {
			return nil, err
		}
		rep.Segments = append(rep.Segments, SegmentInfo{Index: i, Entries: n, Bytes: len(tail.Region)})
	}
	return rep, nil
}

// Recover completes a split that was interrupted after the new tail segment
// was written but before the head was reset. It returns true if a repair was
// made.
//
// A torn split is recognised by a tail segment at the index following the
// head's counter whose entries, after the first, are exactly the head's.
// A corrupt segment found there is reported, any other is ignored and will
// be replaced by the next split.
func (l *List) Recover() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	head, err := l.readHead()
	if err != nil {
		return false, err
	}

	next := head.TailCount + 1
	if next == 0 {
		return false, nil
	}

	raw, ok, err := l.read(next)
	if err != nil || !ok {
		return false, err
	}

	ents := DecodeTail(next, raw).Entries()
	if !ents.Next() {
		return false, ents.Err()
	}
	if !bytes.Equal(raw[ents.read:], head.Region) {
		return false, nil
	}

	if err := l.write(0, EncodeHead(next)); err != nil {
		return false, err
	}
	return true, nil
}

func (l *List) key(index uint32) []byte {
	return l.o.KeyEncoding.Key(index, l.o.KeySize)
}

func (l *List) read(index uint32) ([]byte, bool, error) {
	raw, ok, err := l.s.Read(l.table, l.key(index))
	if err != nil {
		return nil, false, errors.Wrapf(err, "seglist: read segment %d of table %d", index, l.table)
	}
	return raw, ok, nil
}

func (l *List) write(index uint32, raw []byte) error {
	if err := l.s.Write(l.table, l.key(index), raw); err != nil {
		return errors.Wrapf(err, "seglist: write segment %d of table %d", index, l.table)
	}
	return nil
}

func (l *List) readHead() (*HeadSegment, error) {
	raw, ok, err := l.read(0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHeadSegmentMissing
	}
	return DecodeHead(raw)
}

func (l *List) readTail(index uint32) (*TailSegment, error) {
	raw, ok, err := l.read(index)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &TailSegmentMissingError{Index: index}
	}
	return DecodeTail(index, raw), nil
}

// prependEntry writes the size-prefixed data followed by region into dst,
// which must be exactly large enough to hold both.
func prependEntry(dst, data, region []byte) {
	binary.LittleEndian.PutUint32(dst, uint32(len(data)))
	n := sizeLen + copy(dst[sizeLen:], data)
	copy(dst[n:], region)
}

// --------------------------------------------------------------------

// Report describes the layout of a list, as found by Check.
type Report struct {
	TailSegments uint32        // the head's tail counter
	Segments     []SegmentInfo // head first, then tails from newest to oldest
}

// Entries returns the total number of entries across all segments.
func (r *Report) Entries() int {
	n := 0
	for _, s := range r.Segments {
		n += s.Entries
	}
	return n
}

// SegmentInfo describes a single segment.
type SegmentInfo struct {
	Index   uint32 // segment index, 0 for the head
	Entries int    // number of entries
	Bytes   int    // size of the entry region
}

// --------------------------------------------------------------------

// Iterator iterates over the entries of a list, newest first, crossing from
// the head into the tail segments. Tail segments are read as the iterator
// reaches them.
type Iterator struct {
	l    *List
	seg  *EntryReader
	idx  uint32 // index of the current segment
	next uint32 // index of the next tail segment to read, 0 once exhausted

	err error
}

// Entry returns the current entry. Please note that entries reference
// segment buffers and must be copied if modified.
func (i *Iterator) Entry() []byte { return i.seg.Entry() }

// SegmentIndex returns the index of the segment holding the current entry.
func (i *Iterator) SegmentIndex() uint32 { return i.idx }

// More returns true if more data can be read.
func (i *Iterator) More() bool {
	if i.err != nil {
		return false
	}
	return i.seg.More() || i.next > 0
}

// Next advances the cursor to the next entry and returns true if successful.
func (i *Iterator) Next() bool {
	for i.err == nil {
		if i.seg.Next() {
			return true
		}
		if i.err = i.seg.Err(); i.err != nil {
			return false
		}

		if i.next == 0 {
			return false
		}

		tail, err := i.l.readTail(i.next)
		if err != nil {
			i.err = err
			return false
		}
		i.seg = tail.Entries()
		i.idx = i.next
		i.next--
	}
	return false
}

// Err exposes iterator errors, if any.
func (i *Iterator) Err() error {
	return i.err
}

// Release releases the iterator. The iterator must not be used after this
// method is called.
func (i *Iterator) Release() {
	i.seg = &EntryReader{}
	i.next = 0
	i.err = errReleased
}

// --------------------------------------------------------------------

var bufPool sync.Pool

func fetchBuffer(sz int) []byte {
	if v := bufPool.Get(); v != nil {
		if p := v.([]byte); sz <= cap(p) {
			return p[:sz]
		}
	}
	return make([]byte, sz)
}

func releaseBuffer(p []byte) {
	if cap(p) != 0 {
		bufPool.Put(p)
	}
}
