package seglist

import (
	"errors"
	"fmt"
)

// ErrHeadSegmentMissing is returned when the head segment of a list cannot
// be found, either because the list was never created or because its head
// was removed out-of-band.
var ErrHeadSegmentMissing = errors.New("seglist: head segment does not exist")

var (
	// ErrTailSegmentMissing is matched by *TailSegmentMissingError.
	ErrTailSegmentMissing = errors.New("seglist: tail segment does not exist")
	// ErrCorruptSegment is matched by *CorruptSegmentError.
	ErrCorruptSegment = errors.New("seglist: corrupt segment")
	// ErrEntryTooLarge is returned when an entry cannot be size-prefixed.
	ErrEntryTooLarge = errors.New("seglist: entry too large")
	// ErrInvalidHeadBound is returned when a list is bound to a zero head size.
	ErrInvalidHeadBound = errors.New("seglist: head segment bound must be positive")

	errReleased = errors.New("seglist: iterator was released")
)

const (
	sizeLen    = 4 // length of an entry size prefix
	counterLen = 4 // length of the head segment tail counter

	maxEntrySize = 1<<32 - 1 - sizeLen
)

// TailSegmentMissingError is returned by traversals when a tail segment
// implied by the head's counter is absent from the store.
type TailSegmentMissingError struct {
	Index uint32
}

func (e *TailSegmentMissingError) Error() string {
	return fmt.Sprintf("seglist: tail segment %d does not exist", e.Index)
}

// Is reports whether target is ErrTailSegmentMissing.
func (e *TailSegmentMissingError) Is(target error) bool { return target == ErrTailSegmentMissing }

// CorruptSegmentError is returned when a segment's entry region cannot be
// parsed. Want is the number of bytes the entry at Offset requires, Have the
// number of bytes left in the segment.
type CorruptSegmentError struct {
	Index  uint32
	Offset int
	Want   int
	Have   int
}

func (e *CorruptSegmentError) Error() string {
	return fmt.Sprintf("seglist: corrupt segment %d at offset %d, need %d bytes, have %d", e.Index, e.Offset, e.Want, e.Have)
}

// Is reports whether target is ErrCorruptSegment.
func (e *CorruptSegmentError) Is(target error) bool { return target == ErrCorruptSegment }
