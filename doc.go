/*
Package seglist implements an append-only list on top of a key-value store
that only offers point reads and point writes.

Entries are prepended to a bounded head segment. Once an append would grow
the head's entry region beyond the configured bound, the head's entries,
together with the new one, are moved into a new immutable tail segment and
the head is reset. Traversal visits the head first and then the tails from
newest to oldest, yielding entries in reverse append order.

Data Structure Documentation

List

A list with N tail segments occupies N+1 keys of a single table. The key of
a segment is derived from its index, see KeyEncoding.

    List layout:
    +-----------------+----------------+---------+----------------+
    | head (index 0)  | tail N         |   ...   | tail 1         |
    +-----------------+----------------+---------+----------------+
      newest entries    last eviction              first eviction

Head Segment

The head segment starts with the number of tail segments, followed by
the entry region.

    Head layout:
    +------------------------------+-----------+---------+-----------+
    | tail count N (4 bytes, LE)   | entry k   |   ...   | entry 1   |
    +------------------------------+-----------+---------+-----------+

Tail Segment

A tail segment holds only an entry region, starting at offset 0. It is the
entry region the head held when it was evicted, preceded by the entry whose
append triggered the eviction.

    Tail layout:
    +-----------+---------+-----------+
    | entry k   |   ...   | entry 1   |
    +-----------+---------+-----------+

Entry

    +------------------------+------------------+
    | payload len (4 bytes)  | payload (varlen) |
    +------------------------+------------------+

All fixed-width integers are little-endian.
*/
package seglist
