package seglist_test

import (
	"github.com/bsm/seglist"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("HeadSegment", func() {
	entries := [][]byte{[]byte("newest"), {}, []byte("x"), []byte("oldest")}

	readAll := func(r *seglist.EntryReader) [][]byte {
		var res [][]byte
		for r.Next() {
			res = append(res, r.Entry())
		}
		Expect(r.Err()).NotTo(HaveOccurred())
		return res
	}

	It("should encode", func() {
		Expect(seglist.EncodeHead(0)).To(Equal([]byte{0, 0, 0, 0}))
		Expect(seglist.EncodeHead(258, []byte("ab"))).To(Equal([]byte{
			2, 1, 0, 0,
			2, 0, 0, 0, 'a', 'b',
		}))
	})

	It("should round-trip", func() {
		raw := seglist.EncodeHead(7, entries...)
		Expect(raw).To(HaveLen(4 + 4*4 + 6 + 0 + 1 + 6))

		head, err := seglist.DecodeHead(raw)
		Expect(err).NotTo(HaveOccurred())
		Expect(head.TailCount).To(Equal(uint32(7)))
		Expect(head.Region).To(Equal(raw[4:]))
		Expect(head.Bytes()).To(Equal(raw))
		Expect(readAll(head.Entries())).To(Equal(entries))
	})

	It("should decode empty", func() {
		head, err := seglist.DecodeHead(seglist.EncodeHead(3))
		Expect(err).NotTo(HaveOccurred())
		Expect(head.TailCount).To(Equal(uint32(3)))
		Expect(head.Region).To(BeEmpty())

		r := head.Entries()
		Expect(r.More()).To(BeFalse())
		Expect(r.Next()).To(BeFalse())
		Expect(r.Err()).NotTo(HaveOccurred())
	})

	It("should reject short segments", func() {
		_, err := seglist.DecodeHead([]byte{1, 0})
		Expect(err).To(MatchError(&seglist.CorruptSegmentError{Index: 0, Offset: 0, Want: 4, Have: 2}))
		Expect(err).To(MatchError(seglist.ErrCorruptSegment))
	})

	It("should detect truncated entries", func() {
		raw := append(seglist.EncodeHead(0, []byte("ok")), 100, 0, 0, 0, 'a', 'b', 'c')
		head, err := seglist.DecodeHead(raw)
		Expect(err).NotTo(HaveOccurred())

		r := head.Entries()
		Expect(r.Next()).To(BeTrue())
		Expect(r.Entry()).To(Equal([]byte("ok")))
		Expect(r.Next()).To(BeFalse())
		Expect(r.Entry()).To(BeNil())
		Expect(r.Err()).To(MatchError(&seglist.CorruptSegmentError{Index: 0, Offset: 10, Want: 104, Have: 7}))
		Expect(r.More()).To(BeFalse())
	})

	It("should detect truncated size prefixes", func() {
		head, err := seglist.DecodeHead([]byte{0, 0, 0, 0, 1, 0})
		Expect(err).NotTo(HaveOccurred())

		r := head.Entries()
		Expect(r.Next()).To(BeFalse())
		Expect(r.Err()).To(MatchError(&seglist.CorruptSegmentError{Index: 0, Offset: 4, Want: 4, Have: 2}))
	})
})

var _ = Describe("TailSegment", func() {
	It("should encode", func() {
		Expect(seglist.EncodeTail()).To(BeEmpty())
		Expect(seglist.EncodeTail([]byte("a"), []byte("bc"))).To(Equal([]byte{
			1, 0, 0, 0, 'a',
			2, 0, 0, 0, 'b', 'c',
		}))
	})

	It("should round-trip", func() {
		raw := seglist.EncodeTail([]byte("newer"), []byte("older"))
		tail := seglist.DecodeTail(4, raw)
		Expect(tail.Index).To(Equal(uint32(4)))
		Expect(tail.Bytes()).To(Equal(raw))

		r := tail.Entries()
		Expect(r.More()).To(BeTrue())
		Expect(r.Next()).To(BeTrue())
		Expect(r.Entry()).To(Equal([]byte("newer")))
		Expect(r.Next()).To(BeTrue())
		Expect(r.Entry()).To(Equal([]byte("older")))
		Expect(r.More()).To(BeFalse())
		Expect(r.Next()).To(BeFalse())
		Expect(r.Err()).NotTo(HaveOccurred())
	})

	It("should not treat leading bytes as a counter", func() {
		raw := seglist.EncodeTail([]byte("abc"))
		head, err := seglist.DecodeHead(raw)
		Expect(err).NotTo(HaveOccurred())
		Expect(head.TailCount).To(Equal(uint32(3)))

		r := seglist.DecodeTail(1, raw).Entries()
		Expect(r.Next()).To(BeTrue())
		Expect(r.Entry()).To(Equal([]byte("abc")))
	})

	It("should report the segment index on corruption", func() {
		r := seglist.DecodeTail(9, []byte{5, 0, 0, 0, 'a'}).Entries()
		Expect(r.Next()).To(BeFalse())
		Expect(r.Err()).To(MatchError(&seglist.CorruptSegmentError{Index: 9, Offset: 0, Want: 9, Have: 5}))
	})
})

var _ = Describe("AppendEntry", func() {
	It("should size-prefix", func() {
		Expect(seglist.AppendEntry([]byte{9}, []byte("hi"))).To(Equal([]byte{9, 2, 0, 0, 0, 'h', 'i'}))
		Expect(seglist.AppendEntry(nil, nil)).To(Equal([]byte{0, 0, 0, 0}))
	})
})
