package seglist_test

import (
	"github.com/bsm/seglist"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("KeyEncoding", func() {
	It("should encode binary keys", func() {
		Expect(seglist.BinaryKeys.Key(0, 30)).To(Equal([]byte{0, 0, 0, 0}))
		Expect(seglist.BinaryKeys.Key(0x01020304, 0)).To(Equal([]byte{1, 2, 3, 4}))
		Expect(seglist.BinaryKeys.String()).To(Equal("binary"))
	})

	It("should encode decimal keys", func() {
		key := seglist.DecimalKeys.Key(123, 30)
		Expect(key).To(HaveLen(30))
		Expect(key[:3]).To(Equal([]byte("123")))
		Expect(key[3:]).To(Equal(make([]byte, 27)))

		Expect(seglist.DecimalKeys.Key(0, 30)[:2]).To(Equal([]byte{'0', 0}))
		Expect(seglist.DecimalKeys.Key(4294967295, 4)).To(Equal([]byte("4294967295")))
		Expect(seglist.DecimalKeys.String()).To(Equal("decimal"))
	})

	It("should keep keys distinct", func() {
		for _, enc := range []seglist.KeyEncoding{seglist.BinaryKeys, seglist.DecimalKeys} {
			seen := make(map[string]uint32)
			for i := uint32(0); i < 2000; i++ {
				key := string(enc.Key(i, 30))
				Expect(seen).NotTo(HaveKey(key), "%s key for %d", enc, i)
				seen[key] = i
			}
		}
	})
})
