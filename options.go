package seglist

// Options define list specific options.
type Options struct {
	// KeyEncoding determines how segment indices are mapped to store keys.
	// Default: BinaryKeys.
	KeyEncoding KeyEncoding

	// KeySize is the fixed width of DecimalKeys keys, in bytes.
	// Values below 10 are raised to 10, enough for any uint32 index.
	// Ignored for BinaryKeys.
	//
	// Default: 30.
	KeySize int
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}

	if !oo.KeyEncoding.isValid() {
		oo.KeyEncoding = BinaryKeys
	}
	if oo.KeySize < 1 {
		oo.KeySize = 30
	} else if oo.KeySize < minDecimalKeySize {
		oo.KeySize = minDecimalKeySize
	}

	return &oo
}
