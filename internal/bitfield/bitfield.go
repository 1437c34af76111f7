// Package bitfield packs small boolean vectors into the bit-indexed bytes used
// throughout the save format: the active and human civilization masks, the game
// options, the building mask of a city and the discovered advances of each civ.
//
// Bit i of a multi-byte vector is stored in byte i/8 at position i%8, least
// significant bit first.
package bitfield

// Flags is the decoded form of a single flag byte; flag i corresponds to bit i.
type Flags [8]bool

// DecodeFlags splits b into its eight bits.
func DecodeFlags(b byte) Flags {
	var f Flags
	for i := range f {
		f[i] = b&(1<<uint(i)) != 0
	}
	return f
}

// EncodeFlags is the inverse of DecodeFlags.
func EncodeFlags(f Flags) byte {
	var b byte
	for i, set := range f {
		if set {
			b |= 1 << uint(i)
		}
	}
	return b
}

// FlagsOf returns Flags with the given indices set. Indices outside 0..7 are ignored.
func FlagsOf(indices ...int) Flags {
	var f Flags
	for _, i := range indices {
		if i >= 0 && i < len(f) {
			f[i] = true
		}
	}
	return f
}

// Set returns the indices of the flags that are set, in ascending order.
func (f Flags) Set() []int {
	var ids []int
	for i, set := range f {
		if set {
			ids = append(ids, i)
		}
	}
	return ids
}

// Count returns the number of flags that are set.
func (f Flags) Count() int {
	n := 0
	for _, set := range f {
		if set {
			n++
		}
	}
	return n
}

// DecodeBitIDs returns the ordinal of every set bit among the first bitCount bits
// of b, in ascending order. Bits beyond the end of b are treated as unset.
func DecodeBitIDs(b []byte, bitCount int) []int {
	ids := []int{}
	if max := len(b) * 8; bitCount > max {
		bitCount = max
	}
	for i := 0; i < bitCount; i++ {
		if b[i/8]&(1<<uint(i%8)) != 0 {
			ids = append(ids, i)
		}
	}
	return ids
}

// EncodeBitIDs returns a byteLength-byte vector with the bit at every ordinal in
// ids set. Ordinals that don't fit in the vector are ignored.
func EncodeBitIDs(ids []int, byteLength int) []byte {
	b := make([]byte, byteLength)
	for _, id := range ids {
		if id < 0 || id >= byteLength*8 {
			continue
		}
		b[id/8] |= 1 << uint(id%8)
	}
	return b
}
