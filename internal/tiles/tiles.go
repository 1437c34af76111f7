// Package tiles encodes the two per-city masks that describe how a city's
// citizens are employed: the 6-byte worked-tile mask and the 2-byte specialist
// roster.
//
// The worked-tile mask covers the 20 tiles of the city radius (the 5x5 square
// around the center without its corners and without the center itself),
// organized in three rings:
//
//	byte 0, bits 0-7: the 8 tiles adjacent to the center
//	byte 1, bits 0-7: the 4 axis tiles at distance 2 and 4 of the knight moves
//	byte 2, bits 0-3: the other 4 knight moves
//
// Bytes 3 to 5 are never used.
package tiles

import (
	"encoding/binary"
	"fmt"
)

const (
	// MaskSize is the length in bytes of a worked-tile mask.
	MaskSize = 6
	// RosterSize is the length in bytes of a specialist roster.
	RosterSize = 2
	// MaxSpecialists is the number of 2-bit slots in a roster.
	MaxSpecialists = 8
)

// Offset is the position of a tile relative to the city center.
type Offset struct {
	DX, DY int
}

func (o Offset) String() string {
	return fmt.Sprintf("(%d,%d)", o.DX, o.DY)
}

// position of an offset within the mask.
type position struct {
	byteIndex int
	bit       uint
}

// table is the canonical assignment of offsets to bits, in bit order. Both
// directions are derived from it.
var table = [...]Offset{
	// Ring 0, byte 0.
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
	// Ring 1, byte 1.
	{0, -2}, {1, -2}, {2, 0}, {1, 2}, {0, 2}, {-1, 2}, {-2, 0}, {-1, -2},
	// Ring 2, low nibble of byte 2.
	{2, -1}, {2, 1}, {-2, 1}, {-2, -1},
}

var positions = func() map[Offset]position {
	m := make(map[Offset]position, len(table))
	for i, off := range table {
		if _, dup := m[off]; dup {
			panic("tiles: duplicate offset in table: " + off.String())
		}
		m[off] = position{byteIndex: i / 8, bit: uint(i % 8)}
	}
	return m
}()

// Offsets returns the 20 offsets of the city radius in bit order.
func Offsets() []Offset {
	offsets := make([]Offset, len(table))
	copy(offsets, table[:])
	return offsets
}

// InRadius reports whether off is one of the tiles a city can work.
func InRadius(off Offset) bool {
	_, ok := positions[off]
	return ok
}

// EncodeTiles returns the worked-tile mask with one bit set per offset. Every
// offset must be in the city radius; anything else panics.
func EncodeTiles(offsets []Offset) [MaskSize]byte {
	var mask [MaskSize]byte
	for _, off := range offsets {
		pos, ok := positions[off]
		if !ok {
			panic("tiles: offset outside of the city radius: " + off.String())
		}
		mask[pos.byteIndex] |= 1 << pos.bit
	}
	return mask
}

// DecodeTiles returns the offsets whose bits are set in mask, in bit order.
// Bits with no assigned offset are ignored.
func DecodeTiles(mask [MaskSize]byte) []Offset {
	offsets := []Offset{}
	for i, off := range table {
		if mask[i/8]&(1<<uint(i%8)) != 0 {
			offsets = append(offsets, off)
		}
	}
	return offsets
}

// Specialist is the role of a citizen that doesn't work a tile.
type Specialist uint8

// NoSpecialist marks an empty roster slot and never appears in a decoded roster.
const NoSpecialist Specialist = 0

const (
	Taxman Specialist = iota + 1
	Scientist
	Entertainer
)

func (s Specialist) String() string {
	switch s {
	case NoSpecialist:
		return "None"
	case Taxman:
		return "Taxman"
	case Scientist:
		return "Scientist"
	case Entertainer:
		return "Entertainer"
	default:
		return fmt.Sprintf("Specialist(%d)", uint8(s))
	}
}

// EncodeSpecialists packs roles two bits each into a little-endian uint16, the
// first role in the lowest bits. Values that aren't a role are skipped and
// anything past the eighth role is dropped.
func EncodeSpecialists(roles []Specialist) [RosterSize]byte {
	var packed uint16
	slot := 0
	for _, role := range roles {
		if slot == MaxSpecialists {
			break
		}
		if role < Taxman || role > Entertainer {
			continue
		}
		packed |= uint16(role) << uint(2*slot)
		slot++
	}

	var roster [RosterSize]byte
	binary.LittleEndian.PutUint16(roster[:], packed)
	return roster
}

// DecodeSpecialists unpacks a roster, lowest slot first. Empty slots produce
// no entry.
func DecodeSpecialists(roster [RosterSize]byte) []Specialist {
	packed := binary.LittleEndian.Uint16(roster[:])
	roles := []Specialist{}
	for slot := 0; slot < MaxSpecialists; slot++ {
		if role := Specialist(packed >> uint(2*slot) & 0x03); role != NoSpecialist {
			roles = append(roles, role)
		}
	}
	return roles
}
