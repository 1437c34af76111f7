// Package record holds the fixed-layout byte image of a save file body and the
// accessors used to read and write its fields.
//
// Every field lives at a constant offset (see Layout). Accessors copy data in
// and out of the image and never touch bytes outside the field they were given.
// Contract violations such as writing a value of the wrong length or addressing
// a slot that doesn't exist panic.
package record

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/openciv1/civsave/internal/core/bytes"
)

// ErrInvalidSize is returned when a buffer isn't exactly Size bytes long.
var ErrInvalidSize = errors.New("invalid save size")

// Record is the byte image of a save file body.
type Record struct {
	buf [Size]byte
}

// New returns a zero-filled record with every city and unit slot marked unused
// and no wonder built.
func New() *Record {
	r := &Record{}
	for i := 0; i < NumWonders; i++ {
		r.SetItem(Wonders, i, []byte{Unused, Unused})
	}
	for i := 0; i < MaxCities; i++ {
		r.ClearCity(i)
	}
	for civ := 0; civ < NumCivs; civ++ {
		for slot := 0; slot < UnitsPerCiv; slot++ {
			r.ClearUnit(civ, slot)
		}
	}
	return r
}

// FromBytes copies b into a new record.
func FromBytes(b []byte) (*Record, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("%w: got %d bytes, expected %d", ErrInvalidSize, len(b), Size)
	}
	r := &Record{}
	copy(r.buf[:], b)
	return r, nil
}

// Bytes returns a copy of the image.
func (r *Record) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, r.buf[:])
	return b
}

func (r *Record) span(f Field) []byte {
	if f.Offset < 0 || f.Length < 0 || f.End() > Size {
		panic(fmt.Sprintf("record: field %s [%#x, %#x) is outside the record", f.Name, f.Offset, f.End()))
	}
	return r.buf[f.Offset:f.End():f.End()]
}

// Get returns a copy of the bytes of f.
func (r *Record) Get(f Field) []byte {
	b := make([]byte, f.Length)
	copy(b, r.span(f))
	return b
}

// Set overwrites f with b, which must be exactly f.Length bytes long.
func (r *Record) Set(f Field, b []byte) {
	if len(b) != f.Length {
		panic(fmt.Sprintf("record: field %s is %d bytes, got %d", f.Name, f.Length, len(b)))
	}
	copy(r.span(f), b)
}

// Items splits f into count chunks of stride bytes. count is reduced to the
// number of whole chunks that fit in the field.
func (r *Record) Items(f Field, stride, count int) [][]byte {
	if stride <= 0 {
		panic(fmt.Sprintf("record: invalid stride %d for field %s", stride, f.Name))
	}
	if max := f.Length / stride; count > max {
		count = max
	}
	span := r.span(f)
	items := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		item := make([]byte, stride)
		copy(item, span[i*stride:(i+1)*stride])
		items = append(items, item)
	}
	return items
}

// Item returns a copy of chunk i of f.
func (r *Record) Item(f Field, stride, i int) []byte {
	if stride <= 0 || i < 0 || (i+1)*stride > f.Length {
		panic(fmt.Sprintf("record: item %d of stride %d is outside field %s", i, stride, f.Name))
	}
	item := make([]byte, stride)
	copy(item, r.span(f)[i*stride:])
	return item
}

// SetItem overwrites chunk i of f with b.
func (r *Record) SetItem(f Field, i int, b []byte) {
	stride := len(b)
	if stride == 0 || i < 0 || (i+1)*stride > f.Length {
		panic(fmt.Sprintf("record: item %d of stride %d is outside field %s", i, stride, f.Name))
	}
	copy(r.span(f)[i*stride:], b)
}

// Uint16 reads a field holding a single little-endian word.
func (r *Record) Uint16(f Field) uint16 {
	return binary.LittleEndian.Uint16(r.Item(f, 2, 0))
}

// SetUint16 writes a single little-endian word at the start of f.
func (r *Record) SetUint16(f Field, v uint16) {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	r.SetItem(f, 0, b)
}

// Uint16s reads f as an array of little-endian words.
func (r *Record) Uint16s(f Field) []uint16 {
	items := r.Items(f, 2, f.Length/2)
	values := make([]uint16, len(items))
	for i, item := range items {
		values[i] = binary.LittleEndian.Uint16(item)
	}
	return values
}

// SetUint16s writes values as little-endian words over the whole of f.
func (r *Record) SetUint16s(f Field, values []uint16) {
	b := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(b[2*i:], v)
	}
	r.Set(f, b)
}

// Strings reads count fixed-width strings of itemLength bytes from f.
func (r *Record) Strings(f Field, itemLength, count int) []string {
	items := r.Items(f, itemLength, count)
	strs := make([]string, len(items))
	for i, item := range items {
		strs[i] = bytes.DecodeFixedString(item)
	}
	return strs
}

// SetStrings writes strs as itemLength-byte slots. Strings beyond the capacity
// of the field are ignored and slots without a string are cleared.
func (r *Record) SetStrings(f Field, itemLength int, strs []string) {
	count := f.Length / itemLength
	for i := 0; i < count; i++ {
		s := ""
		if i < len(strs) {
			s = strs[i]
		}
		r.SetItem(f, i, bytes.EncodeFixedString(s, itemLength))
	}
}

func checkCity(i int) {
	if i < 0 || i >= MaxCities {
		panic(fmt.Sprintf("record: city index %d out of range", i))
	}
}

func unitIndex(civ, slot int) int {
	if civ < 0 || civ >= NumCivs || slot < 0 || slot >= UnitsPerCiv {
		panic(fmt.Sprintf("record: unit [%d][%d] out of range", civ, slot))
	}
	return civ*UnitsPerCiv + slot
}

// City returns the raw record of city slot i.
func (r *Record) City(i int) CityRecord {
	checkCity(i)
	var c CityRecord
	bytes.StructFromBytes(r.Item(Cities, CityRecordSize, i), &c)
	return c
}

// SetCity overwrites city slot i.
func (r *Record) SetCity(i int, c CityRecord) {
	checkCity(i)
	b, _ := bytes.BytesFromStruct(c)
	r.SetItem(Cities, i, b)
}

// ClearCity marks city slot i as unused.
func (r *Record) ClearCity(i int) {
	r.SetCity(i, UnusedCity())
}

// Unit returns the raw record of unit slot [civ][slot].
func (r *Record) Unit(civ, slot int) UnitRecord {
	var u UnitRecord
	bytes.StructFromBytes(r.Item(Units, UnitRecordSize, unitIndex(civ, slot)), &u)
	return u
}

// SetUnit overwrites unit slot [civ][slot].
func (r *Record) SetUnit(civ, slot int, u UnitRecord) {
	b, _ := bytes.BytesFromStruct(u)
	r.SetItem(Units, unitIndex(civ, slot), b)
}

// ClearUnit marks unit slot [civ][slot] as unused.
func (r *Record) ClearUnit(civ, slot int) {
	r.SetUnit(civ, slot, UnusedUnit())
}
