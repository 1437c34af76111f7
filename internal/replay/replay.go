// Package replay reads and writes the game's event log, the history that is
// played back on the end-of-game replay screen.
//
// The log is a sequence of variable-length entries. Every entry starts with a
// 2 byte header holding a 4 bit entry type and a 12 bit turn number:
//
//	byte 0: type<<4 | turn>>8
//	byte 1: turn & 0xFF
//
// and is followed by a payload whose length and shape depend only on the type.
package replay

import (
	"errors"
	"fmt"
)

const (
	// MaxLogSize is the capacity of the log buffer in the save file.
	MaxLogSize = 4096
	// MaxTurn is the largest turn number that fits in an entry header.
	MaxTurn = 0x0FFF
	// HeaderSize is the number of bytes taken by an entry header.
	HeaderSize = 2
)

var (
	// ErrTurnOutOfRange is returned when a turn doesn't fit in the 12 bit header.
	ErrTurnOutOfRange = errors.New("turn out of range")
	// ErrUnknownEntryType stops decoding at an entry whose type isn't known.
	ErrUnknownEntryType = errors.New("unknown replay entry type")
	// ErrTruncatedEntry stops decoding at an entry that runs past the end of the log.
	ErrTruncatedEntry = errors.New("truncated replay entry")
	// ErrFieldRange is returned when a payload value doesn't fit in its packed field.
	ErrFieldRange = errors.New("replay field out of range")
	// ErrLogFull is returned when the encoded log is larger than MaxLogSize.
	ErrLogFull = errors.New("replay log full")
)

// EntryType identifies the kind of event recorded in an entry.
type EntryType uint8

const (
	CityEventType         EntryType = 0x1
	WarDeclaredType       EntryType = 0x2
	PeaceMadeType         EntryType = 0x3
	AdvanceDiscoveredType EntryType = 0x5
	UnitFirstBuiltType    EntryType = 0x6
	GovernmentChangedType EntryType = 0x8
	CityCapturedType      EntryType = 0x9
	WonderBuiltType       EntryType = 0xA
	SummaryType           EntryType = 0xB
	RankingsType          EntryType = 0xC
	CivDestroyedType      EntryType = 0xD
)

var entryTypeNames = map[EntryType]string{
	CityEventType:         "CityEvent",
	WarDeclaredType:       "WarDeclared",
	PeaceMadeType:         "PeaceMade",
	AdvanceDiscoveredType: "AdvanceDiscovered",
	UnitFirstBuiltType:    "UnitFirstBuilt",
	GovernmentChangedType: "GovernmentChanged",
	CityCapturedType:      "CityCaptured",
	WonderBuiltType:       "WonderBuilt",
	SummaryType:           "Summary",
	RankingsType:          "Rankings",
	CivDestroyedType:      "CivDestroyed",
}

func (t EntryType) String() string {
	if name, ok := entryTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EntryType(0x%X)", uint8(t))
}

// Size returns the total length of an entry of type t, header included, or 0
// if t isn't a known type.
func Size(t EntryType) int {
	if d, ok := decoders[t]; ok {
		return d.size
	}
	return 0
}

// PackHeader builds the 2 byte header of an entry.
func PackHeader(t EntryType, turn int) ([HeaderSize]byte, error) {
	if turn < 0 || turn > MaxTurn {
		return [HeaderSize]byte{}, fmt.Errorf("%w: %d", ErrTurnOutOfRange, turn)
	}
	return [HeaderSize]byte{
		byte(t)<<4 | byte(turn>>8),
		byte(turn & 0xFF),
	}, nil
}

// UnpackHeader is the inverse of PackHeader.
func UnpackHeader(header [HeaderSize]byte) (EntryType, int) {
	return EntryType(header[0] >> 4), int(header[0]&0x0F)<<8 | int(header[1])
}

// Event is the type-specific payload of an entry.
type Event interface {
	EntryType() EntryType
	// marshal writes the payload into b, which has exactly the payload length.
	marshal(b []byte) error
}

// Entry is one record of the log.
type Entry struct {
	Turn  int
	Event Event
}

func (e Entry) String() string {
	return fmt.Sprintf("turn %d: %s %+v", e.Turn, e.Event.EntryType(), e.Event)
}

type decoder struct {
	size      int
	unmarshal func(payload []byte) Event
}

var decoders = map[EntryType]decoder{
	CityEventType:         {6, unmarshalCityEvent},
	WarDeclaredType:       {3, unmarshalWarDeclared},
	PeaceMadeType:         {3, unmarshalPeaceMade},
	AdvanceDiscoveredType: {4, unmarshalAdvanceDiscovered},
	UnitFirstBuiltType:    {4, unmarshalUnitFirstBuilt},
	GovernmentChangedType: {4, unmarshalGovernmentChanged},
	CityCapturedType:      {6, unmarshalCityCaptured},
	WonderBuiltType:       {4, unmarshalWonderBuilt},
	SummaryType:           {5, unmarshalSummary},
	RankingsType:          {6, unmarshalRankings},
	CivDestroyedType:      {4, unmarshalCivDestroyed},
}

// Encode serializes entries in order. The result is not padded to MaxLogSize.
func Encode(entries []Entry) ([]byte, error) {
	var log []byte
	for i, entry := range entries {
		if entry.Event == nil {
			return nil, fmt.Errorf("entry %d has no event", i)
		}
		t := entry.Event.EntryType()
		d, ok := decoders[t]
		if !ok {
			return nil, fmt.Errorf("entry %d: %w 0x%X", i, ErrUnknownEntryType, uint8(t))
		}

		header, err := PackHeader(t, entry.Turn)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		b := make([]byte, d.size)
		copy(b, header[:])
		if err := entry.Event.marshal(b[HeaderSize:]); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, t, err)
		}
		log = append(log, b...)
	}

	if len(log) > MaxLogSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrLogFull, len(log))
	}
	return log, nil
}

// Decode parses log until it has been consumed. Decoding stops at the first
// entry with an unknown type or that runs past the end of log; the entries read
// up to that point are returned together with the error.
func Decode(log []byte) ([]Entry, error) {
	entries := []Entry{}
	for offset := 0; offset < len(log); {
		if offset+HeaderSize > len(log) {
			return entries, fmt.Errorf("%w at offset %d", ErrTruncatedEntry, offset)
		}
		t, turn := UnpackHeader([HeaderSize]byte{log[offset], log[offset+1]})

		d, ok := decoders[t]
		if !ok {
			return entries, fmt.Errorf("%w 0x%X at offset %d", ErrUnknownEntryType, uint8(t), offset)
		}
		if offset+d.size > len(log) {
			return entries, fmt.Errorf("%w: %s at offset %d", ErrTruncatedEntry, t, offset)
		}

		entries = append(entries, Entry{
			Turn:  turn,
			Event: d.unmarshal(log[offset+HeaderSize : offset+d.size]),
		})
		offset += d.size
	}
	return entries, nil
}
