package replay

import (
	"encoding/binary"
	"fmt"
)

// DestroyedOwner is the owner recorded in a CityEvent for a city that was
// destroyed rather than founded.
const DestroyedOwner = 0xFF

// NumRanked is the number of civilizations listed in a Rankings entry.
const NumRanked = 8

// CityEvent records a city being founded or, when Owner is DestroyedOwner,
// destroyed.
type CityEvent struct {
	Owner    uint8
	CityName uint8
	X, Y     uint8
}

func (CityEvent) EntryType() EntryType { return CityEventType }

// Destroyed reports whether the event is the destruction of the city.
func (e CityEvent) Destroyed() bool { return e.Owner == DestroyedOwner }

func (e CityEvent) marshal(b []byte) error {
	b[0], b[1], b[2], b[3] = e.Owner, e.CityName, e.X, e.Y
	return nil
}

func unmarshalCityEvent(b []byte) Event {
	return CityEvent{Owner: b[0], CityName: b[1], X: b[2], Y: b[3]}
}

// WarDeclared records Declarer going to war with Target.
type WarDeclared struct {
	Declarer, Target uint8
}

func (WarDeclared) EntryType() EntryType { return WarDeclaredType }

func (e WarDeclared) marshal(b []byte) error {
	return packNibbles(b, e.Declarer, e.Target)
}

func unmarshalWarDeclared(b []byte) Event {
	declarer, target := unpackNibbles(b[0])
	return WarDeclared{Declarer: declarer, Target: target}
}

// PeaceMade records Maker signing a peace treaty with With.
type PeaceMade struct {
	Maker, With uint8
}

func (PeaceMade) EntryType() EntryType { return PeaceMadeType }

func (e PeaceMade) marshal(b []byte) error {
	return packNibbles(b, e.Maker, e.With)
}

func unmarshalPeaceMade(b []byte) Event {
	maker, with := unpackNibbles(b[0])
	return PeaceMade{Maker: maker, With: with}
}

// AdvanceDiscovered records a civilization learning an advance.
type AdvanceDiscovered struct {
	Civ, Advance uint8
}

func (AdvanceDiscovered) EntryType() EntryType { return AdvanceDiscoveredType }

func (e AdvanceDiscovered) marshal(b []byte) error {
	b[0], b[1] = e.Civ, e.Advance
	return nil
}

func unmarshalAdvanceDiscovered(b []byte) Event {
	return AdvanceDiscovered{Civ: b[0], Advance: b[1]}
}

// UnitFirstBuilt records the first unit of a type built by a civilization.
type UnitFirstBuilt struct {
	Civ, UnitType uint8
}

func (UnitFirstBuilt) EntryType() EntryType { return UnitFirstBuiltType }

func (e UnitFirstBuilt) marshal(b []byte) error {
	b[0], b[1] = e.Civ, e.UnitType
	return nil
}

func unmarshalUnitFirstBuilt(b []byte) Event {
	return UnitFirstBuilt{Civ: b[0], UnitType: b[1]}
}

// GovernmentChanged records a civilization adopting a new government.
type GovernmentChanged struct {
	Civ, Government uint8
}

func (GovernmentChanged) EntryType() EntryType { return GovernmentChangedType }

func (e GovernmentChanged) marshal(b []byte) error {
	b[0], b[1] = e.Civ, e.Government
	return nil
}

func unmarshalGovernmentChanged(b []byte) Event {
	return GovernmentChanged{Civ: b[0], Government: b[1]}
}

// CityCaptured records Civ taking the city at X, Y.
type CityCaptured struct {
	Civ      uint8
	CityName uint8
	X, Y     uint8
}

func (CityCaptured) EntryType() EntryType { return CityCapturedType }

func (e CityCaptured) marshal(b []byte) error {
	b[0], b[1], b[2], b[3] = e.Civ, e.CityName, e.X, e.Y
	return nil
}

func unmarshalCityCaptured(b []byte) Event {
	return CityCaptured{Civ: b[0], CityName: b[1], X: b[2], Y: b[3]}
}

// WonderBuilt records a civilization completing a wonder.
type WonderBuilt struct {
	Civ, Wonder uint8
}

func (WonderBuilt) EntryType() EntryType { return WonderBuiltType }

func (e WonderBuilt) marshal(b []byte) error {
	b[0], b[1] = e.Civ, e.Wonder
	return nil
}

func unmarshalWonderBuilt(b []byte) Event {
	return WonderBuilt{Civ: b[0], Wonder: b[1]}
}

// Summary is the periodic world snapshot. Population counts units of 10,000
// people and is stored big endian.
type Summary struct {
	CityCount  uint8
	Population uint16
}

func (Summary) EntryType() EntryType { return SummaryType }

// People returns the world population.
func (e Summary) People() int { return int(e.Population) * 10000 }

func (e Summary) marshal(b []byte) error {
	b[0] = e.CityCount
	binary.BigEndian.PutUint16(b[1:3], e.Population)
	return nil
}

func unmarshalSummary(b []byte) Event {
	return Summary{CityCount: b[0], Population: binary.BigEndian.Uint16(b[1:3])}
}

// Rankings lists the civilizations from first to last place.
type Rankings struct {
	Civs [NumRanked]uint8
}

func (Rankings) EntryType() EntryType { return RankingsType }

func (e Rankings) marshal(b []byte) error {
	for i := 0; i < NumRanked; i += 2 {
		if err := packNibbles(b[i/2:], e.Civs[i], e.Civs[i+1]); err != nil {
			return fmt.Errorf("rank %d: %w", i, err)
		}
	}
	return nil
}

func unmarshalRankings(b []byte) Event {
	var e Rankings
	for i := 0; i < NumRanked; i += 2 {
		e.Civs[i], e.Civs[i+1] = unpackNibbles(b[i/2])
	}
	return e
}

// CivDestroyed records Destroyed being wiped out by Destroyer.
type CivDestroyed struct {
	Destroyed, Destroyer uint8
}

func (CivDestroyed) EntryType() EntryType { return CivDestroyedType }

func (e CivDestroyed) marshal(b []byte) error {
	b[0], b[1] = e.Destroyed, e.Destroyer
	return nil
}

func unmarshalCivDestroyed(b []byte) Event {
	return CivDestroyed{Destroyed: b[0], Destroyer: b[1]}
}

// packNibbles stores hi and lo in the two halves of b[0].
func packNibbles(b []byte, hi, lo uint8) error {
	if hi > 0x0F || lo > 0x0F {
		return fmt.Errorf("%w: %d, %d do not fit in a nibble", ErrFieldRange, hi, lo)
	}
	b[0] = hi<<4 | lo
	return nil
}

func unpackNibbles(b byte) (hi, lo uint8) {
	return b >> 4, b & 0x0F
}
