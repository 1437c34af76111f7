package record

// Unused is the sentinel that marks empty slots and absent references.
const Unused = 0xFF

// CityRecord is the raw layout of one of the 128 city slots. Fields are
// serialized in declaration order, little endian.
type CityRecord struct {
	Buildings      [4]byte
	X              uint8
	Y              uint8
	Status         uint8
	Size           uint8
	Production     uint8
	Owner          uint8
	Food           uint16
	Shields        uint16
	WorkedTiles    [6]byte
	Specialists    [2]byte
	NameID         uint8
	FortifiedUnits [2]uint8
	TradePartners  [3]uint8
}

// Unused reports whether the slot holds no city.
func (c CityRecord) Unused() bool {
	return c.Status == Unused
}

// UnusedCity returns the all-sentinel city slot.
func UnusedCity() CityRecord {
	return CityRecord{
		Buildings:      [4]byte{Unused, Unused, Unused, Unused},
		X:              Unused,
		Y:              Unused,
		Status:         Unused,
		Size:           Unused,
		Production:     Unused,
		Owner:          Unused,
		Food:           0xFFFF,
		Shields:        0xFFFF,
		WorkedTiles:    [6]byte{Unused, Unused, Unused, Unused, Unused, Unused},
		Specialists:    [2]byte{Unused, Unused},
		NameID:         Unused,
		FortifiedUnits: [2]uint8{Unused, Unused},
		TradePartners:  [3]uint8{Unused, Unused, Unused},
	}
}

// UnitRecord is the raw layout of one of the 128 unit slots of a civilization.
type UnitRecord struct {
	Status       uint8
	X            uint8
	Y            uint8
	Type         uint8
	Moves        uint8
	Fuel         uint8
	GotoX        uint8
	GotoY        uint8
	PartialMoves uint8
	Visibility   uint8
	NextInStack  uint8
	HomeCity     uint8
}

// Unused reports whether the slot holds no unit.
func (u UnitRecord) Unused() bool {
	return u.Type == Unused
}

// UnusedUnit returns the all-sentinel unit slot.
func UnusedUnit() UnitRecord {
	return UnitRecord{
		Status:       Unused,
		X:            Unused,
		Y:            Unused,
		Type:         Unused,
		Moves:        Unused,
		Fuel:         Unused,
		GotoX:        Unused,
		GotoY:        Unused,
		PartialMoves: Unused,
		Visibility:   Unused,
		NextInStack:  Unused,
		HomeCity:     Unused,
	}
}
