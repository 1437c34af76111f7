package gamedata

import (
	"fmt"

	"github.com/openciv1/civsave/internal/bitfield"
	"github.com/openciv1/civsave/internal/record"
)

// Unit status flags.
const (
	UnitSentried = iota
	UnitBuildingRoad
	UnitFortifying
	UnitFortified
	UnitIrrigating
	UnitVeteran
	UnitMining
	UnitClearingPollution
)

// Unit is an occupied unit slot.
type Unit struct {
	Status bitfield.Flags
	X, Y   uint8
	Type   uint8
	// Moves is the number of whole moves left this turn, PartialMoves the
	// remaining thirds of a move.
	Moves        uint8
	PartialMoves uint8
	// Fuel holds the turns of fuel left for air units and the work progress of
	// settlers.
	Fuel         uint8
	GotoX, GotoY uint8
	// VisibleTo holds the civs that can currently see the unit.
	VisibleTo   bitfield.Flags
	NextInStack uint8
	HomeCity    uint8
}

// HasGoto reports whether the unit is travelling to a destination.
func (u *Unit) HasGoto() bool {
	return u.GotoX != None
}

func unitFromRecord(r record.UnitRecord) *Unit {
	return &Unit{
		Status:       bitfield.DecodeFlags(r.Status),
		X:            r.X,
		Y:            r.Y,
		Type:         r.Type,
		Moves:        r.Moves,
		PartialMoves: r.PartialMoves,
		Fuel:         r.Fuel,
		GotoX:        r.GotoX,
		GotoY:        r.GotoY,
		VisibleTo:    bitfield.DecodeFlags(r.Visibility),
		NextInStack:  r.NextInStack,
		HomeCity:     r.HomeCity,
	}
}

func (u *Unit) toRecord() (record.UnitRecord, error) {
	if u.Type == record.Unused {
		return record.UnitRecord{}, fmt.Errorf("%w: unit type 0x%02X marks an empty slot", ErrInvalidRecord, u.Type)
	}
	return record.UnitRecord{
		Status:       bitfield.EncodeFlags(u.Status),
		X:            u.X,
		Y:            u.Y,
		Type:         u.Type,
		Moves:        u.Moves,
		Fuel:         u.Fuel,
		GotoX:        u.GotoX,
		GotoY:        u.GotoY,
		PartialMoves: u.PartialMoves,
		Visibility:   bitfield.EncodeFlags(u.VisibleTo),
		NextInStack:  u.NextInStack,
		HomeCity:     u.HomeCity,
	}, nil
}

func checkUnit(civ, slot int) error {
	if err := checkCiv(civ); err != nil {
		return err
	}
	if slot < 0 || slot >= UnitsPerCiv {
		return fmt.Errorf("%w: unit slot %d", ErrInvalidIndex, slot)
	}
	return nil
}

// Unit returns the unit in slot [civ][slot], or nil if the slot is empty.
func (s *Save) Unit(civ, slot int) *Unit {
	u := s.rec.Unit(civ, slot)
	if u.Unused() {
		return nil
	}
	return unitFromRecord(u)
}

// Units returns every unit slot, indexed by civ then slot; empty slots are nil.
func (s *Save) Units() [NumCivs][UnitsPerCiv]*Unit {
	var units [NumCivs][UnitsPerCiv]*Unit
	for civ := range units {
		for slot := range units[civ] {
			units[civ][slot] = s.Unit(civ, slot)
		}
	}
	return units
}

// SetUnit stores u in slot [civ][slot]. A nil unit empties the slot.
func (s *Save) SetUnit(civ, slot int, u *Unit) error {
	if err := s.checkWritable("SetUnit"); err != nil {
		return err
	}
	if err := checkUnit(civ, slot); err != nil {
		return err
	}
	if u == nil {
		s.rec.ClearUnit(civ, slot)
		return nil
	}

	r, err := u.toRecord()
	if err != nil {
		return fmt.Errorf("unit [%d][%d]: %w", civ, slot, err)
	}
	s.rec.SetUnit(civ, slot, r)
	return nil
}

// SetUnits replaces every unit slot. Nothing is written if any unit is invalid.
func (s *Save) SetUnits(units [NumCivs][UnitsPerCiv]*Unit) error {
	if err := s.checkWritable("SetUnits"); err != nil {
		return err
	}
	var records [NumCivs][UnitsPerCiv]record.UnitRecord
	for civ := range units {
		for slot, u := range units[civ] {
			if u == nil {
				records[civ][slot] = record.UnusedUnit()
				continue
			}
			r, err := u.toRecord()
			if err != nil {
				return fmt.Errorf("unit [%d][%d]: %w", civ, slot, err)
			}
			records[civ][slot] = r
		}
	}
	for civ := range records {
		for slot, r := range records[civ] {
			s.rec.SetUnit(civ, slot, r)
		}
	}
	return nil
}

// UnitCounts returns the number of occupied unit slots of every civ.
func (s *Save) UnitCounts() [NumCivs]int {
	var counts [NumCivs]int
	for civ := range counts {
		for slot := 0; slot < UnitsPerCiv; slot++ {
			if !s.rec.Unit(civ, slot).Unused() {
				counts[civ]++
			}
		}
	}
	return counts
}
