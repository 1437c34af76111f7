package gamedata

import (
	"fmt"

	"github.com/openciv1/civsave/internal/bitfield"
	"github.com/openciv1/civsave/internal/record"
	"github.com/openciv1/civsave/internal/tiles"
)

const (
	// MaxFortifiedUnits is the number of fortified units a city record keeps.
	MaxFortifiedUnits = 2
	// MaxTradePartners is the number of trade routes a city can have.
	MaxTradePartners = 3

	buildingBits = 32
)

// City status flags.
const (
	CityInDisorder = iota
	CityCelebrating
	CityHasCoast
	CityBuildingWonder
	CityHasRiver
	CityAutoBuild
	CityTechStolen
	CityImproved
)

// City is an occupied city slot.
type City struct {
	X, Y       uint8
	Status     bitfield.Flags
	Size       uint8
	Owner      uint8
	Production uint8
	Food       uint16
	Shields    uint16
	NameID     uint8
	// Buildings holds the ids of the city improvements present, ascending.
	Buildings   []int
	WorkedTiles []tiles.Offset
	Specialists []tiles.Specialist
	// FortifiedUnits holds the unit types fortified in the city.
	FortifiedUnits []uint8
	// TradePartners holds the indices of the cities this one trades with.
	TradePartners []uint8
}

func cityFromRecord(c record.CityRecord) *City {
	return &City{
		X:              c.X,
		Y:              c.Y,
		Status:         bitfield.DecodeFlags(c.Status),
		Size:           c.Size,
		Owner:          c.Owner,
		Production:     c.Production,
		Food:           c.Food,
		Shields:        c.Shields,
		NameID:         c.NameID,
		Buildings:      bitfield.DecodeBitIDs(c.Buildings[:], buildingBits),
		WorkedTiles:    tiles.DecodeTiles(c.WorkedTiles),
		Specialists:    tiles.DecodeSpecialists(c.Specialists),
		FortifiedUnits: references(c.FortifiedUnits[:]),
		TradePartners:  references(c.TradePartners[:]),
	}
}

func (c *City) toRecord() (record.CityRecord, error) {
	status := bitfield.EncodeFlags(c.Status)
	if status == record.Unused {
		return record.CityRecord{}, fmt.Errorf("%w: status 0x%02X marks an empty slot", ErrInvalidRecord, status)
	}
	for _, off := range c.WorkedTiles {
		if !tiles.InRadius(off) {
			return record.CityRecord{}, fmt.Errorf("%w: worked tile %s is outside the city radius", ErrInvalidRecord, off)
		}
	}

	r := record.CityRecord{
		X:           c.X,
		Y:           c.Y,
		Status:      status,
		Size:        c.Size,
		Production:  c.Production,
		Owner:       c.Owner,
		Food:        c.Food,
		Shields:     c.Shields,
		WorkedTiles: tiles.EncodeTiles(c.WorkedTiles),
		Specialists: tiles.EncodeSpecialists(c.Specialists),
		NameID:      c.NameID,
	}
	copy(r.Buildings[:], bitfield.EncodeBitIDs(c.Buildings, len(r.Buildings)))

	if err := putReferences(r.FortifiedUnits[:], c.FortifiedUnits); err != nil {
		return record.CityRecord{}, fmt.Errorf("fortified units: %w", err)
	}
	if err := putReferences(r.TradePartners[:], c.TradePartners); err != nil {
		return record.CityRecord{}, fmt.Errorf("trade partners: %w", err)
	}
	return r, nil
}

// references returns the entries of a sentinel-terminated list.
func references(b []uint8) []uint8 {
	refs := []uint8{}
	for _, v := range b {
		if v != None {
			refs = append(refs, v)
		}
	}
	return refs
}

func putReferences(dst []uint8, refs []uint8) error {
	if len(refs) > len(dst) {
		return fmt.Errorf("%w: %d entries, room for %d", ErrInvalidRecord, len(refs), len(dst))
	}
	for i := range dst {
		dst[i] = None
	}
	for i, v := range refs {
		if v == None {
			return fmt.Errorf("%w: entry %d is the empty marker", ErrInvalidRecord, i)
		}
		dst[i] = v
	}
	return nil
}

func checkCity(i int) error {
	if i < 0 || i >= MaxCities {
		return fmt.Errorf("%w: city %d", ErrInvalidIndex, i)
	}
	return nil
}

// City returns the city in slot i, or nil if the slot is empty.
func (s *Save) City(i int) *City {
	c := s.rec.City(i)
	if c.Unused() {
		return nil
	}
	return cityFromRecord(c)
}

// Cities returns every city slot; empty slots are nil.
func (s *Save) Cities() [MaxCities]*City {
	var cities [MaxCities]*City
	for i := range cities {
		cities[i] = s.City(i)
	}
	return cities
}

// SetCity stores c in slot i. A nil city empties the slot.
func (s *Save) SetCity(i int, c *City) error {
	if err := s.checkWritable("SetCity"); err != nil {
		return err
	}
	if err := checkCity(i); err != nil {
		return err
	}
	if c == nil {
		s.rec.ClearCity(i)
		return nil
	}

	r, err := c.toRecord()
	if err != nil {
		return fmt.Errorf("city %d: %w", i, err)
	}
	s.rec.SetCity(i, r)
	return nil
}

// SetCities replaces every city slot. Nothing is written if any city is invalid.
func (s *Save) SetCities(cities [MaxCities]*City) error {
	if err := s.checkWritable("SetCities"); err != nil {
		return err
	}
	records := make([]record.CityRecord, MaxCities)
	for i, c := range cities {
		if c == nil {
			records[i] = record.UnusedCity()
			continue
		}
		r, err := c.toRecord()
		if err != nil {
			return fmt.Errorf("city %d: %w", i, err)
		}
		records[i] = r
	}
	for i, r := range records {
		s.rec.SetCity(i, r)
	}
	return nil
}
