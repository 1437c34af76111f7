package gamedata

import (
	"fmt"

	"github.com/openciv1/civsave/internal/bitfield"
	"github.com/openciv1/civsave/internal/record"
)

// CivStat names one of the per-civilization scalar arrays.
type CivStat int

const (
	Treasury CivStat = iota
	Beakers
	LuxuryRate
	TaxRate
	FutureTechs
	Government
	CityCount
	UnitCount
	LandCount
	SettlerCount
	TotalCitizens
	MilitaryPower
	Ranking
	CurrentResearch
	Score
	PeaceTurns

	numCivStats
)

var civStatFields = [numCivStats]record.Field{
	Treasury:        record.Treasury,
	Beakers:         record.Beakers,
	LuxuryRate:      record.LuxuryRate,
	TaxRate:         record.TaxRate,
	FutureTechs:     record.FutureTechs,
	Government:      record.Government,
	CityCount:       record.CityCount,
	UnitCount:       record.UnitCount,
	LandCount:       record.LandCount,
	SettlerCount:    record.SettlerCount,
	TotalCitizens:   record.TotalCitizens,
	MilitaryPower:   record.MilitaryPower,
	Ranking:         record.Ranking,
	CurrentResearch: record.CurrentResearch,
	Score:           record.Score,
	PeaceTurns:      record.PeaceTurns,
}

// CivStats lists every CivStat.
func CivStats() []CivStat {
	stats := make([]CivStat, numCivStats)
	for i := range stats {
		stats[i] = CivStat(i)
	}
	return stats
}

func (c CivStat) String() string {
	if c < 0 || c >= numCivStats {
		return fmt.Sprintf("CivStat(%d)", int(c))
	}
	return civStatFields[c].Name
}

// CivStat returns the value of stat for every civ.
func (s *Save) CivStat(stat CivStat) [NumCivs]uint16 {
	var values [NumCivs]uint16
	copy(values[:], s.rec.Uint16s(civStatFields[stat]))
	return values
}

func (s *Save) SetCivStat(stat CivStat, values [NumCivs]uint16) error {
	if err := s.checkWritable("SetCivStat"); err != nil {
		return err
	}
	if stat < 0 || stat >= numCivStats {
		return fmt.Errorf("%w: stat %d", ErrInvalidIndex, int(stat))
	}
	s.rec.SetUint16s(civStatFields[stat], values[:])
	return nil
}

// LeaderNames returns the name of every civ's leader.
func (s *Save) LeaderNames() [NumCivs]string {
	return s.names(record.LeaderNames, record.LeaderNameLength)
}

func (s *Save) SetLeaderNames(names [NumCivs]string) error {
	return s.setNames("SetLeaderNames", record.LeaderNames, record.LeaderNameLength, names)
}

// CivNames returns the plural name of every civ, e.g. "Romans".
func (s *Save) CivNames() [NumCivs]string {
	return s.names(record.CivNames, record.CivNameLength)
}

func (s *Save) SetCivNames(names [NumCivs]string) error {
	return s.setNames("SetCivNames", record.CivNames, record.CivNameLength, names)
}

// CivAdjectives returns the adjective of every civ, e.g. "Roman".
func (s *Save) CivAdjectives() [NumCivs]string {
	return s.names(record.CivAdjectives, record.CivAdjectiveLength)
}

func (s *Save) SetCivAdjectives(names [NumCivs]string) error {
	return s.setNames("SetCivAdjectives", record.CivAdjectives, record.CivAdjectiveLength, names)
}

func (s *Save) names(f record.Field, width int) [NumCivs]string {
	var names [NumCivs]string
	copy(names[:], s.rec.Strings(f, width, NumCivs))
	return names
}

func (s *Save) setNames(op string, f record.Field, width int, names [NumCivs]string) error {
	if err := s.checkWritable(op); err != nil {
		return err
	}
	s.rec.SetStrings(f, width, names[:])
	return nil
}

// Advances returns the ids of the advances civ has discovered, ascending.
func (s *Save) Advances(civ int) []int {
	return bitfield.DecodeBitIDs(s.rec.Item(record.Advances, record.AdvanceBytes, civ), NumAdvanceBits)
}

// SetAdvances replaces the discovered advances of civ. Ids that don't fit in the
// advance vector are ignored.
func (s *Save) SetAdvances(civ int, advances []int) error {
	if err := s.checkWritable("SetAdvances"); err != nil {
		return err
	}
	if err := checkCiv(civ); err != nil {
		return err
	}
	s.rec.SetItem(record.Advances, civ, bitfield.EncodeBitIDs(advances, record.AdvanceBytes))
	return nil
}

// Diplomacy returns the diplomatic status flags of every civ towards every other civ.
func (s *Save) Diplomacy() [NumCivs][NumCivs]uint16 {
	var d [NumCivs][NumCivs]uint16
	values := s.rec.Uint16s(record.Diplomacy)
	for civ := range d {
		copy(d[civ][:], values[civ*NumCivs:])
	}
	return d
}

func (s *Save) SetDiplomacy(d [NumCivs][NumCivs]uint16) error {
	if err := s.checkWritable("SetDiplomacy"); err != nil {
		return err
	}
	values := make([]uint16, 0, NumCivs*NumCivs)
	for civ := range d {
		values = append(values, d[civ][:]...)
	}
	s.rec.SetUint16s(record.Diplomacy, values)
	return nil
}

// NotBuilt is the city of a wonder nobody has built.
const NotBuilt = -1

const noWonderCity = 0xFFFF

// Wonders returns the index of the city holding each wonder, or NotBuilt.
// Wonder 0 doesn't exist and is always NotBuilt in files written by the game.
func (s *Save) Wonders() [NumWonders]int {
	var wonders [NumWonders]int
	for i, city := range s.rec.Uint16s(record.Wonders) {
		if city == noWonderCity {
			wonders[i] = NotBuilt
		} else {
			wonders[i] = int(city)
		}
	}
	return wonders
}

func (s *Save) SetWonders(wonders [NumWonders]int) error {
	if err := s.checkWritable("SetWonders"); err != nil {
		return err
	}
	values := make([]uint16, NumWonders)
	for i, city := range wonders {
		switch {
		case city == NotBuilt:
			values[i] = noWonderCity
		case city < 0 || city >= MaxCities:
			return fmt.Errorf("%w: wonder %d in city %d", ErrInvalidIndex, i, city)
		default:
			values[i] = uint16(city)
		}
	}
	s.rec.SetUint16s(record.Wonders, values)
	return nil
}
