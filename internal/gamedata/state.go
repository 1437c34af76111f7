package gamedata

import (
	"fmt"

	"github.com/openciv1/civsave/internal/bitfield"
	"github.com/openciv1/civsave/internal/replay"
)

// State is every domain value held by a save. The reserved regions of the file
// are not part of it.
type State struct {
	Turn          uint16
	HumanPlayer   uint16
	HumanCivs     bitfield.Flags
	RandomSeed    uint16
	Year          int16
	Difficulty    uint16
	ActiveCivs    bitfield.Flags
	Competition   uint16
	GameOptions   bitfield.Flags
	GlobalWarming uint16
	PollutedTiles uint16

	LeaderNames   [NumCivs]string
	CivNames      [NumCivs]string
	CivAdjectives [NumCivs]string
	CivStats      [numCivStats][NumCivs]uint16
	Advances      [NumCivs][]int
	Diplomacy     [NumCivs][NumCivs]uint16
	Wonders       [NumWonders]int

	Cities     [MaxCities]*City
	Units      [NumCivs][UnitsPerCiv]*Unit
	Visibility [MapWidth][MapHeight]bitfield.Flags
	Replay     []replay.Entry
}

// State decodes the whole save.
func (s *Save) State() *State {
	st := &State{
		Turn:          s.Turn(),
		HumanPlayer:   s.HumanPlayer(),
		HumanCivs:     s.HumanCivs(),
		RandomSeed:    s.RandomSeed(),
		Year:          s.Year(),
		Difficulty:    s.Difficulty(),
		ActiveCivs:    s.ActiveCivs(),
		Competition:   s.Competition(),
		GameOptions:   s.GameOptions(),
		GlobalWarming: s.GlobalWarming(),
		PollutedTiles: s.PollutedTiles(),
		LeaderNames:   s.LeaderNames(),
		CivNames:      s.CivNames(),
		CivAdjectives: s.CivAdjectives(),
		Diplomacy:     s.Diplomacy(),
		Wonders:       s.Wonders(),
		Cities:        s.Cities(),
		Units:         s.Units(),
		Visibility:    s.VisibilityMap(),
		Replay:        s.Replay(),
	}
	for _, stat := range CivStats() {
		st.CivStats[stat] = s.CivStat(stat)
	}
	for civ := range st.Advances {
		st.Advances[civ] = s.Advances(civ)
	}
	return st
}

// Apply writes every value of st into the save.
func (s *Save) Apply(st *State) error {
	if err := s.checkWritable("Apply"); err != nil {
		return err
	}

	setters := []func() error{
		func() error { return s.SetTurn(st.Turn) },
		func() error { return s.SetHumanPlayer(st.HumanPlayer) },
		func() error { return s.SetHumanCivs(st.HumanCivs) },
		func() error { return s.SetRandomSeed(st.RandomSeed) },
		func() error { return s.SetYear(st.Year) },
		func() error { return s.SetDifficulty(st.Difficulty) },
		func() error { return s.SetActiveCivs(st.ActiveCivs) },
		func() error { return s.SetCompetition(st.Competition) },
		func() error { return s.SetGameOptions(st.GameOptions) },
		func() error { return s.SetGlobalWarming(st.GlobalWarming) },
		func() error { return s.SetPollutedTiles(st.PollutedTiles) },
		func() error { return s.SetLeaderNames(st.LeaderNames) },
		func() error { return s.SetCivNames(st.CivNames) },
		func() error { return s.SetCivAdjectives(st.CivAdjectives) },
		func() error { return s.SetDiplomacy(st.Diplomacy) },
		func() error { return s.SetWonders(st.Wonders) },
		func() error { return s.SetCities(st.Cities) },
		func() error { return s.SetUnits(st.Units) },
		func() error { return s.SetVisibilityMap(st.Visibility) },
		func() error { return s.SetReplay(st.Replay) },
	}
	for _, stat := range CivStats() {
		stat := stat
		setters = append(setters, func() error { return s.SetCivStat(stat, st.CivStats[stat]) })
	}
	for civ := range st.Advances {
		civ := civ
		setters = append(setters, func() error { return s.SetAdvances(civ, st.Advances[civ]) })
	}

	for _, set := range setters {
		if err := set(); err != nil {
			return fmt.Errorf("applying state: %w", err)
		}
	}
	return nil
}
