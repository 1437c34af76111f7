// Package gamedata presents a save file body in the game's own vocabulary:
// turns, civilizations, cities, units and the replay log.
//
// A Save returned by Load is a read-only view of an existing file and all of its
// setters fail with ErrReadOnly. A Save returned by New starts from an empty
// record and is the one used to write a game out.
package gamedata

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/openciv1/civsave/internal/bitfield"
	"github.com/openciv1/civsave/internal/record"
)

const (
	NumCivs     = record.NumCivs
	MaxCities   = record.MaxCities
	UnitsPerCiv = record.UnitsPerCiv
	NumWonders  = record.NumWonders
	MapWidth    = record.MapWidth
	MapHeight   = record.MapHeight

	// NumAdvanceBits is the size of the discovered advance vector of a civ.
	NumAdvanceBits = record.AdvanceBytes * 8
	// None is used by references to cities and units that point nowhere.
	None = record.Unused
)

var (
	// ErrReadOnly is returned by every setter of a loaded save.
	ErrReadOnly = errors.New("save is read-only")
	// ErrInvalidRecord is returned when a city or unit can't be represented
	// in the save format.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrInvalidIndex is returned when a civ, city, unit or map index is out of range.
	ErrInvalidIndex = errors.New("index out of range")
)

// Save is a domain view over a single save file body. It is not safe for
// concurrent use.
type Save struct {
	rec      *record.Record
	readOnly bool
	log      logrus.FieldLogger
}

// Option configures a Save.
type Option func(*Save)

// WithLogger sets the logger that receives decoding diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Save) {
		s.log = l
	}
}

// Load parses a save file body. The returned Save is read-only.
func Load(b []byte, opts ...Option) (*Save, error) {
	rec, err := record.FromBytes(b)
	if err != nil {
		return nil, err
	}
	return newSave(rec, true, opts), nil
}

// New returns a writable Save over an empty record.
func New(opts ...Option) *Save {
	return newSave(record.New(), false, opts)
}

func newSave(rec *record.Record, readOnly bool, opts []Option) *Save {
	s := &Save{rec: rec, readOnly: readOnly, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadOnly reports whether the save was loaded from an existing file.
func (s *Save) ReadOnly() bool {
	return s.readOnly
}

// Bytes returns a copy of the save file body.
func (s *Save) Bytes() []byte {
	return s.rec.Bytes()
}

func (s *Save) checkWritable(op string) error {
	if s.readOnly {
		return fmt.Errorf("%s: %w", op, ErrReadOnly)
	}
	return nil
}

func checkCiv(civ int) error {
	if civ < 0 || civ >= NumCivs {
		return fmt.Errorf("%w: civ %d", ErrInvalidIndex, civ)
	}
	return nil
}

// Turn returns the number of turns played.
func (s *Save) Turn() uint16 {
	return s.rec.Uint16(record.Turn)
}

func (s *Save) SetTurn(turn uint16) error {
	return s.setUint16("SetTurn", record.Turn, turn)
}

// HumanPlayer returns the civ controlled by the player.
func (s *Save) HumanPlayer() uint16 {
	return s.rec.Uint16(record.HumanPlayer)
}

func (s *Save) SetHumanPlayer(civ uint16) error {
	return s.setUint16("SetHumanPlayer", record.HumanPlayer, civ)
}

// RandomSeed returns the seed of the game's random number generator.
func (s *Save) RandomSeed() uint16 {
	return s.rec.Uint16(record.RandomSeed)
}

func (s *Save) SetRandomSeed(seed uint16) error {
	return s.setUint16("SetRandomSeed", record.RandomSeed, seed)
}

// Year returns the game year; negative years are BC.
func (s *Save) Year() int16 {
	return int16(s.rec.Uint16(record.Year))
}

func (s *Save) SetYear(year int16) error {
	return s.setUint16("SetYear", record.Year, uint16(year))
}

// Difficulty returns the difficulty level, 0 (Chieftain) to 4 (Emperor).
func (s *Save) Difficulty() uint16 {
	return s.rec.Uint16(record.Difficulty)
}

func (s *Save) SetDifficulty(level uint16) error {
	return s.setUint16("SetDifficulty", record.Difficulty, level)
}

// Competition returns the number of civilizations the game was started with.
func (s *Save) Competition() uint16 {
	return s.rec.Uint16(record.Competition)
}

func (s *Save) SetCompetition(civs uint16) error {
	return s.setUint16("SetCompetition", record.Competition, civs)
}

// GlobalWarming returns the number of global warming events so far.
func (s *Save) GlobalWarming() uint16 {
	return s.rec.Uint16(record.GlobalWarming)
}

func (s *Save) SetGlobalWarming(n uint16) error {
	return s.setUint16("SetGlobalWarming", record.GlobalWarming, n)
}

// PollutedTiles returns the number of polluted tiles on the map.
func (s *Save) PollutedTiles() uint16 {
	return s.rec.Uint16(record.PollutedTiles)
}

func (s *Save) SetPollutedTiles(n uint16) error {
	return s.setUint16("SetPollutedTiles", record.PollutedTiles, n)
}

func (s *Save) setUint16(op string, f record.Field, v uint16) error {
	if err := s.checkWritable(op); err != nil {
		return err
	}
	s.rec.SetUint16(f, v)
	return nil
}

// HumanCivs returns which civs are controlled by a player.
func (s *Save) HumanCivs() bitfield.Flags {
	return s.flags(record.HumanCivs)
}

func (s *Save) SetHumanCivs(f bitfield.Flags) error {
	return s.setFlags("SetHumanCivs", record.HumanCivs, f)
}

// ActiveCivs returns which civs are still in the game.
func (s *Save) ActiveCivs() bitfield.Flags {
	return s.flags(record.ActiveCivs)
}

func (s *Save) SetActiveCivs(f bitfield.Flags) error {
	return s.setFlags("SetActiveCivs", record.ActiveCivs, f)
}

// Game option flags.
const (
	OptionInstantAdvice = iota
	OptionAutosave
	OptionEndOfTurn
	OptionAnimations
	OptionSound
	OptionEnemyMoves
	OptionCivilopediaText
	OptionPalace
)

// GameOptions returns the game option flags, indexed by the Option constants.
func (s *Save) GameOptions() bitfield.Flags {
	return s.flags(record.GameOptions)
}

func (s *Save) SetGameOptions(f bitfield.Flags) error {
	return s.setFlags("SetGameOptions", record.GameOptions, f)
}

// Flag words keep their flags in the low byte.
func (s *Save) flags(f record.Field) bitfield.Flags {
	return bitfield.DecodeFlags(s.rec.Get(f)[0])
}

func (s *Save) setFlags(op string, f record.Field, flags bitfield.Flags) error {
	if err := s.checkWritable(op); err != nil {
		return err
	}
	b := s.rec.Get(f)
	b[0] = bitfield.EncodeFlags(flags)
	s.rec.Set(f, b)
	return nil
}
