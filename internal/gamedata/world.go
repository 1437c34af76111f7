package gamedata

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/openciv1/civsave/internal/bitfield"
	"github.com/openciv1/civsave/internal/record"
	"github.com/openciv1/civsave/internal/replay"
)

// The visibility map is stored column by column, one byte per tile.
func visibilityIndex(x, y int) (int, error) {
	if x < 0 || x >= MapWidth || y < 0 || y >= MapHeight {
		return 0, fmt.Errorf("%w: tile (%d,%d)", ErrInvalidIndex, x, y)
	}
	return x*MapHeight + y, nil
}

// Visibility returns the civs that have seen the tile at x, y. Coordinates
// outside the map panic.
func (s *Save) Visibility(x, y int) bitfield.Flags {
	i, err := visibilityIndex(x, y)
	if err != nil {
		panic(err.Error())
	}
	return bitfield.DecodeFlags(s.rec.Item(record.Visibility, 1, i)[0])
}

// SetVisibility records which civs have seen the tile at x, y.
func (s *Save) SetVisibility(x, y int, civs bitfield.Flags) error {
	if err := s.checkWritable("SetVisibility"); err != nil {
		return err
	}
	i, err := visibilityIndex(x, y)
	if err != nil {
		return err
	}
	s.rec.SetItem(record.Visibility, i, []byte{bitfield.EncodeFlags(civs)})
	return nil
}

// VisibilityMap returns the visibility flags of every tile, indexed [x][y].
func (s *Save) VisibilityMap() [MapWidth][MapHeight]bitfield.Flags {
	var m [MapWidth][MapHeight]bitfield.Flags
	raw := s.rec.Get(record.Visibility)
	for x := range m {
		for y := range m[x] {
			m[x][y] = bitfield.DecodeFlags(raw[x*MapHeight+y])
		}
	}
	return m
}

// SetVisibilityMap replaces the visibility flags of every tile.
func (s *Save) SetVisibilityMap(m [MapWidth][MapHeight]bitfield.Flags) error {
	if err := s.checkWritable("SetVisibilityMap"); err != nil {
		return err
	}
	raw := make([]byte, record.Visibility.Length)
	for x := range m {
		for y := range m[x] {
			raw[x*MapHeight+y] = bitfield.EncodeFlags(m[x][y])
		}
	}
	s.rec.Set(record.Visibility, raw)
	return nil
}

// VisibilityGrid returns the tiles civ has seen, indexed [x][y].
func (s *Save) VisibilityGrid(civ int) [MapWidth][MapHeight]bool {
	if err := checkCiv(civ); err != nil {
		panic(err.Error())
	}
	var grid [MapWidth][MapHeight]bool
	raw := s.rec.Get(record.Visibility)
	for x := range grid {
		for y := range grid[x] {
			grid[x][y] = raw[x*MapHeight+y]&(1<<uint(civ)) != 0
		}
	}
	return grid
}

// ReplayLog decodes the replay log. When the log can't be read to the end the
// entries before the problem are returned along with the error.
func (s *Save) ReplayLog() ([]replay.Entry, error) {
	length := int(s.rec.Uint16(record.ReplayLength))
	if length > replay.MaxLogSize {
		s.log.WithFields(logrus.Fields{
			"length":   length,
			"capacity": replay.MaxLogSize,
		}).Warn("replay length exceeds the log buffer, truncating")
		length = replay.MaxLogSize
	}
	return replay.Decode(s.rec.Get(record.Replay)[:length])
}

// Replay returns the replay log. Replay data is only historical so a log that
// can't be fully decoded is reported as a warning and what could be read is
// returned.
func (s *Save) Replay() []replay.Entry {
	entries, err := s.ReplayLog()
	if err != nil {
		s.log.WithError(err).WithField("entries", len(entries)).Warn("replay log decoding stopped early")
	}
	return entries
}

// SetReplay encodes entries into the replay log.
func (s *Save) SetReplay(entries []replay.Entry) error {
	if err := s.checkWritable("SetReplay"); err != nil {
		return err
	}
	log, err := replay.Encode(entries)
	if err != nil {
		return fmt.Errorf("encoding replay: %w", err)
	}
	buf := make([]byte, record.Replay.Length)
	copy(buf, log)
	s.rec.Set(record.Replay, buf)
	s.rec.SetUint16(record.ReplayLength, uint16(len(log)))
	return nil
}
