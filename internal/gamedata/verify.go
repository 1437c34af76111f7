package gamedata

import (
	"fmt"

	"github.com/go-test/deep"
)

// Verify re-encodes every domain value of s into a fresh save, decodes that
// again and reports the differences between the two states. A clean round trip
// returns no differences. Reserved regions aren't part of the state and are not
// compared.
func Verify(s *Save) ([]string, error) {
	before := s.State()

	w := New(WithLogger(s.log))
	if err := w.Apply(before); err != nil {
		return nil, fmt.Errorf("re-encoding: %w", err)
	}
	r, err := Load(w.Bytes(), WithLogger(s.log))
	if err != nil {
		return nil, fmt.Errorf("reloading: %w", err)
	}

	return deep.Equal(before, r.State()), nil
}
