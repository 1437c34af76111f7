package tiles

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTableCoversCityRadius(t *testing.T) {
	offsets := Offsets()
	if len(offsets) != 20 {
		t.Fatalf("expected 20 offsets, got %d", len(offsets))
	}

	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			corner := (dx == 2 || dx == -2) && (dy == 2 || dy == -2)
			center := dx == 0 && dy == 0
			want := !corner && !center
			if got := InRadius(Offset{dx, dy}); got != want {
				t.Errorf("InRadius(%d,%d) = %v, want %v", dx, dy, got, want)
			}
		}
	}
}

func TestEncodeTilesSingleBitPerOffset(t *testing.T) {
	seen := make(map[[MaskSize]byte]Offset)
	for _, off := range Offsets() {
		mask := EncodeTiles([]Offset{off})

		bits := 0
		for _, b := range mask {
			for ; b != 0; b &= b - 1 {
				bits++
			}
		}
		if bits != 1 {
			t.Errorf("EncodeTiles(%v) set %d bits, want 1", off, bits)
		}
		if other, ok := seen[mask]; ok {
			t.Errorf("offsets %v and %v share the same bit", off, other)
		}
		seen[mask] = off

		if mask[3] != 0 || mask[4] != 0 || mask[5] != 0 {
			t.Errorf("EncodeTiles(%v) used the unused bytes: %v", off, mask)
		}
		if mask[2]&0xF0 != 0 {
			t.Errorf("EncodeTiles(%v) used the high nibble of byte 2: %v", off, mask)
		}
	}
}

func TestEncodeTiles(t *testing.T) {
	tests := []struct {
		name    string
		offsets []Offset
		want    [MaskSize]byte
	}{
		{
			name:    "no worked tiles",
			offsets: nil,
			want:    [MaskSize]byte{},
		},
		{
			name:    "one tile per ring",
			offsets: []Offset{{0, -1}, {2, 0}, {-2, -1}},
			want:    [MaskSize]byte{0x01, 0x04, 0x08, 0, 0, 0},
		},
		{
			name:    "positions that used to collide",
			offsets: []Offset{{1, -1}, {2, -1}},
			want:    [MaskSize]byte{0x02, 0x00, 0x01, 0, 0, 0},
		},
		{
			name:    "entire radius",
			offsets: Offsets(),
			want:    [MaskSize]byte{0xFF, 0xFF, 0x0F, 0, 0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeTiles(tt.offsets)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("EncodeTiles() mismatch, diff:\n%s", diff)
			}
		})
	}
}

func TestDecodeTiles(t *testing.T) {
	got := DecodeTiles([MaskSize]byte{0x01, 0x04, 0x08, 0, 0, 0})
	want := []Offset{{0, -1}, {2, 0}, {-2, -1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeTiles() mismatch, diff:\n%s", diff)
	}

	// Bits that don't map to a tile are not reported.
	got = DecodeTiles([MaskSize]byte{0, 0, 0xF0, 0xFF, 0xFF, 0xFF})
	if len(got) != 0 {
		t.Errorf("DecodeTiles() of unassigned bits = %v, want none", got)
	}
}

func TestTilesRoundTrip(t *testing.T) {
	sets := [][]Offset{
		{},
		{{1, -1}, {2, -1}},
		{{0, -1}, {1, 1}, {0, 2}, {-2, 1}},
		Offsets(),
	}
	for _, offsets := range sets {
		got := DecodeTiles(EncodeTiles(offsets))
		if diff := cmp.Diff(offsets, got); diff != "" {
			t.Errorf("round trip of %v mismatch, diff:\n%s", offsets, diff)
		}
	}
}

func TestEncodeTilesPanicsOutsideRadius(t *testing.T) {
	for _, off := range []Offset{{0, 0}, {2, 2}, {-2, 2}, {3, 0}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("EncodeTiles(%v) did not panic", off)
				}
			}()
			EncodeTiles([]Offset{off})
		}()
	}
}

func TestEncodeSpecialists(t *testing.T) {
	tests := []struct {
		name  string
		roles []Specialist
		want  [RosterSize]byte
	}{
		{
			name:  "empty roster",
			roles: nil,
			want:  [RosterSize]byte{0, 0},
		},
		{
			name:  "taxman and entertainer",
			roles: []Specialist{Taxman, Entertainer},
			want:  [RosterSize]byte{0x0D, 0x00},
		},
		{
			name:  "spans both bytes",
			roles: []Specialist{Scientist, Scientist, Scientist, Scientist, Taxman},
			want:  [RosterSize]byte{0xAA, 0x01},
		},
		{
			name: "truncated to eight",
			roles: []Specialist{
				Entertainer, Entertainer, Entertainer, Entertainer,
				Entertainer, Entertainer, Entertainer, Entertainer,
				Taxman, Taxman,
			},
			want: [RosterSize]byte{0xFF, 0xFF},
		},
		{
			name:  "empty slots are skipped",
			roles: []Specialist{NoSpecialist, Taxman, Specialist(9), Scientist},
			want:  [RosterSize]byte{0x09, 0x00},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeSpecialists(tt.roles)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("EncodeSpecialists() mismatch, diff:\n%s", diff)
			}
		})
	}
}

func TestDecodeSpecialists(t *testing.T) {
	tests := []struct {
		name   string
		roster [RosterSize]byte
		want   []Specialist
	}{
		{
			name:   "empty roster",
			roster: [RosterSize]byte{},
			want:   []Specialist{},
		},
		{
			name:   "taxman and entertainer",
			roster: [RosterSize]byte{0x0D, 0x00},
			want:   []Specialist{Taxman, Entertainer},
		},
		{
			name:   "gaps are not roles",
			roster: [RosterSize]byte{0x30, 0x80},
			want:   []Specialist{Entertainer, Scientist},
		},
		{
			name:   "full roster",
			roster: [RosterSize]byte{0xFF, 0xFF},
			want: []Specialist{
				Entertainer, Entertainer, Entertainer, Entertainer,
				Entertainer, Entertainer, Entertainer, Entertainer,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeSpecialists(tt.roster)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DecodeSpecialists() mismatch, diff:\n%s", diff)
			}
			if len(got) > MaxSpecialists {
				t.Errorf("DecodeSpecialists() returned %d roles", len(got))
			}
		})
	}
}

func TestCityScenario(t *testing.T) {
	worked := []Offset{{0, -1}, {2, 0}, {-2, -1}}
	roles := []Specialist{Taxman, Entertainer}

	mask := EncodeTiles(worked)
	roster := EncodeSpecialists(roles)

	if roster != [RosterSize]byte{0x0D, 0x00} {
		t.Errorf("roster = %#v, want 0b1101", roster)
	}
	if diff := cmp.Diff(worked, DecodeTiles(mask)); diff != "" {
		t.Errorf("worked tiles mismatch, diff:\n%s", diff)
	}
	if diff := cmp.Diff(roles, DecodeSpecialists(roster)); diff != "" {
		t.Errorf("specialists mismatch, diff:\n%s", diff)
	}
}
