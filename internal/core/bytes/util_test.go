package bytes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeFixedString(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
		want string
	}{
		{
			name: "nul padded",
			b:    []byte{'R', 'o', 'm', 'a', 'n', 's', 0, 0, 0, 0, 0, 0},
			want: "Romans",
		},
		{
			name: "trailing whitespace",
			b:    []byte{'Z', 'u', 'l', 'u', ' ', ' ', 0, 0},
			want: "Zulu",
		},
		{
			name: "garbage after terminator",
			b:    []byte{'M', 'a', 'o', 0, 'x', 'y', 'z'},
			want: "Mao",
		},
		{
			name: "empty slot",
			b:    make([]byte, 14),
			want: "",
		},
		{
			name: "code page 437 characters",
			b:    []byte{'M', 0x81, 'n', 'c', 'h', 'e', 'n', 0},
			want: "München",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeFixedString(tt.b); got != tt.want {
				t.Errorf("DecodeFixedString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeFixedString(t *testing.T) {
	tests := []struct {
		name  string
		str   string
		width int
		want  []byte
	}{
		{
			name:  "pads with nul",
			str:   "Lincoln",
			width: 10,
			want:  []byte{'L', 'i', 'n', 'c', 'o', 'l', 'n', 0, 0, 0},
		},
		{
			name:  "truncates long names",
			str:   "Montezuma",
			width: 4,
			want:  []byte{'M', 'o', 'n', 't'},
		},
		{
			name:  "encodes code page 437",
			str:   "ü",
			width: 2,
			want:  []byte{0x81, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeFixedString(tt.str, tt.width)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("EncodeFixedString() mismatch, diff:\n%s", diff)
			}
			if back := DecodeFixedString(got); len(tt.str) <= tt.width && back != tt.str {
				t.Errorf("DecodeFixedString(EncodeFixedString(%q)) = %q", tt.str, back)
			}
		})
	}
}

type testRecord struct {
	Mask  [4]byte
	X     uint8
	Y     uint8
	Stock uint16
}

func TestStructConversions(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x34, 0x12}

	var rec testRecord
	StructFromBytes(raw, &rec)

	want := testRecord{Mask: [4]byte{1, 2, 4, 8}, X: 0x10, Y: 0x20, Stock: 0x1234}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("record did not match expected, diff:\n%s", diff)
	}

	converted, n := BytesFromStruct(rec)
	if n != len(raw) || n != StructSize(rec) {
		t.Errorf("expected %d bytes, got = %v", len(raw), n)
	}
	if diff := cmp.Diff(raw, converted); diff != "" {
		t.Errorf("expected converted record to match original. diff:\n%s", diff)
	}
}
