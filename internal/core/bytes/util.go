package bytes

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DecodeFixedString converts a NUL padded, fixed-width CP437 slot into a UTF-8
// string. Everything from the first NUL onwards is discarded along with any
// trailing whitespace.
func DecodeFixedString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	decoded, err := charmap.CodePage437.NewDecoder().Bytes(b)
	if err != nil {
		// Every byte value has a CP437 mapping so this can't actually happen.
		decoded = b
	}
	return strings.TrimRightFunc(string(decoded), unicode.IsSpace)
}

// EncodeFixedString converts str to CP437 and returns it in a width-byte slot,
// truncated if it is too long and NUL padded otherwise. Runes that have no CP437
// representation are replaced.
func EncodeFixedString(str string, width int) []byte {
	slot := make([]byte, width)
	encoder := encoding.ReplaceUnsupported(charmap.CodePage437.NewEncoder())
	encoded, err := encoder.String(str)
	if err != nil {
		encoded = str
	}
	copy(slot, encoded)
	return slot
}

// BytesFromStruct serializes the fields of a struct to an array of bytes in the
// order in which the fields are declared and returns total number of bytes converted.
// Panics if data is not a struct or pointer to struct, or if there was an error writing a field.
func BytesFromStruct(data interface{}) ([]byte, int) {
	val := reflect.ValueOf(data)
	valKind := val.Kind()

	if valKind == reflect.Ptr {
		val = reflect.ValueOf(data).Elem()
		valKind = val.Kind()
	}

	if valKind != reflect.Struct {
		panic("BytesFromStruct(): data must of type struct " +
			"or ptr to struct, got: " + valKind.String())
	}

	convertedBytes := new(bytes.Buffer)
	// It's possible to use binary.Write on val.Interface itself, but doing
	// so prevents this function from working with nested record types.
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)

		var err error
		switch kind := field.Kind(); kind {
		case reflect.Struct, reflect.Ptr:
			b, _ := BytesFromStruct(field.Interface())
			err = binary.Write(convertedBytes, binary.LittleEndian, b)
		default:
			err = binary.Write(convertedBytes, binary.LittleEndian, field.Interface())
		}
		if err != nil {
			panic(err.Error())
		}
	}
	return convertedBytes.Bytes(), convertedBytes.Len()
}

// StructFromBytes populates the struct pointed to by targetStruct by reading in a
// stream of bytes and filling the values in sequential order.
func StructFromBytes(data []byte, targetStruct interface{}) {
	targetVal := reflect.ValueOf(targetStruct)

	if valKind := targetVal.Kind(); valKind != reflect.Ptr {
		panic("StructFromBytes(): targetStruct must be a " +
			"ptr to struct, got: " + valKind.String())
	}

	reader := bytes.NewReader(data)
	val := targetVal.Elem()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)

		var err error
		switch field.Kind() {
		case reflect.Ptr:
			err = binary.Read(reader, binary.LittleEndian, field.Interface())
		default:
			err = binary.Read(reader, binary.LittleEndian, field.Addr().Interface())
		}
		if err != nil {
			panic(err.Error())
		}
	}
}

// StructSize returns the number of bytes BytesFromStruct produces for v.
func StructSize(v interface{}) int {
	return binary.Size(v)
}
