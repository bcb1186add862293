package tlv

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/moov-io/bertlv"
)

// WriteStructFields appends one report line per populated byte-slice field of
// s, followed by one line per unknown packet. Lines are separated by newlines
// with no trailing newline; a separating newline is written first when sb
// already holds content. Nil pointers and structs with nothing to report leave
// sb untouched.
func WriteStructFields(sb *strings.Builder, prefix string, s interface{}) {
	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}

	var lines []string
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		sf := val.Type().Field(i)

		switch {
		case isByteSlice(field):
			if field.Len() == 0 {
				continue
			}
			lines = append(lines, fmt.Sprintf("    - %s.%s: %s", prefix, fieldLabel(sf), FormatBytes(field.Bytes(), sf.Tag.Get("fmt"))))
		case field.Type() == reflect.TypeOf([]bertlv.TLV(nil)):
			for _, p := range field.Interface().([]bertlv.TLV) {
				lines = append(lines, fmt.Sprintf("    - %s.Unknown Tag %s: %X", prefix, p.Tag, p.Value))
			}
		}
	}

	if len(lines) == 0 {
		return
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Join(lines, "\n"))
}

func fieldLabel(sf reflect.StructField) string {
	if tag := sf.Tag.Get("tlv"); tag != "" {
		return fmt.Sprintf("%s (%s)", sf.Name, tag)
	}
	return sf.Name
}

// FormatBytes renders data as upper-case hex, decorated according to format:
// "ascii" appends a quoted printable rendering, "int" appends the big-endian
// decimal value.
func FormatBytes(data []byte, format string) string {
	switch format {
	case "ascii":
		return fmt.Sprintf("%X (%q)", data, MakeSafeASCII(data))
	case "int":
		var n uint64
		for _, b := range data {
			n = n<<8 | uint64(b)
		}
		return fmt.Sprintf("%X (Dec: %d)", data, n)
	default:
		return fmt.Sprintf("%X", data)
	}
}

// MakeSafeASCII replaces every byte outside the printable ASCII range with '.'.
func MakeSafeASCII(data []byte) string {
	out := make([]byte, len(data))
	for i, b := range data {
		if b < 0x20 || b > 0x7E {
			b = '.'
		}
		out[i] = b
	}
	return string(out)
}
