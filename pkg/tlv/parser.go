// Package tlv maps BER-TLV (Basic Encoding Rules - Tag-Length-Value) data onto
// Go structures using struct tags.
//
// A field is bound to a tag with `tlv:"<hex tag>"`. A field of type
// []bertlv.TLV tagged `tlv:",unknown"` (or simply named Unknown) collects every
// packet that no other field consumed. Byte slices receive the raw value,
// strings receive the value as hex, or as text when the field also carries
// `fmt:"ascii"`. Nested structs and slices of structs are decoded recursively.
package tlv

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strings"

	"github.com/moov-io/bertlv"
)

// Unmarshaler allows custom types to implement their own TLV parsing logic.
type Unmarshaler interface {
	UnmarshalTLV(data []byte) error
}

// Unmarshal decodes raw BER-TLV data and maps it into target, which must be a
// non-nil pointer to a struct.
func Unmarshal(data []byte, target interface{}) error {
	packets, err := bertlv.Decode(data)
	if err != nil {
		return fmt.Errorf("bertlv decode failed: %w", err)
	}
	return UnmarshalFromPackets(packets, target)
}

// UnmarshalFromPackets maps pre-decoded packets onto target. A tag may occur
// several times when the bound field is a slice of structs.
func UnmarshalFromPackets(packets []bertlv.TLV, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer, got %T", target)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("target must point to a struct, got %T", target)
	}

	consumed := make([]bool, len(packets))
	var unknown reflect.Value

	for i := 0; i < v.NumField(); i++ {
		spec := specOf(v.Type().Field(i))
		field := v.Field(i)

		if spec.unknown {
			unknown = field
			continue
		}
		if spec.tag == "" {
			continue
		}

		for idx, packet := range packets {
			if !strings.EqualFold(packet.Tag, spec.tag) {
				continue
			}
			if err := assign(packet, field, spec); err != nil {
				return fmt.Errorf("tag %s: %w", spec.tag, err)
			}
			consumed[idx] = true
		}
	}

	if unknown.IsValid() && unknown.CanSet() {
		var leftovers []bertlv.TLV
		for idx, packet := range packets {
			if !consumed[idx] {
				leftovers = append(leftovers, packet)
			}
		}
		if len(leftovers) > 0 {
			unknown.Set(reflect.ValueOf(leftovers))
		}
	}

	return nil
}

// fieldSpec is the decoded form of a field's `tlv` and `fmt` struct tags.
type fieldSpec struct {
	tag     string
	format  string
	unknown bool
}

func specOf(f reflect.StructField) fieldSpec {
	conf := f.Tag.Get("tlv")
	name, _, _ := strings.Cut(conf, ",")

	return fieldSpec{
		tag:     strings.ToUpper(name),
		format:  f.Tag.Get("fmt"),
		unknown: conf == ",unknown" || (f.Name == "Unknown" && f.Type == reflect.TypeOf([]bertlv.TLV(nil))),
	}
}

// assign stores one packet into field. Slices of structs grow by one element
// per matching packet.
func assign(packet bertlv.TLV, field reflect.Value, spec fieldSpec) error {
	if field.Kind() == reflect.Slice && !isByteSlice(field) {
		elem := reflect.New(field.Type().Elem()).Elem()
		if err := decodeValue(packet, elem, spec); err != nil {
			return err
		}
		field.Set(reflect.Append(field, elem))
		return nil
	}
	return decodeValue(packet, field, spec)
}

func decodeValue(packet bertlv.TLV, field reflect.Value, spec fieldSpec) error {
	if field.CanAddr() {
		if u, ok := field.Addr().Interface().(Unmarshaler); ok {
			return u.UnmarshalTLV(rawValue(packet))
		}
	}

	switch {
	case isByteSlice(field):
		field.SetBytes(rawValue(packet))
	case field.Kind() == reflect.String:
		if spec.format == "ascii" {
			field.SetString(string(packet.Value))
		} else {
			field.SetString(hex.EncodeToString(packet.Value))
		}
	case field.Kind() == reflect.Struct:
		return decodeNested(packet, field.Addr())
	case field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return decodeNested(packet, field)
	}

	return nil
}

func decodeNested(packet bertlv.TLV, target reflect.Value) error {
	if len(packet.TLVs) > 0 {
		return UnmarshalFromPackets(packet.TLVs, target.Interface())
	}
	return Unmarshal(packet.Value, target.Interface())
}

// rawValue returns the value field of a packet, re-encoding children of
// constructed packets since the decoder does not keep their raw bytes.
func rawValue(p bertlv.TLV) []byte {
	if len(p.TLVs) > 0 {
		if enc, err := bertlv.Encode(p.TLVs); err == nil {
			return enc
		}
	}
	return p.Value
}

// Find returns the first top-level packet carrying tag.
func Find(packets []bertlv.TLV, tag uint) (bertlv.TLV, bool) {
	want := fmt.Sprintf("%X", tag)
	for _, p := range packets {
		if strings.EqualFold(p.Tag, want) {
			return p, true
		}
	}
	return bertlv.TLV{}, false
}

// GetValue scans the raw data for a specific tag and returns its raw payload.
func GetValue(data []byte, tag uint) ([]byte, error) {
	packets, err := bertlv.Decode(data)
	if err != nil {
		return nil, err
	}

	p, ok := Find(packets, tag)
	if !ok {
		return nil, fmt.Errorf("tag %X not found", tag)
	}
	return rawValue(p), nil
}

func isByteSlice(v reflect.Value) bool {
	return v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8
}
