// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package schema contains the field tables that generated message types hand
// to the codec.
//
// A table is built once, usually in a package-level variable or an init
// function, and is immutable afterwards; it is safe to share between
// goroutines.
package schema

import (
	"fmt"
	"strings"

	"buf.build/go/protocodec/wire"
)

// Field describes a single field of a message.
//
// Fields are built with the constructors in this package, such as [Int32] or
// [MapOf], and adjusted with the chainable methods like [Field.Optional].
// They must not be modified once passed to [Build].
type Field struct {
	Number wire.Number
	Name   string
	// JSONName is the lowerCamelCase alias of Name. If empty, it is derived
	// from Name when the field's message is built.
	JSONName string

	Kind     Kind
	Label    Label
	Encoding wire.Encoding
	Packed   bool
	// Bits, if nonzero, is the declared width of an integer field. Values
	// outside of it are rejected by both encoders and decoders.
	Bits int

	// Enum is the value table of an enum field.
	Enum *Enum
	// Key and Value are the entry fields of a map field, numbered 1 and 2.
	Key, Value *Field
	// Alternatives are the members of a oneof, in declaration order.
	Alternatives []*Field

	// Oneof is the oneof this field is an alternative of, if any.
	Oneof *Field
	// Index is the ordinal of this field within its oneof, or within its
	// message for all other fields.
	Index int

	message func() *Message
}

// Bool returns a new bool field.
func Bool(n wire.Number, name string) *Field { return scalar(n, name, BoolKind, wire.Varint) }

// Int32 returns a new int32 field.
func Int32(n wire.Number, name string) *Field { return scalar(n, name, Int32Kind, wire.Varint) }

// Sint32 returns a new zigzag-encoded int32 field.
func Sint32(n wire.Number, name string) *Field { return scalar(n, name, Int32Kind, wire.Zigzag) }

// Sfixed32 returns a new fixed-width int32 field.
func Sfixed32(n wire.Number, name string) *Field { return scalar(n, name, Int32Kind, wire.Fixed32) }

// Int64 returns a new int64 field.
func Int64(n wire.Number, name string) *Field { return scalar(n, name, Int64Kind, wire.Varint) }

// Sint64 returns a new zigzag-encoded int64 field.
func Sint64(n wire.Number, name string) *Field { return scalar(n, name, Int64Kind, wire.Zigzag) }

// Sfixed64 returns a new fixed-width int64 field.
func Sfixed64(n wire.Number, name string) *Field { return scalar(n, name, Int64Kind, wire.Fixed64) }

// Uint32 returns a new uint32 field.
func Uint32(n wire.Number, name string) *Field { return scalar(n, name, Uint32Kind, wire.Varint) }

// Fixed32 returns a new fixed-width uint32 field.
func Fixed32(n wire.Number, name string) *Field { return scalar(n, name, Uint32Kind, wire.Fixed32) }

// Uint64 returns a new uint64 field.
func Uint64(n wire.Number, name string) *Field { return scalar(n, name, Uint64Kind, wire.Varint) }

// Fixed64 returns a new fixed-width uint64 field.
func Fixed64(n wire.Number, name string) *Field { return scalar(n, name, Uint64Kind, wire.Fixed64) }

// Float returns a new float field.
func Float(n wire.Number, name string) *Field { return scalar(n, name, FloatKind, wire.Fixed32) }

// Double returns a new double field.
func Double(n wire.Number, name string) *Field { return scalar(n, name, DoubleKind, wire.Fixed64) }

// String returns a new string field.
func String(n wire.Number, name string) *Field { return scalar(n, name, StringKind, wire.Varint) }

// Bytes returns a new bytes field.
func Bytes(n wire.Number, name string) *Field { return scalar(n, name, BytesKind, wire.Varint) }

// EnumOf returns a new enum field with the given value table.
func EnumOf(n wire.Number, name string, e *Enum) *Field {
	f := scalar(n, name, EnumKind, wire.Varint)
	f.Enum = e
	return f
}

// MessageOf returns a new submessage field.
//
// The message type is a thunk so that tables can refer to themselves, or to
// tables declared later.
func MessageOf(n wire.Number, name string, m func() *Message) *Field {
	f := scalar(n, name, MessageKind, wire.Varint)
	f.message = m
	return f
}

// MapOf returns a new map field. key and value must be numbered 1 and 2.
func MapOf(n wire.Number, name string, key, value *Field) *Field {
	f := scalar(n, name, MapKind, wire.Varint)
	f.Label = Repeated
	f.Key = key
	f.Value = value
	return f
}

// OneofOf returns a new oneof with the given alternatives.
//
// A oneof has no number of its own; each alternative is addressed on the wire
// by its own number.
func OneofOf(name string, alternatives ...*Field) *Field {
	f := scalar(0, name, OneofKind, wire.Varint)
	f.Label = Optional
	f.Alternatives = alternatives
	return f
}

func scalar(n wire.Number, name string, k Kind, e wire.Encoding) *Field {
	return &Field{Number: n, Name: name, Kind: k, Encoding: e}
}

// Optional marks f as presence-tracking and returns it.
func (f *Field) Optional() *Field {
	f.Label = Optional
	return f
}

// Repeated marks f as repeated and returns it.
func (f *Field) Repeated() *Field {
	f.Label = Repeated
	return f
}

// Pointer marks f as a heap-indirected optional field and returns it.
func (f *Field) Pointer() *Field {
	f.Label = Pointer
	return f
}

// Pack marks f as a packed repeated field and returns it.
func (f *Field) Pack() *Field {
	f.Label = Repeated
	f.Packed = true
	return f
}

// WithBits sets the declared bit width of f and returns it.
func (f *Field) WithBits(bits int) *Field {
	f.Bits = bits
	return f
}

// WithJSONName sets the JSON name of f and returns it.
func (f *Field) WithJSONName(name string) *Field {
	f.JSONName = name
	return f
}

// Message returns the message type of a message field, or nil.
func (f *Field) Message() *Message {
	if f.message == nil {
		return nil
	}
	return f.message()
}

// ScalarEncoding returns the wire layout of a scalar field.
func (f *Field) ScalarEncoding() wire.ScalarEncoding {
	return wire.ScalarEncoding{Encoding: f.Encoding, Packed: f.Packed}
}

// WireType returns the wire type a single (non-packed) value of this field is
// encoded with.
func (f *Field) WireType() wire.Type {
	if f.Kind.Scalar() {
		return f.Encoding.Type()
	}
	return wire.BytesType
}

// IsList returns whether this is a repeated field that is not a map.
func (f *Field) IsList() bool {
	return f.Label == Repeated && f.Kind != MapKind
}

// String implements [fmt.Stringer].
func (f *Field) String() string {
	buf := new(strings.Builder)
	if f.Label != Required && f.Kind != MapKind && f.Kind != OneofKind {
		fmt.Fprintf(buf, "%v ", f.Label)
	}
	switch f.Kind {
	case MapKind:
		fmt.Fprintf(buf, "map<%v, %v>", f.Key.Kind, f.Value.Kind)
	case Int32Kind, Int64Kind, Uint32Kind, Uint64Kind:
		fmt.Fprintf(buf, "%v/%v", f.Kind, f.Encoding)
	default:
		fmt.Fprint(buf, f.Kind)
	}
	fmt.Fprintf(buf, " %s = %d", f.Name, f.Number)
	return buf.String()
}

// check validates a single field. Messages call this on every field.
func (f *Field) check() error {
	if f.Name == "" {
		return fmt.Errorf("field %d has no name", f.Number)
	}

	if f.Kind == OneofKind {
		if len(f.Alternatives) == 0 {
			return fmt.Errorf("oneof %s has no alternatives", f.Name)
		}
		for _, alt := range f.Alternatives {
			if alt.Kind == OneofKind || alt.Kind == MapKind || alt.Label == Repeated {
				return fmt.Errorf("oneof %s: %v cannot be an alternative", f.Name, alt)
			}
			if err := alt.check(); err != nil {
				return fmt.Errorf("oneof %s: %w", f.Name, err)
			}
		}
		return nil
	}

	if f.Number < wire.MinValidNumber || f.Number > wire.MaxValidNumber {
		return fmt.Errorf("field %s: number %d out of range", f.Name, f.Number)
	}

	switch f.Kind {
	case BoolKind, EnumKind:
		if f.Encoding != wire.Varint {
			return fmt.Errorf("%v: %v must use varint encoding", f, f.Kind)
		}
	case Uint32Kind, Uint64Kind:
		if f.Encoding == wire.Zigzag {
			return fmt.Errorf("%v: unsigned fields cannot be zigzag-encoded", f)
		}
	case FloatKind:
		if f.Encoding != wire.Fixed32 {
			return fmt.Errorf("%v: float must use fixed32 encoding", f)
		}
	case DoubleKind:
		if f.Encoding != wire.Fixed64 {
			return fmt.Errorf("%v: double must use fixed64 encoding", f)
		}
	case Int32Kind, Int64Kind, StringKind, BytesKind:
	case MessageKind:
		if f.message == nil {
			return fmt.Errorf("%v: missing message type", f)
		}
	case MapKind:
		if f.Key == nil || f.Value == nil {
			return fmt.Errorf("%v: missing key or value", f)
		}
		if f.Key.Number != 1 || f.Value.Number != 2 {
			return fmt.Errorf("%v: key and value must be numbered 1 and 2", f)
		}
		if !f.Key.Kind.MapKey() {
			return fmt.Errorf("%v: %v cannot be a map key", f, f.Key.Kind)
		}
		if f.Value.Kind == MapKind || f.Value.Kind == OneofKind || f.Value.Label == Repeated {
			return fmt.Errorf("%v: invalid map value", f)
		}
		if err := f.Key.check(); err != nil {
			return err
		}
		if err := f.Value.check(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("field %s: invalid kind %v", f.Name, f.Kind)
	}

	if f.Kind == EnumKind && f.Enum == nil {
		return fmt.Errorf("%v: missing enum values", f)
	}
	if f.Packed && (f.Label != Repeated || !f.Kind.Scalar()) {
		return fmt.Errorf("%v: only repeated scalars can be packed", f)
	}
	if f.Bits != 0 && (!f.Kind.Integer() || f.Bits < 0 || f.Bits > f.Kind.width()) {
		return fmt.Errorf("%v: invalid bit width %d", f, f.Bits)
	}
	return nil
}
