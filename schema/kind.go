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

package schema

import "fmt"

// Kind is the value type of a field.
type Kind uint8

const (
	InvalidKind Kind = iota
	BoolKind
	Int32Kind
	Int64Kind
	Uint32Kind
	Uint64Kind
	FloatKind
	DoubleKind
	StringKind
	BytesKind
	EnumKind
	MessageKind
	MapKind
	OneofKind
)

var kindNames = [...]string{
	InvalidKind: "invalid",
	BoolKind:    "bool",
	Int32Kind:   "int32",
	Int64Kind:   "int64",
	Uint32Kind:  "uint32",
	Uint64Kind:  "uint64",
	FloatKind:   "float",
	DoubleKind:  "double",
	StringKind:  "string",
	BytesKind:   "bytes",
	EnumKind:    "enum",
	MessageKind: "message",
	MapKind:     "map",
	OneofKind:   "oneof",
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Scalar returns whether this kind is a fixed- or variable-width number,
// i.e., whether repeated values of it may be packed.
func (k Kind) Scalar() bool {
	switch k {
	case BoolKind, Int32Kind, Int64Kind, Uint32Kind, Uint64Kind, FloatKind, DoubleKind, EnumKind:
		return true
	default:
		return false
	}
}

// Integer returns whether this kind is an integer type that may carry a
// bit width.
func (k Kind) Integer() bool {
	switch k {
	case Int32Kind, Int64Kind, Uint32Kind, Uint64Kind:
		return true
	default:
		return false
	}
}

// Signed returns whether this kind is a signed integer.
func (k Kind) Signed() bool {
	return k == Int32Kind || k == Int64Kind || k == EnumKind
}

// MapKey returns whether this kind may be used as a map key.
func (k Kind) MapKey() bool {
	switch k {
	case BoolKind, Int32Kind, Int64Kind, Uint32Kind, Uint64Kind, StringKind:
		return true
	default:
		return false
	}
}

// width returns the width in bits of an integer kind's storage.
func (k Kind) width() int {
	switch k {
	case Int32Kind, Uint32Kind, EnumKind:
		return 32
	case Int64Kind, Uint64Kind:
		return 64
	default:
		return 0
	}
}

// Label is the cardinality of a field.
type Label uint8

const (
	// Required fields are always present, and always encoded.
	Required Label = iota
	// Optional fields track presence; absent fields are not encoded.
	Optional
	// Repeated fields are ordered sequences.
	Repeated
	// Pointer fields are optional fields stored behind a heap indirection,
	// which allows a message type to refer to itself.
	Pointer
)

// String implements [fmt.Stringer].
func (l Label) String() string {
	switch l {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Repeated:
		return "repeated"
	case Pointer:
		return "pointer"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}
