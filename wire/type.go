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

// Package wire contains the low-level primitives of the binary wire format:
// varints, tags, fixed-width values, and the bounded [Reader] and [Sink] that
// the binary codec is built out of.
package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Number is a field number, as it appears in a tag.
type Number = protowire.Number

// Type is a wire type, as it appears in the low three bits of a tag.
type Type = protowire.Type

// Wire types.
const (
	VarintType     = protowire.VarintType
	Fixed32Type    = protowire.Fixed32Type
	Fixed64Type    = protowire.Fixed64Type
	BytesType      = protowire.BytesType
	StartGroupType = protowire.StartGroupType
	EndGroupType   = protowire.EndGroupType
)

// Valid field number range.
const (
	MinValidNumber = protowire.MinValidNumber
	MaxValidNumber = protowire.MaxValidNumber
)

// Encoding is the numeric representation of a scalar on the wire.
type Encoding uint8

const (
	Varint  Encoding = iota // Two's complement, sign-extended to 64 bits.
	Zigzag                  // Zigzag, then varint.
	Fixed32                 // Four little-endian bytes.
	Fixed64                 // Eight little-endian bytes.
)

// Type returns the wire type a single value with this encoding uses.
func (e Encoding) Type() Type {
	switch e {
	case Fixed32:
		return Fixed32Type
	case Fixed64:
		return Fixed64Type
	default:
		return VarintType
	}
}

// Size returns the fixed size of a value with this encoding, or zero if the
// encoding is variable-width.
func (e Encoding) Size() int {
	switch e {
	case Fixed32:
		return 4
	case Fixed64:
		return 8
	default:
		return 0
	}
}

// String implements [fmt.Stringer].
func (e Encoding) String() string {
	switch e {
	case Varint:
		return "varint"
	case Zigzag:
		return "zigzag"
	case Fixed32:
		return "fixed32"
	case Fixed64:
		return "fixed64"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ScalarEncoding describes how a scalar field is laid out: its numeric
// representation, and whether repeated values are packed into a single
// length-delimited record.
type ScalarEncoding struct {
	Encoding Encoding
	Packed   bool
}

// Type returns the wire type of the field's tag.
func (s ScalarEncoding) Type() Type {
	if s.Packed {
		return BytesType
	}
	return s.Encoding.Type()
}

// String implements [fmt.Stringer].
func (s ScalarEncoding) String() string {
	if s.Packed {
		return "packed " + s.Encoding.String()
	}
	return s.Encoding.String()
}
