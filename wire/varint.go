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

package wire

import (
	"encoding/binary"
	"math/bits"

	"buf.build/go/protocodec/internal/errs"
)

// MaxVarintLen is the maximum length of an encoded varint.
const MaxVarintLen = 10

// AppendVarint appends v to b as a varint.
func AppendVarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// SizeVarint returns the number of bytes AppendVarint would append for v.
func SizeVarint(v uint64) int {
	// Equivalent to (bits.Len64(v|1) + 6) / 7, without the division.
	return int(9*uint32(bits.Len64(v))+64) / 64
}

// ConsumeVarint decodes a varint from the start of b, returning it and the
// number of bytes it occupied.
//
// The error is an [*errs.Error] whose offset is relative to b.
func ConsumeVarint(b []byte) (uint64, int, error) {
	v, n, code := consumeVarint(b)
	if code != errs.Ok {
		return 0, 0, errs.New(code, n)
	}
	return v, n, nil
}

// consumeVarint is like [ConsumeVarint], but returns an error code instead.
// On failure, n is the offset of the failing byte.
func consumeVarint(b []byte) (v uint64, n int, code errs.Code) {
	for i := range MaxVarintLen {
		if i >= len(b) {
			return 0, i, errs.UnexpectedEOF
		}
		c := b[i]
		if i == MaxVarintLen-1 && c > 1 {
			return 0, i, errs.InvalidVarint
		}
		v |= uint64(c&0x7f) << (7 * i)
		if c < 0x80 {
			return v, i + 1, errs.Ok
		}
	}
	// Unreachable: the tenth byte is either rejected or terminates.
	return 0, MaxVarintLen, errs.InvalidVarint
}

// EncodeTag packs a field number and wire type into a tag.
func EncodeTag(n Number, t Type) uint64 {
	return uint64(n)<<3 | uint64(t&7)
}

// DecodeTag splits a tag into its field number and wire type.
//
// The returned number is not validated; a number outside of the valid range
// is truncated to an invalid (non-positive) value.
func DecodeTag(tag uint64) (Number, Type) {
	n := tag >> 3
	if n > uint64(MaxValidNumber) {
		return -1, Type(tag & 7)
	}
	return Number(n), Type(tag & 7)
}

// SizeTag returns the encoded size of a tag with the given number.
func SizeTag(n Number) int {
	return SizeVarint(EncodeTag(n, 0))
}

// AppendFixed32 appends v to b as four little-endian bytes.
func AppendFixed32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}

// AppendFixed64 appends v to b as eight little-endian bytes.
func AppendFixed64(b []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(b, v)
}

// EncodeBool returns the varint value of a bool.
func EncodeBool(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

