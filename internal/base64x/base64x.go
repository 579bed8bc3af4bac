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

// Package base64x implements the strict form of standard, padded base64 used
// by JSON bytes fields.
package base64x

import "encoding/base64"

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// invalid marks bytes outside of the alphabet. It has bits above the low six
// set, so OR-ing a block's values together taints the whole block.
const invalid = 0xff

var decodeMap = func() (m [256]byte) {
	for i := range m {
		m[i] = invalid
	}
	for i := range len(alphabet) {
		m[alphabet[i]] = byte(i)
	}
	return m
}()

// EncodedLen returns the length of the encoding of n bytes.
func EncodedLen(n int) int {
	return base64.StdEncoding.EncodedLen(n)
}

// AppendEncode appends the padded base64 encoding of src to dst.
func AppendEncode(dst, src []byte) []byte {
	return base64.StdEncoding.AppendEncode(dst, src)
}

// AppendDecode appends the decoding of src to dst. ok is false if src is not
// valid, padded, standard base64.
//
// This is stricter than [base64.StdEncoding]: line breaks are not skipped,
// and the length must be a multiple of four.
func AppendDecode(dst, src []byte) (_ []byte, ok bool) {
	if len(src)%4 != 0 {
		return dst, false
	}

	for len(src) > 0 {
		block := src[:4]
		src = src[4:]

		pad := 0
		switch {
		case block[3] != '=':
		case block[2] != '=':
			pad = 1
		default:
			pad = 2
		}
		if pad > 0 && len(src) > 0 {
			// Padding is only allowed in the final block.
			return dst, false
		}

		a := decodeMap[block[0]]
		b := decodeMap[block[1]]
		c, d := byte(0), byte(0)
		if pad < 2 {
			c = decodeMap[block[2]]
		}
		if pad < 1 {
			d = decodeMap[block[3]]
		}
		if (a|b|c|d)&^0x3f != 0 {
			return dst, false
		}

		n := uint32(a)<<18 | uint32(b)<<12 | uint32(c)<<6 | uint32(d)
		switch pad {
		case 0:
			dst = append(dst, byte(n>>16), byte(n>>8), byte(n))
		case 1:
			dst = append(dst, byte(n>>16), byte(n>>8))
		case 2:
			dst = append(dst, byte(n>>16))
		}
	}
	return dst, true
}
