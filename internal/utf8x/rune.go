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

package utf8x

// MaxRune is the largest valid Unicode scalar value.
const MaxRune = 0x10ffff

// IsSurrogate reports whether r is a UTF-16 surrogate half.
func IsSurrogate(r rune) bool {
	return r >= 0xd800 && r <= 0xdfff
}

// IsHighSurrogate reports whether r is the first half of a surrogate pair.
func IsHighSurrogate(r rune) bool {
	return r >= 0xd800 && r <= 0xdbff
}

// IsLowSurrogate reports whether r is the second half of a surrogate pair.
func IsLowSurrogate(r rune) bool {
	return r >= 0xdc00 && r <= 0xdfff
}

// CombineSurrogates returns the code point encoded by a surrogate pair.
func CombineSurrogates(hi, lo rune) rune {
	return 0x10000 + (hi-0xd800)<<10 + (lo - 0xdc00)
}

// AppendRune appends the UTF-8 encoding of r to b.
//
// Unlike [unicode/utf8.AppendRune], invalid scalar values are not replaced
// with U+FFFD; ok is false and b is returned unchanged.
func AppendRune(b []byte, r rune) (_ []byte, ok bool) {
	switch {
	case r < 0:
		return b, false
	case r < 0x80:
		return append(b, byte(r)), true
	case r < 0x800:
		return append(b,
			0xc0|byte(r>>6),
			0x80|byte(r)&0x3f,
		), true
	case IsSurrogate(r):
		return b, false
	case r < 0x10000:
		return append(b,
			0xe0|byte(r>>12),
			0x80|byte(r>>6)&0x3f,
			0x80|byte(r)&0x3f,
		), true
	case r <= MaxRune:
		return append(b,
			0xf0|byte(r>>18),
			0x80|byte(r>>12)&0x3f,
			0x80|byte(r>>6)&0x3f,
			0x80|byte(r)&0x3f,
		), true
	default:
		return b, false
	}
}
