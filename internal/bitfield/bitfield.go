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

// Package bitfield range-checks integers declared with a narrower bit width
// than their storage type.
package bitfield

// Signed reports whether v fits in a two's complement integer of the given
// width. Widths of 64 or more (or 0, meaning "undeclared") always fit.
func Signed(v int64, bits int) bool {
	if bits <= 0 || bits >= 64 {
		return true
	}
	lo := -(int64(1) << (bits - 1))
	hi := int64(1)<<(bits-1) - 1
	return v >= lo && v <= hi
}

// Unsigned reports whether v fits in an unsigned integer of the given width.
func Unsigned(v uint64, bits int) bool {
	if bits <= 0 || bits >= 64 {
		return true
	}
	return v>>bits == 0
}
