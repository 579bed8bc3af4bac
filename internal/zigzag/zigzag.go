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

// Package zigzag implements the zigzag mapping used by sint32 and sint64
// fields, which keeps small negative numbers small after varint encoding.
package zigzag

// Encode maps a signed value onto an unsigned one.
//
// Values in the int32 range encode to the same bits as the 32-bit variant of
// zigzag, so sint32 fields use this function too.
func Encode(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// Decode is the inverse of [Encode].
func Decode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// Decode32 decodes a value that must fit in an int32. ok is false if the
// decoded value is out of range.
func Decode32(u uint64) (v int32, ok bool) {
	n := Decode(u)
	return int32(n), int64(int32(n)) == n
}
