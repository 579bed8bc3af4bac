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

import "strings"

// jsonName derives the lowerCamelCase JSON name of a field: underscores are
// dropped and the letter after each one is upper-cased.
func jsonName(name string) string {
	var (
		buf   strings.Builder
		upper bool
	)
	buf.Grow(len(name))
	for i := range len(name) {
		c := name[i]
		switch {
		case c == '_':
			upper = true
		case upper && 'a' <= c && c <= 'z':
			buf.WriteByte(c - 'a' + 'A')
			upper = false
		default:
			buf.WriteByte(c)
			upper = false
		}
	}
	return buf.String()
}

// hash is the djb2 string hash. It is only ever used as a table index.
func hash[S ~string | ~[]byte](key S) uint32 {
	h := uint32(5381)
	for i := range len(key) {
		h = h*33 + uint32(key[i])
	}
	return h
}
