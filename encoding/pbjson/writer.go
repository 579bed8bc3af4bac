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

package pbjson

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// writer appends JSON tokens to a buffer, inserting commas and, optionally,
// indentation.
type writer struct {
	buf    []byte
	indent string
	empty  []bool // For each open container, whether nothing is in it yet.
}

func (w *writer) open(c byte) {
	w.buf = append(w.buf, c)
	w.empty = append(w.empty, true)
}

func (w *writer) close(c byte) {
	empty := w.empty[len(w.empty)-1]
	w.empty = w.empty[:len(w.empty)-1]
	if !empty {
		w.newline()
	}
	w.buf = append(w.buf, c)
}

// next starts a new element of the innermost container.
func (w *writer) next() {
	top := &w.empty[len(w.empty)-1]
	if !*top {
		w.buf = append(w.buf, ',')
	}
	*top = false
	w.newline()
}

// key starts a new member of the innermost object.
func (w *writer) key(name string) {
	w.next()
	w.string(name)
	w.buf = append(w.buf, ':')
	if w.indent != "" {
		w.buf = append(w.buf, ' ')
	}
}

func (w *writer) newline() {
	if w.indent == "" {
		return
	}
	w.buf = append(w.buf, '\n')
	for range len(w.empty) {
		w.buf = append(w.buf, w.indent...)
	}
}

func (w *writer) raw(s string) {
	w.buf = append(w.buf, s...)
}

// string appends a quoted string. Invalid UTF-8 is copied through as-is.
func (w *writer) string(s string) {
	w.buf = append(w.buf, '"')
	for len(s) > 0 {
		i := strings.IndexFunc(s, needsEscape)
		if i < 0 {
			i = len(s)
		}
		w.buf = append(w.buf, s[:i]...)
		s = s[i:]
		if s == "" {
			break
		}

		r, n := utf8.DecodeRuneInString(s)
		switch r {
		case '"', '\\':
			w.buf = append(w.buf, '\\', byte(r))
		case '\b':
			w.buf = append(w.buf, `\b`...)
		case '\f':
			w.buf = append(w.buf, `\f`...)
		case '\n':
			w.buf = append(w.buf, `\n`...)
		case '\r':
			w.buf = append(w.buf, `\r`...)
		case '\t':
			w.buf = append(w.buf, `\t`...)
		default:
			w.buf = append(w.buf, `\u00`...)
			w.buf = append(w.buf, hexDigits[r>>4], hexDigits[r&0xf])
		}
		s = s[n:]
	}
	w.buf = append(w.buf, '"')
}

const hexDigits = "0123456789abcdef"

func needsEscape(r rune) bool {
	return r < 0x20 || r == '"' || r == '\\'
}

// float appends a float in the form used by the JSON mapping: positional
// notation for moderate magnitudes, exponent notation otherwise, and quoted
// names for the special values.
func (w *writer) float(v float64, bits int) {
	switch {
	case math.IsNaN(v):
		w.raw(`"NaN"`)
		return
	case math.IsInf(v, 1):
		w.raw(`"Infinity"`)
		return
	case math.IsInf(v, -1):
		w.raw(`"-Infinity"`)
		return
	}

	format := byte('f')
	if abs := math.Abs(v); abs != 0 {
		if bits == 32 {
			abs = float64(float32(abs))
		}
		if abs < 1e-6 || abs >= 1e21 {
			format = 'e'
		}
	}

	w.buf = strconv.AppendFloat(w.buf, v, format, -1, bits)
	if n := len(w.buf); format == 'e' && n >= 4 && w.buf[n-4] == 'e' && w.buf[n-3] == '-' && w.buf[n-2] == '0' {
		// Trim "e-07" to "e-7".
		w.buf[n-2] = w.buf[n-1]
		w.buf = w.buf[:n-1]
	}
}
