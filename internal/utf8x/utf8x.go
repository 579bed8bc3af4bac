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

// Package utf8x contains a table-driven UTF-8 validator and an encoder for
// single code points that reports invalid scalar values instead of replacing
// them.
package utf8x

// The validator is a DFA over byte classes. Every byte is mapped to one of
// twelve classes; each state is a row of twelve transitions. States are
// premultiplied by the row width so that a transition is a single table load.
const (
	accept = 0
	reject = 12
)

var classes = func() (c [256]uint8) {
	set := func(lo, hi int, class uint8) {
		for b := lo; b <= hi; b++ {
			c[b] = class
		}
	}
	set(0x00, 0x7f, 0)
	set(0x80, 0x8f, 1)
	set(0x90, 0x9f, 9)
	set(0xa0, 0xbf, 7)
	set(0xc0, 0xc1, 8)
	set(0xc2, 0xdf, 2)
	set(0xe0, 0xe0, 10)
	set(0xe1, 0xec, 3)
	set(0xed, 0xed, 4)
	set(0xee, 0xef, 3)
	set(0xf0, 0xf0, 11)
	set(0xf1, 0xf3, 6)
	set(0xf4, 0xf4, 5)
	set(0xf5, 0xff, 8)
	return c
}()

var transitions = [...]uint8{
	// accept
	0, 12, 24, 36, 60, 96, 84, 12, 12, 12, 48, 72,
	// reject
	12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
	// one continuation byte left
	12, 0, 12, 12, 12, 12, 12, 0, 12, 0, 12, 12,
	// two continuation bytes left
	12, 24, 12, 12, 12, 12, 12, 24, 12, 24, 12, 12,
	// after E0: A0..BF
	12, 12, 12, 12, 12, 12, 12, 24, 12, 12, 12, 12,
	// after ED: 80..9F, which excludes surrogates
	12, 24, 12, 12, 12, 12, 12, 12, 12, 24, 12, 12,
	// after F0: 90..BF
	12, 12, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12,
	// after F1..F3
	12, 36, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12,
	// after F4: 80..8F, which caps at U+10FFFF
	12, 36, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
}

// Decoder is the streaming state of the validator. The zero value is ready
// to use.
type Decoder struct {
	state uint8
	rune  rune
}

// Step feeds one byte into the decoder. It returns true when b completes a
// code point, which is then available from [Decoder.Rune].
func (d *Decoder) Step(b byte) bool {
	class := classes[b]
	if d.state == accept {
		d.rune = rune(0xff>>class) & rune(b)
	} else {
		d.rune = rune(b&0x3f) | d.rune<<6
	}
	d.state = transitions[int(d.state)+int(class)]
	return d.state == accept
}

// Failed reports whether the decoder has seen an invalid sequence. This is
// permanent.
func (d *Decoder) Failed() bool {
	return d.state == reject
}

// Done reports whether the input seen so far ends on a code point boundary
// without having failed.
func (d *Decoder) Done() bool {
	return d.state == accept
}

// Rune returns the last completed code point.
func (d *Decoder) Rune() rune {
	return d.rune
}

// Valid reports whether b is entirely valid UTF-8.
func Valid(b []byte) bool {
	// ASCII prefix fast path: the DFA is only needed past the first high byte.
	i := 0
	for i < len(b) && b[i] < 0x80 {
		i++
	}

	var d Decoder
	for _, c := range b[i:] {
		d.Step(c)
		if d.Failed() {
			return false
		}
	}
	return d.Done()
}

// ValidString is like [Valid], but for strings.
func ValidString(s string) bool {
	i := 0
	for i < len(s) && s[i] < 0x80 {
		i++
	}

	var d Decoder
	for ; i < len(s); i++ {
		d.Step(s[i])
		if d.Failed() {
			return false
		}
	}
	return d.Done()
}
