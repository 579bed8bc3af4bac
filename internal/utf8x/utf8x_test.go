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

package utf8x_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"buf.build/go/protocodec/internal/utf8x"
)

var validity = []string{
	"",
	"hello",
	"héllo",
	"日本語",
	"🙂",
	"\x00",
	"\x7f",
	"\x80",
	"\xc0\x80",
	"\xc2\x80",
	"\xe0\x80\x80",
	"\xe0\xa0\x80",
	"\xed\x9f\xbf",
	"\xed\xa0\x80",
	"\xef\xbf\xbf",
	"\xf0\x8f\xbf\xbf",
	"\xf0\x90\x80\x80",
	"\xf4\x8f\xbf\xbf",
	"\xf4\x90\x80\x80",
	"\xf5\x80\x80\x80",
	"\xe6\x97",
	"abc\xe6\x97\xa5def",
	"abc\xe6\x97def",
	"\xff",
}

func TestValid(t *testing.T) {
	t.Parallel()

	for _, s := range validity {
		assert.Equal(t, utf8.ValidString(s), utf8x.Valid([]byte(s)), "%q", s)
		assert.Equal(t, utf8.ValidString(s), utf8x.ValidString(s), "%q", s)
	}
}

func TestDecoderRunes(t *testing.T) {
	t.Parallel()

	var d utf8x.Decoder
	var got []rune
	for _, b := range []byte("aé日🙂") {
		if d.Step(b) {
			got = append(got, d.Rune())
		}
	}
	assert.True(t, d.Done())
	assert.Equal(t, []rune("aé日🙂"), got)
}

func TestAppendRune(t *testing.T) {
	t.Parallel()

	for _, r := range []rune{0, 'a', 0x7f, 0x80, 0x7ff, 0x800, 0xd7ff, 0xe000, 0xffff, 0x10000, 0x10ffff} {
		b, ok := utf8x.AppendRune(nil, r)
		assert.True(t, ok, "%U", r)
		assert.Equal(t, utf8.AppendRune(nil, r), b, "%U", r)
	}

	for _, r := range []rune{-1, 0xd800, 0xdbff, 0xdc00, 0xdfff, 0x110000} {
		b, ok := utf8x.AppendRune([]byte("x"), r)
		assert.False(t, ok, "%U", r)
		assert.Equal(t, []byte("x"), b)
	}
}

func TestSurrogates(t *testing.T) {
	t.Parallel()

	assert.True(t, utf8x.IsHighSurrogate(0xd83d))
	assert.True(t, utf8x.IsLowSurrogate(0xde42))
	assert.Equal(t, rune(0x1f642), utf8x.CombineSurrogates(0xd83d, 0xde42))
}

func FuzzValid(f *testing.F) {
	for _, s := range validity {
		f.Add([]byte(s))
	}
	f.Fuzz(func(t *testing.T, b []byte) {
		assert.Equal(t, utf8.Valid(b), utf8x.Valid(b))
	})
}
