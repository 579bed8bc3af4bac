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
	"bufio"
	"errors"
	"io"

	"buf.build/go/protocodec/internal/errs"
	"buf.build/go/protocodec/internal/utf8x"
)

// lexer splits JSON text into tokens, pulling from a buffered reader.
//
// Strings are unescaped into a scratch buffer that is reused by the next
// string; callers that need to hold onto one must copy it.
type lexer struct {
	r       *bufio.Reader
	off     int
	scratch []byte
}

func newLexer(r io.Reader) *lexer {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &lexer{r: br}
}

// peek returns the next non-whitespace byte without consuming it. Returns a
// bare [io.EOF] at the end of the input.
func (l *lexer) peek() (byte, error) {
	for {
		b, err := l.r.Peek(1)
		if err != nil {
			return 0, err
		}
		switch b[0] {
		case ' ', '\t', '\n', '\r':
			l.advance(1)
		default:
			return b[0], nil
		}
	}
}

// peekValue is like peek, but running out of input is an error.
func (l *lexer) peekValue() (byte, error) {
	c, err := l.peek()
	if err != nil {
		return 0, l.fail(err)
	}
	return c, nil
}

func (l *lexer) advance(n int) {
	n, _ = l.r.Discard(n)
	l.off += n
}

// expect consumes the next token, which must be the punctuation c.
func (l *lexer) expect(c byte) error {
	got, err := l.peekValue()
	if err != nil {
		return err
	}
	if got != c {
		return errs.Newf(errs.ExpectedToken, l.off, "want %q, got %q", c, got)
	}
	l.advance(1)
	return nil
}

// literal consumes one of the keywords true, false or null. The keyword must
// not run on into other identifier characters.
func (l *lexer) literal(word string) error {
	if _, err := l.peekValue(); err != nil {
		return err
	}

	b, _ := l.r.Peek(len(word))
	if string(b) != word {
		return errs.Newf(errs.InvalidLiteral, l.off, "want %s", word)
	}
	l.advance(len(word))

	if b, err := l.r.Peek(1); err == nil && isIdent(b[0]) {
		return errs.Newf(errs.InvalidLiteral, l.off, "want %s", word)
	}
	return nil
}

// string lexes a string literal, returning its unescaped contents.
func (l *lexer) string() ([]byte, error) {
	if err := l.expect('"'); err != nil {
		return nil, err
	}

	buf := l.scratch[:0]
	defer func() { l.scratch = buf[:0] }()
	for {
		c, err := l.r.ReadByte()
		if err != nil {
			return nil, l.fail(err)
		}
		l.off++

		switch {
		case c == '"':
			return buf, nil
		case c == '\\':
			buf, err = l.escape(buf)
			if err != nil {
				return nil, err
			}
		case c < 0x20:
			return nil, errs.Newf(errs.ExpectedToken, l.off-1, "control character %#02x in string", c)
		default:
			buf = append(buf, c)
		}
	}
}

// escape decodes one escape sequence, after the backslash, appending it to
// buf.
func (l *lexer) escape(buf []byte) ([]byte, error) {
	start := l.off - 1
	c, err := l.r.ReadByte()
	if err != nil {
		return nil, l.fail(err)
	}
	l.off++

	switch c {
	case '"', '\\', '/':
		return append(buf, c), nil
	case 'b':
		return append(buf, '\b'), nil
	case 'f':
		return append(buf, '\f'), nil
	case 'n':
		return append(buf, '\n'), nil
	case 'r':
		return append(buf, '\r'), nil
	case 't':
		return append(buf, '\t'), nil
	case 'u':
	default:
		return nil, errs.Newf(errs.InvalidEscape, start, "\\%c", c)
	}

	r, err := l.hex4()
	if err != nil {
		return nil, err
	}
	if utf8x.IsHighSurrogate(r) {
		// Must be immediately followed by an escaped low surrogate.
		if b, _ := l.r.Peek(2); string(b) != `\u` {
			return nil, errs.Newf(errs.InvalidEscape, start, "unpaired surrogate %U", r)
		}
		l.advance(2)
		lo, err := l.hex4()
		if err != nil {
			return nil, err
		}
		if !utf8x.IsLowSurrogate(lo) {
			return nil, errs.Newf(errs.InvalidEscape, start, "unpaired surrogate %U", r)
		}
		r = utf8x.CombineSurrogates(r, lo)
	}

	buf, ok := utf8x.AppendRune(buf, r)
	if !ok {
		return nil, errs.Newf(errs.InvalidEscape, start, "invalid code point %U", r)
	}
	return buf, nil
}

func (l *lexer) hex4() (rune, error) {
	b, err := l.r.Peek(4)
	if err != nil {
		return 0, errs.New(errs.InvalidEscape, l.off)
	}

	var r rune
	for _, c := range b {
		var d byte
		switch {
		case '0' <= c && c <= '9':
			d = c - '0'
		case 'a' <= c && c <= 'f':
			d = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, errs.New(errs.InvalidEscape, l.off)
		}
		r = r<<4 | rune(d)
	}
	l.advance(4)
	return r, nil
}

// number lexes a number, either bare or inside of a string. The returned
// text is not yet validated.
func (l *lexer) number() (text []byte, quoted bool, err error) {
	c, err := l.peekValue()
	if err != nil {
		return nil, false, err
	}
	if c == '"' {
		text, err = l.string()
		return text, true, err
	}
	if c != '-' && !isDigit(c) {
		return nil, false, errs.Newf(errs.ExpectedToken, l.off, "want number, got %q", c)
	}

	buf := l.scratch[:0]
	for {
		b, err := l.r.Peek(1)
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, false, err
		}
		if !isNumber(b[0]) {
			break
		}
		buf = append(buf, b[0])
		l.advance(1)
	}
	l.scratch = buf[:0]
	return buf, false, nil
}

// skip consumes one value of any type, without recursion.
func (l *lexer) skip() error {
	var stack []byte
	for {
		c, err := l.peekValue()
		if err != nil {
			return err
		}

		complete := true
		switch c {
		case '{', '[':
			l.advance(1)
			next, err := l.peekValue()
			if err != nil {
				return err
			}
			if next == closer(c) {
				l.advance(1)
				break
			}
			stack = append(stack, c)
			complete = false
			if c == '{' {
				err = l.skipKey()
			}
		case '"':
			_, err = l.string()
		case 't':
			err = l.literal("true")
		case 'f':
			err = l.literal("false")
		case 'n':
			err = l.literal("null")
		default:
			var text []byte
			if text, _, err = l.number(); err == nil && !validNumber(text) {
				err = errs.New(errs.InvalidNumber, l.off-len(text))
			}
		}
		if err != nil {
			return err
		}
		if !complete {
			continue
		}

		// Close any containers that are finished, and move past the comma
		// before the next value.
		for more := false; !more; {
			if len(stack) == 0 {
				return nil
			}
			c, err := l.peekValue()
			if err != nil {
				return err
			}
			top := stack[len(stack)-1]
			switch {
			case c == ',':
				l.advance(1)
				if top == '{' {
					if err := l.skipKey(); err != nil {
						return err
					}
				}
				more = true
			case c == closer(top):
				l.advance(1)
				stack = stack[:len(stack)-1]
			default:
				return errs.Newf(errs.ExpectedToken, l.off, "want ',' or %q, got %q", closer(top), c)
			}
		}
	}
}

func (l *lexer) skipKey() error {
	if _, err := l.string(); err != nil {
		return err
	}
	return l.expect(':')
}

// fail converts a read error into a decoding error. Running out of input is
// reported as [errs.UnexpectedEOF]; anything else is returned as-is.
func (l *lexer) fail(err error) error {
	if errors.Is(err, io.EOF) {
		return errs.New(errs.UnexpectedEOF, l.off)
	}
	return err
}

func closer(open byte) byte {
	if open == '{' {
		return '}'
	}
	return ']'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isNumber(c byte) bool {
	return isDigit(c) || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E'
}

func isIdent(c byte) bool {
	return isDigit(c) || c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// validNumber checks text against the JSON number grammar.
func validNumber(text []byte) bool {
	i := 0
	if i < len(text) && text[i] == '-' {
		i++
	}

	switch {
	case i < len(text) && text[i] == '0':
		i++
	case i < len(text) && '1' <= text[i] && text[i] <= '9':
		for i < len(text) && isDigit(text[i]) {
			i++
		}
	default:
		return false
	}

	if i < len(text) && text[i] == '.' {
		i++
		if i == len(text) || !isDigit(text[i]) {
			return false
		}
		for i < len(text) && isDigit(text[i]) {
			i++
		}
	}

	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		i++
		if i < len(text) && (text[i] == '+' || text[i] == '-') {
			i++
		}
		if i == len(text) || !isDigit(text[i]) {
			return false
		}
		for i < len(text) && isDigit(text[i]) {
			i++
		}
	}

	return i == len(text)
}
