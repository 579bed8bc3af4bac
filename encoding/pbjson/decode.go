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
	"errors"
	"io"
	"math"
	"strconv"

	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/internal/base64x"
	"buf.build/go/protocodec/internal/bitfield"
	"buf.build/go/protocodec/internal/debug"
	"buf.build/go/protocodec/internal/errs"
	"buf.build/go/protocodec/internal/utf8x"
	"buf.build/go/protocodec/schema"
)

// decodeState is shared by all of the decoders used for one document.
type decodeState struct {
	l     *lexer
	opts  Options
	depth int
}

// finish checks that nothing but whitespace follows the top-level value.
func (s *decodeState) finish() error {
	c, err := s.l.peek()
	if err == io.EOF { //nolint:errorlint // bufio returns io.EOF unwrapped.
		return nil
	}
	if err != nil {
		return err
	}
	return errs.Newf(errs.TrailingData, s.l.off, "%q after value", c)
}

// message decodes a JSON object into m.
func (s *decodeState) message(m codec.Message) error {
	l := s.l
	if s.opts.MaxDepth > 0 && s.depth >= s.opts.MaxDepth {
		return errs.New(errs.RecursionDepth, l.off)
	}
	s.depth++
	defer func() { s.depth-- }()

	if err := l.expect('{'); err != nil {
		return err
	}
	c, err := l.peekValue()
	if err != nil {
		return err
	}
	if c == '}' {
		l.advance(1)
		return nil
	}

	table := m.Schema()
	d := &decoder{s: s}
	for {
		start := l.off
		key, err := l.string()
		if err != nil {
			return err
		}
		f := table.ByJSONName(key)
		if err := l.expect(':'); err != nil {
			return err
		}

		switch c, err := l.peekValue(); {
		case err != nil:
			return err

		case f == nil:
			if debug.Enabled {
				debug.Log([]any{"%s", table.Name()}, "skip", "key @ %d", start)
			}
			if err := l.skip(); err != nil {
				return err
			}

		case c == 'n':
			if err := l.literal("null"); err != nil {
				return err
			}
			m.ClearField(f)

		default:
			if debug.Enabled {
				debug.Log([]any{"%s", table.Name()}, "field", "%v @ %d", f, start)
			}
			d.f, d.used = f, false
			err := m.DecodeField(d, f)
			if !d.used && (err == nil || errors.Is(err, codec.ErrUnknownField)) {
				err = l.skip()
			}
			if err != nil {
				return err
			}
		}

		c, err := l.peekValue()
		if err != nil {
			return err
		}
		switch c {
		case ',':
			l.advance(1)
		case '}':
			l.advance(1)
			return nil
		default:
			return errs.Newf(errs.ExpectedToken, l.off, "want ',' or '}', got %q", c)
		}
	}
}

// decoder implements [codec.Decoder] for JSON values.
type decoder struct {
	s    *decodeState
	f    *schema.Field
	used bool
}

var _ codec.Decoder = (*decoder)(nil)

func (d *decoder) Bool() (bool, error) {
	d.used = true
	l := d.s.l
	c, err := l.peekValue()
	if err != nil {
		return false, err
	}
	switch c {
	case 't':
		return true, l.literal("true")
	case 'f':
		return false, l.literal("false")
	default:
		return false, errs.Newf(errs.ExpectedToken, l.off, "want bool, got %q", c)
	}
}

func (d *decoder) Int32() (int32, error) {
	v, err := d.signed(32)
	return int32(v), err
}

func (d *decoder) Int64() (int64, error) {
	return d.signed(64)
}

func (d *decoder) Uint32() (uint32, error) {
	v, err := d.unsigned(32)
	return uint32(v), err
}

func (d *decoder) Uint64() (uint64, error) {
	return d.unsigned(64)
}

func (d *decoder) Float32() (float32, error) {
	v, err := d.float(32)
	return float32(v), err
}

func (d *decoder) Float64() (float64, error) {
	return d.float(64)
}

func (d *decoder) String() (string, error) {
	d.used = true
	start := d.s.l.off
	b, err := d.s.l.string()
	if err != nil {
		return "", err
	}
	if !d.s.opts.AllowInvalidUTF8 && !utf8x.Valid(b) {
		return "", errs.Newf(errs.InvalidUTF8, start, "field %s", d.f.Name)
	}
	return string(b), nil
}

func (d *decoder) Bytes() ([]byte, error) {
	d.used = true
	start := d.s.l.off
	b, err := d.s.l.string()
	if err != nil {
		return nil, err
	}
	out, ok := base64x.AppendDecode(make([]byte, 0, len(b)*3/4), b)
	if !ok {
		return nil, errs.Newf(errs.InvalidBase64, start, "field %s", d.f.Name)
	}
	return out, nil
}

func (d *decoder) Enum() (int32, error) {
	d.used = true
	l := d.s.l
	c, err := l.peekValue()
	if err != nil {
		return 0, err
	}
	if c != '"' {
		v, err := d.signed(32)
		return int32(v), err
	}

	start := l.off
	name, err := l.string()
	if err != nil {
		return 0, err
	}
	if d.f.Enum != nil {
		if v, ok := d.f.Enum.ByName(name); ok {
			return v, nil
		}
	}
	return 0, errs.Newf(errs.InvalidLiteral, start, "unknown value %q for %s", name, d.f.Name)
}

func (d *decoder) Message(m codec.Message) error {
	d.used = true
	return d.s.message(m)
}

func (d *decoder) List(elem func(codec.Decoder) error) error {
	d.used = true
	l := d.s.l
	if err := l.expect('['); err != nil {
		return err
	}
	c, err := l.peekValue()
	if err != nil {
		return err
	}
	if c == ']' {
		l.advance(1)
		return nil
	}

	el := &decoder{s: d.s, f: d.f}
	for {
		el.used = false
		start := l.off
		if err := elem(el); err != nil {
			return err
		}
		if !el.used {
			return errs.Newf(errs.InvalidField, start, "element of %s was not decoded", d.f.Name)
		}

		c, err := l.peekValue()
		if err != nil {
			return err
		}
		switch c {
		case ',':
			l.advance(1)
		case ']':
			l.advance(1)
			return nil
		default:
			return errs.Newf(errs.ExpectedToken, l.off, "want ',' or ']', got %q", c)
		}
	}
}

func (d *decoder) Map(entry func(key, value codec.Decoder) error) error {
	d.used = true
	l := d.s.l
	if err := l.expect('{'); err != nil {
		return err
	}
	c, err := l.peekValue()
	if err != nil {
		return err
	}
	if c == '}' {
		l.advance(1)
		return nil
	}

	key := &keyDecoder{f: d.f.Key, opts: &d.s.opts}
	value := &decoder{s: d.s, f: d.f.Value}
	for {
		key.off = l.off
		text, err := l.string()
		if err != nil {
			return err
		}
		// The value may reuse the lexer's scratch space.
		key.text = append(key.text[:0], text...)
		if err := l.expect(':'); err != nil {
			return err
		}

		value.used = false
		err = entry(key, value)
		if !value.used && (err == nil || errors.Is(err, codec.ErrUnknownField)) {
			err = l.skip()
		}
		if err != nil {
			return err
		}

		c, err := l.peekValue()
		if err != nil {
			return err
		}
		switch c {
		case ',':
			l.advance(1)
		case '}':
			l.advance(1)
			return nil
		default:
			return errs.Newf(errs.ExpectedToken, l.off, "want ',' or '}', got %q", c)
		}
	}
}

func (d *decoder) signed(bits int) (int64, error) {
	d.used = true
	start := d.s.l.off
	text, _, err := d.s.l.number()
	if err != nil {
		return 0, err
	}
	v, code := parseInt(text, bits)
	if code == errs.Ok && d.f.Bits > 0 && !bitfield.Signed(v, d.f.Bits) {
		code = errs.BitfieldOverflow
	}
	if code != errs.Ok {
		return 0, errs.Newf(code, start, "field %s", d.f.Name)
	}
	return v, nil
}

func (d *decoder) unsigned(bits int) (uint64, error) {
	d.used = true
	start := d.s.l.off
	text, _, err := d.s.l.number()
	if err != nil {
		return 0, err
	}
	v, code := parseUint(text, bits)
	if code == errs.Ok && d.f.Bits > 0 && !bitfield.Unsigned(v, d.f.Bits) {
		code = errs.BitfieldOverflow
	}
	if code != errs.Ok {
		return 0, errs.Newf(code, start, "field %s", d.f.Name)
	}
	return v, nil
}

func (d *decoder) float(bits int) (float64, error) {
	d.used = true
	start := d.s.l.off
	text, quoted, err := d.s.l.number()
	if err != nil {
		return 0, err
	}
	v, code := parseFloat(text, quoted, bits)
	if code != errs.Ok {
		return 0, errs.Newf(code, start, "field %s", d.f.Name)
	}
	return v, nil
}

// keyDecoder implements [codec.Decoder] for the keys of a map, which JSON
// always writes as strings.
type keyDecoder struct {
	f    *schema.Field
	opts *Options
	text []byte
	off  int
}

var _ codec.Decoder = (*keyDecoder)(nil)

func (d *keyDecoder) Bool() (bool, error) {
	switch string(d.text) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, errs.Newf(errs.InvalidLiteral, d.off, "map key %q", d.text)
	}
}

func (d *keyDecoder) Int32() (int32, error) {
	v, err := d.signed(32)
	return int32(v), err
}

func (d *keyDecoder) Int64() (int64, error) {
	return d.signed(64)
}

func (d *keyDecoder) Uint32() (uint32, error) {
	v, err := d.unsigned(32)
	return uint32(v), err
}

func (d *keyDecoder) Uint64() (uint64, error) {
	return d.unsigned(64)
}

func (d *keyDecoder) String() (string, error) {
	if !d.opts.AllowInvalidUTF8 && !utf8x.Valid(d.text) {
		return "", errs.Newf(errs.InvalidUTF8, d.off, "map key")
	}
	return string(d.text), nil
}

func (d *keyDecoder) Float32() (float32, error) { return 0, d.invalid() }
func (d *keyDecoder) Float64() (float64, error) { return 0, d.invalid() }
func (d *keyDecoder) Bytes() ([]byte, error)    { return nil, d.invalid() }
func (d *keyDecoder) Enum() (int32, error)      { return 0, d.invalid() }

func (d *keyDecoder) Message(codec.Message) error                    { return d.invalid() }
func (d *keyDecoder) List(func(codec.Decoder) error) error           { return d.invalid() }
func (d *keyDecoder) Map(func(key, value codec.Decoder) error) error { return d.invalid() }

func (d *keyDecoder) signed(bits int) (int64, error) {
	v, code := parseInt(d.text, bits)
	if code == errs.Ok && d.f.Bits > 0 && !bitfield.Signed(v, d.f.Bits) {
		code = errs.BitfieldOverflow
	}
	if code != errs.Ok {
		return 0, errs.Newf(code, d.off, "map key %q", d.text)
	}
	return v, nil
}

func (d *keyDecoder) unsigned(bits int) (uint64, error) {
	v, code := parseUint(d.text, bits)
	if code == errs.Ok && d.f.Bits > 0 && !bitfield.Unsigned(v, d.f.Bits) {
		code = errs.BitfieldOverflow
	}
	if code != errs.Ok {
		return 0, errs.Newf(code, d.off, "map key %q", d.text)
	}
	return v, nil
}

func (d *keyDecoder) invalid() error {
	return errs.Newf(errs.InvalidMapEntry, d.off, "%s is not a valid map key type", d.f.Kind)
}

// parseInt parses a signed integer of the given width. Exponent and fraction
// forms are accepted if the value is integral.
func parseInt(text []byte, bits int) (int64, errs.Code) {
	if !validNumber(text) {
		return 0, errs.InvalidNumber
	}
	v, err := strconv.ParseInt(string(text), 10, bits)
	if err == nil {
		return v, errs.Ok
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, errs.IntegerOverflow
	}

	f, code := parseIntegral(text)
	if code != errs.Ok {
		return 0, code
	}
	limit := math.Ldexp(1, bits-1)
	if f < -limit || f >= limit {
		return 0, errs.IntegerOverflow
	}
	return int64(f), errs.Ok
}

// parseUint is like [parseInt], for unsigned integers. Negative values
// overflow, except for negative zero.
func parseUint(text []byte, bits int) (uint64, errs.Code) {
	if !validNumber(text) {
		return 0, errs.InvalidNumber
	}
	if text[0] != '-' {
		v, err := strconv.ParseUint(string(text), 10, bits)
		if err == nil {
			return v, errs.Ok
		}
		if errors.Is(err, strconv.ErrRange) {
			return 0, errs.IntegerOverflow
		}
	}

	f, code := parseIntegral(text)
	if code != errs.Ok {
		return 0, code
	}
	if f == 0 {
		return 0, errs.Ok
	}
	if f < 0 || f >= math.Ldexp(1, bits) {
		return 0, errs.IntegerOverflow
	}
	return uint64(f), errs.Ok
}

func parseIntegral(text []byte) (float64, errs.Code) {
	f, err := strconv.ParseFloat(string(text), 64)
	if err != nil {
		return 0, errs.IntegerOverflow
	}
	if f != math.Trunc(f) {
		return 0, errs.InvalidNumber
	}
	return f, errs.Ok
}

// parseFloat parses a floating-point number of the given width. The special
// values are only recognized when quoted.
func parseFloat(text []byte, quoted bool, bits int) (float64, errs.Code) {
	if quoted {
		switch string(text) {
		case "NaN":
			return math.NaN(), errs.Ok
		case "Infinity":
			return math.Inf(1), errs.Ok
		case "-Infinity":
			return math.Inf(-1), errs.Ok
		}
	}
	if !validNumber(text) {
		return 0, errs.InvalidNumber
	}
	v, err := strconv.ParseFloat(string(text), bits)
	if err != nil {
		return 0, errs.InvalidNumber
	}
	return v, errs.Ok
}
