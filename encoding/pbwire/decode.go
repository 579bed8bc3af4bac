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

package pbwire

import (
	"bytes"
	"errors"
	"io"
	"math"
	"unsafe"

	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/internal/bitfield"
	"buf.build/go/protocodec/internal/debug"
	"buf.build/go/protocodec/internal/errs"
	"buf.build/go/protocodec/internal/utf8x"
	"buf.build/go/protocodec/internal/zigzag"
	"buf.build/go/protocodec/schema"
	"buf.build/go/protocodec/wire"
)

// decodeState is shared by all of the decoders used for one message.
type decodeState struct {
	opts  Options
	depth int
}

func decode(r *wire.Reader, m codec.Message, opts Options) error {
	s := &decodeState{opts: opts}
	if !opts.Delimited {
		return s.message(r, m)
	}

	n, err := r.ReadLength()
	if err != nil {
		if r.Stream() && r.Offset() == 0 && errs.Is(err, errs.UnexpectedEOF) {
			return io.EOF
		}
		return err
	}
	sub, err := r.Sub(n)
	if err != nil {
		return err
	}
	if err := s.message(&sub, m); err != nil {
		return err
	}
	return r.Finish()
}

// message decodes fields from r into m until r is exhausted.
func (s *decodeState) message(r *wire.Reader, m codec.Message) error {
	if s.opts.MaxDepth > 0 && s.depth >= s.opts.MaxDepth {
		return errs.New(errs.RecursionDepth, r.Offset())
	}
	s.depth++
	defer func() { s.depth-- }()

	table := m.Schema()
	d := &decoder{s: s, r: r}
	for {
		n, t, err := r.ReadTag()
		if err == io.EOF { //nolint:errorlint // ReadTag returns io.EOF unwrapped.
			return nil
		}
		if err != nil {
			return err
		}

		f := table.ByNumber(n)
		if f == nil {
			if debug.Enabled {
				debug.Log([]any{"%s", table.Name()}, "skip", "%d:%d @ %d", n, t, r.Offset())
			}
			if err := r.Skip(t); err != nil {
				return err
			}
			continue
		}

		if debug.Enabled {
			debug.Log([]any{"%s", table.Name()}, "field", "%v @ %d", f, r.Offset())
		}

		d.f, d.typ, d.used = f, t, false
		err = m.DecodeField(d, f)
		if !d.used && (err == nil || errors.Is(err, codec.ErrUnknownField)) {
			err = r.Skip(t)
		}
		if err != nil {
			return err
		}
	}
}

// decoder implements [codec.Decoder] for the binary format.
type decoder struct {
	s   *decodeState
	r   *wire.Reader
	f   *schema.Field
	typ wire.Type

	packed bool // Reading the body of a packed field; values have no tags.
	used   bool // Whether any method was called.
}

var _ codec.Decoder = (*decoder)(nil)

func (d *decoder) Bool() (bool, error) {
	if err := d.begin(wire.VarintType); err != nil {
		return false, err
	}

	c, err := d.r.ReadByte()
	if err != nil {
		return false, err
	}
	if c > 1 {
		return false, errs.Newf(errs.InvalidBool, d.r.Offset()-1, "field %s", d.f.Name)
	}
	return c == 1, nil
}

func (d *decoder) Int32() (int32, error) {
	start := d.r.Offset()
	v, err := d.signed()
	if err != nil {
		return 0, err
	}
	if int64(int32(v)) != v {
		return 0, errs.Newf(errs.IntegerOverflow, start, "field %s: %d", d.f.Name, v)
	}
	return int32(v), d.checkSigned(start, v)
}

func (d *decoder) Int64() (int64, error) {
	start := d.r.Offset()
	v, err := d.signed()
	if err != nil {
		return 0, err
	}
	return v, d.checkSigned(start, v)
}

func (d *decoder) Uint32() (uint32, error) {
	start := d.r.Offset()
	v, err := d.unsigned()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, errs.Newf(errs.IntegerOverflow, start, "field %s: %d", d.f.Name, v)
	}
	return uint32(v), d.checkUnsigned(start, v)
}

func (d *decoder) Uint64() (uint64, error) {
	start := d.r.Offset()
	v, err := d.unsigned()
	if err != nil {
		return 0, err
	}
	return v, d.checkUnsigned(start, v)
}

func (d *decoder) Enum() (int32, error) {
	return d.Int32()
}

func (d *decoder) Float32() (float32, error) {
	if err := d.begin(wire.Fixed32Type); err != nil {
		return 0, err
	}
	v, err := d.r.ReadFixed32()
	return math.Float32frombits(v), err
}

func (d *decoder) Float64() (float64, error) {
	if err := d.begin(wire.Fixed64Type); err != nil {
		return 0, err
	}
	v, err := d.r.ReadFixed64()
	return math.Float64frombits(v), err
}

func (d *decoder) String() (string, error) {
	start := d.r.Offset()
	b, err := d.blob()
	if err != nil {
		return "", err
	}
	if !d.s.opts.AllowInvalidUTF8 && !utf8x.Valid(b) {
		return "", errs.Newf(errs.InvalidUTF8, start, "field %s", d.f.Name)
	}
	if d.s.opts.AllowAlias {
		return unsafe.String(unsafe.SliceData(b), len(b)), nil
	}
	return string(b), nil
}

func (d *decoder) Bytes() ([]byte, error) {
	b, err := d.blob()
	if err != nil || d.s.opts.AllowAlias || d.r.Stream() {
		return b, err
	}
	return bytes.Clone(b), nil
}

func (d *decoder) Message(m codec.Message) error {
	if err := d.begin(wire.BytesType); err != nil {
		return err
	}

	sub, err := d.r.SubPrefixed()
	if err != nil {
		return err
	}
	if err := d.s.message(&sub, m); err != nil {
		return err
	}
	return sub.Finish()
}

func (d *decoder) List(elem func(codec.Decoder) error) error {
	d.used = true
	if d.typ != wire.BytesType || !d.f.Kind.Scalar() {
		// A single element of an expanded field.
		return elem(d)
	}

	sub, err := d.r.SubPrefixed()
	if err != nil {
		return err
	}
	el := &decoder{s: d.s, r: &sub, f: d.f, packed: true}
	for !sub.Done() {
		el.used = false
		if err := elem(el); err != nil {
			return err
		}
		if !el.used {
			return errs.Newf(errs.InvalidField, sub.Offset(), "field %s: packed element was not decoded", d.f.Name)
		}
	}
	return sub.Finish()
}

func (d *decoder) Map(entry func(key, value codec.Decoder) error) error {
	if err := d.begin(wire.BytesType); err != nil {
		return err
	}

	start := d.r.Offset()
	sub, err := d.r.SubPrefixed()
	if err != nil {
		return err
	}

	// Find the key and value first, since they may appear in either order
	// (or more than once). Each decoder gets its own cursor, positioned at
	// its value.
	var (
		kr, vr wire.Reader
		kt, vt wire.Type
		seen   uint8
	)
	for {
		n, t, err := sub.ReadTag()
		if err == io.EOF { //nolint:errorlint // ReadTag returns io.EOF unwrapped.
			break
		}
		if err != nil {
			return err
		}

		switch n {
		case 1:
			kr, kt = sub, t
			seen |= 1
		case 2:
			vr, vt = sub, t
			seen |= 2
		}
		if err := sub.Skip(t); err != nil {
			return err
		}
	}
	if seen != 3 {
		return errs.Newf(errs.InvalidMapEntry, start, "field %s", d.f.Name)
	}

	key := &decoder{s: d.s, r: &kr, f: d.f.Key, typ: kt}
	value := &decoder{s: d.s, r: &vr, f: d.f.Value, typ: vt}
	return entry(key, value)
}

// begin marks the decoder as used and checks the wire type.
func (d *decoder) begin(want wire.Type) error {
	d.used = true
	if d.packed || d.typ == want {
		return nil
	}
	return errs.Newf(errs.WireTypeMismatch, d.r.Offset(), "field %s: got wire type %d, want %d", d.f.Name, d.typ, want)
}

func (d *decoder) blob() ([]byte, error) {
	if err := d.begin(wire.BytesType); err != nil {
		return nil, err
	}
	return d.r.ReadBytes()
}

func (d *decoder) signed() (int64, error) {
	layout := d.f.ScalarEncoding()
	if err := d.begin(layout.Encoding.Type()); err != nil {
		return 0, err
	}

	switch layout.Encoding {
	case wire.Zigzag:
		v, err := d.r.ReadVarint()
		return zigzag.Decode(v), err
	case wire.Fixed32:
		v, err := d.r.ReadFixed32()
		return int64(int32(v)), err
	case wire.Fixed64:
		v, err := d.r.ReadFixed64()
		return int64(v), err
	default:
		v, err := d.r.ReadVarint()
		return int64(v), err
	}
}

func (d *decoder) unsigned() (uint64, error) {
	layout := d.f.ScalarEncoding()
	if err := d.begin(layout.Encoding.Type()); err != nil {
		return 0, err
	}

	switch layout.Encoding {
	case wire.Fixed32:
		v, err := d.r.ReadFixed32()
		return uint64(v), err
	case wire.Fixed64:
		return d.r.ReadFixed64()
	default:
		return d.r.ReadVarint()
	}
}

func (d *decoder) checkSigned(start int, v int64) error {
	if d.f.Bits > 0 && !bitfield.Signed(v, d.f.Bits) {
		return errs.Newf(errs.BitfieldOverflow, start, "field %s: %d does not fit in %d bits", d.f.Name, v, d.f.Bits)
	}
	return nil
}

func (d *decoder) checkUnsigned(start int, v uint64) error {
	if d.f.Bits > 0 && !bitfield.Unsigned(v, d.f.Bits) {
		return errs.Newf(errs.BitfieldOverflow, start, "field %s: %d does not fit in %d bits", d.f.Name, v, d.f.Bits)
	}
	return nil
}
