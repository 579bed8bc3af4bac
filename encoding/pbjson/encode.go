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
	"strconv"

	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/internal/base64x"
	"buf.build/go/protocodec/internal/bitfield"
	"buf.build/go/protocodec/internal/debug"
	"buf.build/go/protocodec/internal/errs"
	"buf.build/go/protocodec/internal/utf8x"
	"buf.build/go/protocodec/schema"
)

// encodeState is shared by all of the encoders used for one document.
type encodeState struct {
	w     writer
	opts  Options
	depth int
}

func (s *encodeState) message(m codec.Message) error {
	if s.opts.MaxDepth > 0 && s.depth >= s.opts.MaxDepth {
		return errs.New(errs.RecursionDepth, len(s.w.buf))
	}
	s.depth++
	defer func() { s.depth-- }()

	s.w.open('{')
	if err := m.EncodeFields(&encoder{s: s}); err != nil {
		return err
	}
	s.w.close('}')
	return nil
}

// name returns the key to use for f.
func (s *encodeState) name(f *schema.Field) string {
	if s.opts.UseProtoNames || f.JSONName == "" {
		return f.Name
	}
	return f.JSONName
}

// mode is what position an encoder is writing values in.
type mode uint8

const (
	modeField mode = iota // A member of an object.
	modeElem              // An element of an array.
	modeKey               // The key of a map entry.
	modeValue             // The value of a map entry.
)

// encoder implements [codec.Encoder] for JSON.
type encoder struct {
	s     *encodeState
	mode  mode
	wrote bool
	key   *encoder // The key for this value, in modeValue.
}

var _ codec.Encoder = (*encoder)(nil)

func (e *encoder) Bool(f *schema.Field, v bool) error {
	debug.Assert(f.Kind == schema.BoolKind, "Bool(%v)", f)
	if e.mode == modeKey {
		return e.mapKey(f, strconv.FormatBool(v))
	}
	if err := e.begin(f); err != nil {
		return err
	}
	e.s.w.buf = strconv.AppendBool(e.s.w.buf, v)
	return nil
}

func (e *encoder) Int32(f *schema.Field, v int32) error {
	debug.Assert(f.Kind == schema.Int32Kind, "Int32(%v)", f)
	return e.signed(f, int64(v), false)
}

func (e *encoder) Int64(f *schema.Field, v int64) error {
	debug.Assert(f.Kind == schema.Int64Kind, "Int64(%v)", f)
	return e.signed(f, v, true)
}

func (e *encoder) Uint32(f *schema.Field, v uint32) error {
	debug.Assert(f.Kind == schema.Uint32Kind, "Uint32(%v)", f)
	return e.unsigned(f, uint64(v), false)
}

func (e *encoder) Uint64(f *schema.Field, v uint64) error {
	debug.Assert(f.Kind == schema.Uint64Kind, "Uint64(%v)", f)
	return e.unsigned(f, v, true)
}

func (e *encoder) Float32(f *schema.Field, v float32) error {
	debug.Assert(f.Kind == schema.FloatKind, "Float32(%v)", f)
	if err := e.begin(f); err != nil {
		return err
	}
	e.s.w.float(float64(v), 32)
	return nil
}

func (e *encoder) Float64(f *schema.Field, v float64) error {
	debug.Assert(f.Kind == schema.DoubleKind, "Float64(%v)", f)
	if err := e.begin(f); err != nil {
		return err
	}
	e.s.w.float(v, 64)
	return nil
}

func (e *encoder) String(f *schema.Field, v string) error {
	debug.Assert(f.Kind == schema.StringKind, "String(%v)", f)
	if !e.s.opts.AllowInvalidUTF8 && !utf8x.ValidString(v) {
		return errs.Newf(errs.InvalidUTF8, len(e.s.w.buf), "field %s", f.Name)
	}
	if e.mode == modeKey {
		return e.mapKey(f, v)
	}
	if err := e.begin(f); err != nil {
		return err
	}
	e.s.w.string(v)
	return nil
}

func (e *encoder) Bytes(f *schema.Field, v []byte) error {
	debug.Assert(f.Kind == schema.BytesKind, "Bytes(%v)", f)
	if err := e.begin(f); err != nil {
		return err
	}
	w := &e.s.w
	w.buf = append(w.buf, '"')
	w.buf = base64x.AppendEncode(w.buf, v)
	w.buf = append(w.buf, '"')
	return nil
}

func (e *encoder) Enum(f *schema.Field, v int32) error {
	debug.Assert(f.Kind == schema.EnumKind, "Enum(%v)", f)
	if err := e.begin(f); err != nil {
		return err
	}
	if f.Enum != nil {
		if name, ok := f.Enum.NameOf(v); ok {
			e.s.w.string(name)
			return nil
		}
	}
	e.s.w.buf = strconv.AppendInt(e.s.w.buf, int64(v), 10)
	return nil
}

func (e *encoder) Message(f *schema.Field, v codec.Message) error {
	debug.Assert(f.Kind == schema.MessageKind, "Message(%v)", f)
	if e.mode == modeField && f.Oneof == nil && v.IsEmpty() {
		return nil
	}
	if err := e.begin(f); err != nil {
		return err
	}
	return e.s.message(v)
}

func (e *encoder) List(f *schema.Field, n int, elem func(codec.Encoder, int) error) error {
	debug.Assert(f.IsList(), "List(%v)", f)
	if n == 0 {
		return nil
	}
	if err := e.begin(f); err != nil {
		return err
	}

	e.s.w.open('[')
	el := &encoder{s: e.s, mode: modeElem}
	for i := range n {
		if err := elem(el, i); err != nil {
			return err
		}
	}
	e.s.w.close(']')
	return nil
}

func (e *encoder) Map(f *schema.Field, n int, entry func(key, value codec.Encoder, i int) error) error {
	debug.Assert(f.Kind == schema.MapKind, "Map(%v)", f)
	if n == 0 {
		return nil
	}
	if err := e.begin(f); err != nil {
		return err
	}

	e.s.w.open('{')
	key := &encoder{s: e.s, mode: modeKey}
	value := &encoder{s: e.s, mode: modeValue, key: key}
	for i := range n {
		key.wrote, value.wrote = false, false
		if err := entry(key, value, i); err != nil {
			return err
		}
		if !key.wrote || !value.wrote {
			return errs.Newf(errs.InvalidMapEntry, len(e.s.w.buf), "field %s", f.Name)
		}
	}
	e.s.w.close('}')
	return nil
}

// begin writes whatever precedes a value in the current position.
func (e *encoder) begin(f *schema.Field) error {
	switch e.mode {
	case modeField:
		e.s.w.key(e.s.name(f))
	case modeElem:
		e.s.w.next()
	case modeKey:
		return errs.Newf(errs.InvalidMapEntry, len(e.s.w.buf), "%s is not a valid map key type", f.Kind)
	case modeValue:
		if !e.key.wrote || e.wrote {
			return errs.Newf(errs.InvalidMapEntry, len(e.s.w.buf), "value %s written out of order", f.Name)
		}
	}
	e.wrote = true
	return nil
}

// mapKey writes a map key, which is always a string.
func (e *encoder) mapKey(f *schema.Field, text string) error {
	if e.wrote {
		return errs.Newf(errs.InvalidMapEntry, len(e.s.w.buf), "key %s written twice", f.Name)
	}
	e.wrote = true
	e.s.w.key(text)
	return nil
}

func (e *encoder) signed(f *schema.Field, v int64, quote bool) error {
	if f.Bits > 0 && !bitfield.Signed(v, f.Bits) {
		return errs.Newf(errs.BitfieldOverflow, len(e.s.w.buf), "%d in field %s", v, f.Name)
	}
	if e.mode == modeKey {
		return e.mapKey(f, strconv.FormatInt(v, 10))
	}
	if err := e.begin(f); err != nil {
		return err
	}

	w := &e.s.w
	if quote {
		w.buf = append(w.buf, '"')
	}
	w.buf = strconv.AppendInt(w.buf, v, 10)
	if quote {
		w.buf = append(w.buf, '"')
	}
	return nil
}

func (e *encoder) unsigned(f *schema.Field, v uint64, quote bool) error {
	if f.Bits > 0 && !bitfield.Unsigned(v, f.Bits) {
		return errs.Newf(errs.BitfieldOverflow, len(e.s.w.buf), "%d in field %s", v, f.Name)
	}
	if e.mode == modeKey {
		return e.mapKey(f, strconv.FormatUint(v, 10))
	}
	if err := e.begin(f); err != nil {
		return err
	}

	w := &e.s.w
	if quote {
		w.buf = append(w.buf, '"')
	}
	w.buf = strconv.AppendUint(w.buf, v, 10)
	if quote {
		w.buf = append(w.buf, '"')
	}
	return nil
}
