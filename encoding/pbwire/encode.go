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
	"math"

	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/internal/bitfield"
	"buf.build/go/protocodec/internal/debug"
	"buf.build/go/protocodec/internal/errs"
	"buf.build/go/protocodec/internal/sync2"
	"buf.build/go/protocodec/internal/utf8x"
	"buf.build/go/protocodec/internal/zigzag"
	"buf.build/go/protocodec/schema"
	"buf.build/go/protocodec/wire"
)

// encodeState is shared by all of the encoders used for one message.
type encodeState struct {
	opts  Options
	sink  *wire.Sink
	depth int

	// Lengths of length-delimited records, in visit order. Filled in by the
	// counting pass, consumed by the writing pass.
	sizes []int
	next  int
	body  int // Size of the top-level message, excluding any prefix.
}

// states recycles the size lists of earlier encodes.
var states = sync2.Pool[encodeState]{Reset: (*encodeState).reset}

func (s *encodeState) reset() {
	*s = encodeState{sizes: s.sizes[:0]}
}

// plan runs the counting pass. It returns the total encoded size.
func (s *encodeState) plan(m codec.Message, opts Options) (int, error) {
	s.opts = opts
	s.sink = wire.NewCounter()
	if err := s.message(m); err != nil {
		return 0, err
	}

	s.body = s.sink.Len()
	n := s.body
	if opts.Delimited {
		n += wire.SizeVarint(uint64(n))
	}
	return n, nil
}

// emit runs the writing pass into sink.
func (s *encodeState) emit(sink *wire.Sink, m codec.Message) error {
	s.sink = sink
	s.next = 0
	if s.opts.Delimited {
		sink.PutVarint(uint64(s.body))
	}
	if err := s.message(m); err != nil {
		return err
	}
	if s.next != len(s.sizes) {
		return ErrUnstable
	}
	return nil
}

func (s *encodeState) message(m codec.Message) error {
	if s.opts.MaxDepth > 0 && s.depth >= s.opts.MaxDepth {
		return errs.New(errs.RecursionDepth, s.sink.Len())
	}
	s.depth++
	defer func() { s.depth-- }()

	return m.EncodeFields(&encoder{s: s})
}

// region emits a length-delimited record whose contents are produced by body.
func (s *encodeState) region(body func() error) error {
	if s.sink.Dry() {
		slot := len(s.sizes)
		s.sizes = append(s.sizes, 0)

		start := s.sink.Len()
		if err := body(); err != nil {
			return err
		}
		n := s.sink.Len() - start
		s.sizes[slot] = n
		s.sink.PutVarint(uint64(n))
		return nil
	}

	if s.next >= len(s.sizes) {
		return ErrUnstable
	}
	n := s.sizes[s.next]
	s.next++
	s.sink.PutVarint(uint64(n))

	start := s.sink.Len()
	if err := body(); err != nil {
		return err
	}
	if s.sink.Len()-start != n {
		return ErrUnstable
	}
	return nil
}

// mode is what position an encoder is writing values in.
type mode uint8

const (
	modeField  mode = iota // A field of a message.
	modeElem               // An element of an expanded repeated field.
	modePacked             // An element of a packed repeated field: no tag.
	modeEntry              // The key or value of a map entry.
)

// encoder implements [codec.Encoder] for the binary format.
type encoder struct {
	s     *encodeState
	mode  mode
	wrote bool
}

var _ codec.Encoder = (*encoder)(nil)

func (e *encoder) Bool(f *schema.Field, v bool) error {
	debug.Assert(f.Kind == schema.BoolKind, "Bool(%v)", f)
	e.scalar(f, wire.EncodeBool(v))
	return nil
}

func (e *encoder) Int32(f *schema.Field, v int32) error {
	debug.Assert(f.Kind == schema.Int32Kind, "Int32(%v)", f)
	return e.signed(f, int64(v))
}

func (e *encoder) Int64(f *schema.Field, v int64) error {
	debug.Assert(f.Kind == schema.Int64Kind, "Int64(%v)", f)
	return e.signed(f, v)
}

func (e *encoder) Uint32(f *schema.Field, v uint32) error {
	debug.Assert(f.Kind == schema.Uint32Kind, "Uint32(%v)", f)
	return e.unsigned(f, uint64(v))
}

func (e *encoder) Uint64(f *schema.Field, v uint64) error {
	debug.Assert(f.Kind == schema.Uint64Kind, "Uint64(%v)", f)
	return e.unsigned(f, v)
}

func (e *encoder) Float32(f *schema.Field, v float32) error {
	debug.Assert(f.Kind == schema.FloatKind, "Float32(%v)", f)
	e.scalar(f, uint64(math.Float32bits(v)))
	return nil
}

func (e *encoder) Float64(f *schema.Field, v float64) error {
	debug.Assert(f.Kind == schema.DoubleKind, "Float64(%v)", f)
	e.scalar(f, math.Float64bits(v))
	return nil
}

func (e *encoder) Enum(f *schema.Field, v int32) error {
	debug.Assert(f.Kind == schema.EnumKind, "Enum(%v)", f)
	e.scalar(f, uint64(int64(v)))
	return nil
}

func (e *encoder) String(f *schema.Field, v string) error {
	debug.Assert(f.Kind == schema.StringKind, "String(%v)", f)
	if !e.s.opts.AllowInvalidUTF8 && !utf8x.ValidString(v) {
		return errs.Newf(errs.InvalidUTF8, e.s.sink.Len(), "field %s", f.Name)
	}

	e.tag(f, wire.BytesType)
	e.s.sink.PutVarint(uint64(len(v)))
	e.s.sink.PutString(v)
	return nil
}

func (e *encoder) Bytes(f *schema.Field, v []byte) error {
	debug.Assert(f.Kind == schema.BytesKind, "Bytes(%v)", f)
	e.tag(f, wire.BytesType)
	e.s.sink.PutVarint(uint64(len(v)))
	e.s.sink.PutBytes(v)
	return nil
}

func (e *encoder) Message(f *schema.Field, v codec.Message) error {
	debug.Assert(f.Kind == schema.MessageKind, "Message(%v)", f)
	if e.mode == modeField && f.Oneof == nil && v.IsEmpty() {
		return nil
	}

	e.tag(f, wire.BytesType)
	return e.s.region(func() error { return e.s.message(v) })
}

func (e *encoder) List(f *schema.Field, n int, elem func(codec.Encoder, int) error) error {
	debug.Assert(f.IsList(), "List(%v)", f)
	if n == 0 {
		return nil
	}

	layout := f.ScalarEncoding()
	if !layout.Packed {
		el := &encoder{s: e.s, mode: modeElem}
		for i := range n {
			if err := elem(el, i); err != nil {
				return err
			}
		}
		return nil
	}

	e.tag(f, layout.Type())
	return e.s.region(func() error {
		el := &encoder{s: e.s, mode: modePacked}
		for i := range n {
			if err := elem(el, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *encoder) Map(f *schema.Field, n int, entry func(key, value codec.Encoder, i int) error) error {
	debug.Assert(f.Kind == schema.MapKind, "Map(%v)", f)

	key := &encoder{s: e.s, mode: modeEntry}
	value := &encoder{s: e.s, mode: modeEntry}
	for i := range n {
		key.wrote, value.wrote = false, false

		e.tag(f, wire.BytesType)
		err := e.s.region(func() error {
			if err := entry(key, value, i); err != nil {
				return err
			}
			if !key.wrote || !value.wrote {
				return errs.Newf(errs.InvalidMapEntry, e.s.sink.Len(), "field %s", f.Name)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) signed(f *schema.Field, v int64) error {
	if f.Bits > 0 && !bitfield.Signed(v, f.Bits) {
		return errs.Newf(errs.BitfieldOverflow, e.s.sink.Len(), "field %s: %d does not fit in %d bits", f.Name, v, f.Bits)
	}

	switch f.Encoding {
	case wire.Zigzag:
		e.scalar(f, zigzag.Encode(v))
	case wire.Fixed32:
		e.scalar(f, uint64(uint32(v)))
	default:
		e.scalar(f, uint64(v))
	}
	return nil
}

func (e *encoder) unsigned(f *schema.Field, v uint64) error {
	if f.Bits > 0 && !bitfield.Unsigned(v, f.Bits) {
		return errs.Newf(errs.BitfieldOverflow, e.s.sink.Len(), "field %s: %d does not fit in %d bits", f.Name, v, f.Bits)
	}
	e.scalar(f, v)
	return nil
}

// scalar writes a numeric value, already converted to its wire bits.
func (e *encoder) scalar(f *schema.Field, v uint64) {
	layout := f.ScalarEncoding()
	if e.mode != modePacked {
		e.tag(f, layout.Encoding.Type())
	}

	switch layout.Encoding {
	case wire.Fixed32:
		e.s.sink.PutFixed32(uint32(v))
	case wire.Fixed64:
		e.s.sink.PutFixed64(v)
	default:
		e.s.sink.PutVarint(v)
	}
	e.wrote = true
}

func (e *encoder) tag(f *schema.Field, t wire.Type) {
	e.s.sink.PutTag(f.Number, t)
	e.wrote = true
}
