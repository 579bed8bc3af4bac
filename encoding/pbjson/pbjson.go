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

// Package pbjson implements the canonical JSON mapping for [codec.Message]s.
//
// Objects are keyed by each field's JSON name, falling back to the declared
// name when decoding. 64-bit integers are written as strings, enums by name,
// and bytes as padded standard base64. Decoding accepts numbers either bare
// or quoted, the special float values "NaN", "Infinity" and "-Infinity", and
// null for any field, which resets it.
package pbjson

import (
	"bytes"
	"io"

	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/schema"
)

// DefaultMaxDepth is the default limit on object nesting.
const DefaultMaxDepth = 1000

// Options configures the JSON encoder and decoder.
type Options struct {
	// Indent, if not empty, puts each member on its own line, indented by
	// this string once per level of nesting.
	Indent string

	// UseProtoNames writes fields under their declared names rather than
	// their JSON names.
	UseProtoNames bool

	// AllowInvalidUTF8 disables UTF-8 validation of string fields.
	AllowInvalidUTF8 bool

	// MaxDepth limits how deeply messages may nest. Zero or negative means
	// no limit.
	MaxDepth int
}

// NewOptions returns the default options.
func NewOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

// Marshal returns the JSON encoding of m.
func Marshal(m codec.Message, opts Options) ([]byte, error) {
	return Append(nil, m, opts)
}

// Append appends the JSON encoding of m to b.
func Append(b []byte, m codec.Message, opts Options) ([]byte, error) {
	s := &encodeState{opts: opts}
	s.w.buf = b
	s.w.indent = opts.Indent
	if err := s.message(m); err != nil {
		return b, err
	}
	return s.w.buf, nil
}

// WriteTo writes the JSON encoding of m to w, returning the number of bytes
// written.
func WriteTo(w io.Writer, m codec.Message, opts Options) (int, error) {
	b, err := Marshal(m, opts)
	if err != nil {
		return 0, err
	}
	return w.Write(b)
}

// Unmarshal decodes a single JSON object from b into m. Anything other than
// whitespace after the object is an error.
func Unmarshal(b []byte, m codec.Message, opts Options) error {
	return UnmarshalFrom(bytes.NewReader(b), m, opts)
}

// UnmarshalFrom is like [Unmarshal], but reads from r until it is exhausted.
func UnmarshalFrom(r io.Reader, m codec.Message, opts Options) error {
	s := &decodeState{l: newLexer(r), opts: opts}
	if err := s.message(m); err != nil {
		return err
	}
	return s.finish()
}

// UnmarshalValue decodes a single JSON value from b, as if it were the value
// of f. decode must call a single method of the decoder it is given.
func UnmarshalValue(b []byte, f *schema.Field, decode func(codec.Decoder) error, opts Options) error {
	s := &decodeState{l: newLexer(bytes.NewReader(b)), opts: opts}
	d := &decoder{s: s, f: f}
	if err := decode(d); err != nil {
		return err
	}
	if !d.used {
		return codec.ErrUnknownField
	}
	return s.finish()
}

// UnmarshalEnum decodes a single value of e from b, which may be either a
// quoted value name or a number.
func UnmarshalEnum(b []byte, e *schema.Enum, opts Options) (int32, error) {
	var v int32
	f := schema.EnumOf(1, "value", e)
	err := UnmarshalValue(b, f, func(d codec.Decoder) error {
		var err error
		v, err = d.Enum()
		return err
	}, opts)
	return v, err
}
