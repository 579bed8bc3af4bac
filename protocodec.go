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

package protocodec

import (
	"bytes"
	"io"

	"buf.build/go/protocodec/codec"
	"buf.build/go/protocodec/encoding/pbjson"
	"buf.build/go/protocodec/encoding/pbwire"
	"buf.build/go/protocodec/schema"
)

// Marshal returns the binary encoding of m.
func Marshal(m codec.Message, opts ...Option) ([]byte, error) {
	return MarshalAppend(nil, m, opts...)
}

// MarshalAppend appends the binary encoding of m to b. On error, b is returned
// unmodified.
func MarshalAppend(b []byte, m codec.Message, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	return pbwire.Append(b, m, c.wire)
}

// MarshalTo writes the binary encoding of m to w, returning the number of
// bytes written.
//
// Nothing is written if m cannot be encoded. Errors from w are returned as-is.
func MarshalTo(w io.Writer, m codec.Message, opts ...Option) (int, error) {
	c := newConfig(opts)
	return pbwire.WriteTo(w, m, c.wire)
}

// Size returns the length of the binary encoding of m.
func Size(m codec.Message, opts ...Option) (int, error) {
	c := newConfig(opts)
	return pbwire.Size(m, c.wire)
}

// Unmarshal decodes the binary encoding in b into m. All of b must be
// consumed.
func Unmarshal(b []byte, m codec.Message, opts ...Option) error {
	c := newConfig(opts)
	return pbwire.Unmarshal(b, m, c.wire)
}

// UnmarshalFrom decodes a binary message read from r into m.
//
// With [WithDelimited], this reads a single length-prefixed message, and
// returns [io.EOF] if r is already exhausted; call it in a loop to read a
// stream of messages.
func UnmarshalFrom(r io.Reader, m codec.Message, opts ...Option) error {
	c := newConfig(opts)
	return pbwire.UnmarshalFrom(r, m, c.wire)
}

// UnmarshalNew decodes b into a new T.
//
//	leaf, err := protocodec.UnmarshalNew[mypb.Leaf](b)
func UnmarshalNew[T any, PT interface {
	*T
	codec.Message
}](b []byte, opts ...Option) (PT, error) {
	m := PT(new(T))
	if err := Unmarshal(b, m, opts...); err != nil {
		return nil, err
	}
	return m, nil
}

// MarshalJSON returns the JSON encoding of m.
func MarshalJSON(m codec.Message, opts ...Option) ([]byte, error) {
	return MarshalJSONAppend(nil, m, opts...)
}

// MarshalJSONAppend appends the JSON encoding of m to b.
func MarshalJSONAppend(b []byte, m codec.Message, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	return pbjson.Append(b, m, c.json)
}

// MarshalJSONTo writes the JSON encoding of m to w, returning the number of
// bytes written.
func MarshalJSONTo(w io.Writer, m codec.Message, opts ...Option) (int, error) {
	c := newConfig(opts)
	return pbjson.WriteTo(w, m, c.json)
}

// UnmarshalJSON decodes the JSON object in b into m.
func UnmarshalJSON(b []byte, m codec.Message, opts ...Option) error {
	return UnmarshalJSONFrom(bytes.NewReader(b), m, opts...)
}

// UnmarshalJSONFrom decodes a JSON object read from r into m. Nothing but
// whitespace may follow the object.
func UnmarshalJSONFrom(r io.Reader, m codec.Message, opts ...Option) error {
	c := newConfig(opts)
	return pbjson.UnmarshalFrom(r, m, c.json)
}

// UnmarshalJSONNew decodes b into a new T.
func UnmarshalJSONNew[T any, PT interface {
	*T
	codec.Message
}](b []byte, opts ...Option) (PT, error) {
	m := PT(new(T))
	if err := UnmarshalJSON(b, m, opts...); err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalJSONValue decodes a single JSON value in b as if it were the value
// of f, such as an element of a list or a bare scalar. decode is given a
// decoder positioned at the value, and must call exactly one of its methods.
func UnmarshalJSONValue(b []byte, f *schema.Field, decode func(codec.Decoder) error, opts ...Option) error {
	c := newConfig(opts)
	return pbjson.UnmarshalValue(b, f, decode, c.json)
}

// UnmarshalJSONEnum decodes a JSON enum value, either a quoted value name or a
// number.
func UnmarshalJSONEnum(b []byte, e *schema.Enum, opts ...Option) (int32, error) {
	c := newConfig(opts)
	return pbjson.UnmarshalEnum(b, e, c.json)
}
